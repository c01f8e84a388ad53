// quizforge authors quiz questions and exports them to the interchange
// formats the LMS imports: tab-delimited upload files and QTI packages.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/export"
	"github.com/quizforge/quizforge/internal/logging"
	"github.com/quizforge/quizforge/internal/pool"
	"github.com/quizforge/quizforge/internal/preview"
	"github.com/quizforge/quizforge/internal/qti"
	"github.com/quizforge/quizforge/internal/question"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(cfg.Name, cfg.Verbose)

	root := &cobra.Command{
		Use:           "quizforge",
		Short:         "Author quiz questions and export LMS packages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		exportQTICmd(cfg, log),
		exportBBCmd(log),
		markingSchemeCmd(log),
		previewCmd(cfg, log),
		poolCmd(cfg, log),
	)
	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func loadQuestions(path string) ([]question.Question, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return question.UnmarshalList(b)
}

func exportQTICmd(cfg *config.App, log zerolog.Logger) *cobra.Command {
	var in, zipPath, title, workDir string
	var overwrite, cleanUp, variants bool
	cmd := &cobra.Command{
		Use:   "export-qti",
		Short: "Export questions as a QTI package zip",
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := loadQuestions(in)
			if err != nil {
				return err
			}
			return qti.Assemble(qs, qti.AssembleOptions{
				ZipPath:            zipPath,
				Title:              title,
				WorkDir:            workDir,
				Overwrite:          overwrite,
				CleanUp:            cleanUp,
				MakeVariantNumbers: variants,
				Log:                log,
			})
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "questions JSON file")
	cmd.Flags().StringVar(&zipPath, "zip", "upload_me.zip", "target zip path")
	cmd.Flags().StringVar(&title, "title", "Question pool", "assessment title")
	cmd.Flags().StringVar(&workDir, "workdir", cfg.WorkDir, "working directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", cfg.Overwrite, "delete existing zip and workdir first")
	cmd.Flags().BoolVar(&cleanUp, "cleanup", cfg.CleanUp, "delete workdir after archiving")
	cmd.Flags().BoolVar(&variants, "variant-numbers", true, "assign sequential variant numbers")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func exportBBCmd(log zerolog.Logger) *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "export-bb",
		Short: "Export questions as a tab-delimited upload file",
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := loadQuestions(in)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.WriteRows(f, qs); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			log.Info().Str("file", out).Int("questions", len(qs)).Msg("wrote upload file")
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "questions JSON file")
	cmd.Flags().StringVar(&out, "out", "questions.txt", "output file")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func markingSchemeCmd(log zerolog.Logger) *cobra.Command {
	var in, out, course, title string
	var twoCols bool
	var stretch float64
	cmd := &cobra.Command{
		Use:   "marking-scheme",
		Short: "Typeset a LaTeX marking scheme for written questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := loadQuestions(in)
			if err != nil {
				return err
			}
			var written []*question.FileUpload
			for _, q := range qs {
				if fu, ok := q.(*question.FileUpload); ok {
					written = append(written, fu)
				}
			}
			if len(written) == 0 {
				return fmt.Errorf("no written questions in %s", in)
			}
			err = export.SaveMarkingScheme(written, out, export.SchemeOptions{
				Course:       course,
				Title:        title,
				PrintTable:   true,
				ArrayStretch: stretch,
				TwoColumns:   twoCols,
			})
			if err != nil {
				return err
			}
			log.Info().Str("file", out).Int("variants", len(written)).Msg("wrote marking scheme")
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "questions JSON file")
	cmd.Flags().StringVar(&out, "out", "marking-scheme.tex", "output file")
	cmd.Flags().StringVar(&course, "course", "", "course name")
	cmd.Flags().StringVar(&title, "title", "", "quiz title")
	cmd.Flags().BoolVar(&twoCols, "two-cols", false, "two-column variant table")
	cmd.Flags().Float64Var(&stretch, "array-stretch", 1, "table baseline stretch")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func previewCmd(cfg *config.App, log zerolog.Logger) *cobra.Command {
	var in, addr, media, title string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve a local MathJax preview of a question list",
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := loadQuestions(in)
			if err != nil {
				return err
			}
			h := preview.NewHandler(qs, preview.Options{
				Title:          title,
				MediaDir:       media,
				AllowedOrigins: cfg.PreviewOrigins,
			})
			srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
			log.Info().Str("addr", addr).Int("questions", len(qs)).Msg("preview listening")
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "questions JSON file")
	cmd.Flags().StringVar(&addr, "addr", cfg.PreviewAddr, "listen address")
	cmd.Flags().StringVar(&media, "media", "", "directory with referenced images")
	cmd.Flags().StringVar(&title, "title", "Question preview", "page title")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func poolCmd(cfg *config.App, log zerolog.Logger) *cobra.Command {
	openStore := func(ctx context.Context) (*pool.Store, error) {
		return pool.Open(ctx, pool.Driver(cfg.DBDriver), cfg.DBDSN)
	}

	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Manage stored question pools",
	}

	var in, name string
	save := &cobra.Command{
		Use:   "save",
		Short: "Store a question pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := loadQuestions(in)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			id, err := st.Save(cmd.Context(), name, qs)
			if err != nil {
				return err
			}
			log.Info().Str("id", id).Str("name", name).Int("questions", len(qs)).Msg("pool saved")
			return nil
		},
	}
	save.Flags().StringVar(&in, "in", "", "questions JSON file")
	save.Flags().StringVar(&name, "name", "pool", "pool name")
	_ = save.MarkFlagRequired("in")

	var out string
	load := &cobra.Command{
		Use:   "load <id>",
		Short: "Write a stored pool back to a questions JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			qs, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b, err := question.MarshalList(qs)
			if err != nil {
				return err
			}
			return os.WriteFile(out, b, 0o644)
		},
	}
	load.Flags().StringVar(&out, "out", "questions.json", "output file")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			infos, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, in := range infos {
				fmt.Printf("%s\t%s\t%s\n", in.ID, in.CreatedAt.Format(time.RFC3339), in.Name)
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			return st.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(save, load, list, del)
	return cmd
}
