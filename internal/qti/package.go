package qti

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge/internal/fsutil"
	"github.com/quizforge/quizforge/internal/ident"
	"github.com/quizforge/quizforge/internal/question"
)

// ErrExists reports a target zip or working directory that already exists
// while Overwrite is off. Nothing has been mutated when it is returned.
var ErrExists = fmt.Errorf("qti: target already exists")

// AssembleOptions control package assembly.
type AssembleOptions struct {
	// ZipPath is the target archive path, extension included.
	ZipPath string
	// Title is the assessment title shown by the LMS.
	Title string
	// WorkDir is the ephemeral working tree. The assembler treats itself as
	// its sole owner for the duration of assembly; concurrent exports
	// sharing a WorkDir or ZipPath are a caller error.
	WorkDir string
	// Overwrite destroys a pre-existing ZipPath and WorkDir before starting.
	Overwrite bool
	// CleanUp removes WorkDir after the archive is written.
	CleanUp bool
	// MakeVariantNumbers assigns sequential variant numbers 1..N in list
	// order before building items.
	MakeVariantNumbers bool
	// Session supplies the extracted templates; a fresh one is created from
	// the built-in seed when nil.
	Session *Session
	Log     zerolog.Logger
}

// Assemble exports questions as a QTI package zip. On success the archive at
// ZipPath contains imsmanifest.xml, <id>/<id>.xml and any referenced media
// under the media subdirectory, all at paths relative to WorkDir. On failure
// before archiving no zip is created; a media copy failure intentionally
// leaves the partially-built WorkDir in place for inspection.
func Assemble(questions []question.Question, opts AssembleOptions) error {
	log := opts.Log

	// Precondition checks happen before any mutation.
	if _, err := os.Stat(opts.ZipPath); err == nil {
		if !opts.Overwrite {
			return fmt.Errorf("%w: %s", ErrExists, opts.ZipPath)
		}
		if err := os.Remove(opts.ZipPath); err != nil {
			return err
		}
	}
	if _, err := os.Stat(opts.WorkDir); err == nil {
		if !opts.Overwrite {
			return fmt.Errorf("%w: %s", ErrExists, opts.WorkDir)
		}
		if err := fsutil.Destroy(opts.WorkDir); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(opts.WorkDir, 0o755); err != nil {
		return err
	}

	// Harvest media references across question text and MCQ answers. Two
	// references to the same basename land on the same package path, so only
	// the first is kept.
	var media []string
	seen := map[string]struct{}{}
	for _, q := range questions {
		for _, fn := range q.MediaFiles() {
			base := filepath.Base(fn)
			if _, dup := seen[base]; dup {
				continue
			}
			seen[base] = struct{}{}
			media = append(media, fn)
		}
	}

	sess := opts.Session
	if sess == nil {
		var err error
		sess, err = NewSession(opts.Title, ident.Assessment())
		if err != nil {
			return err
		}
	}
	id := sess.ID()

	if opts.MakeVariantNumbers {
		question.FinalizeVariants(questions)
	}
	doc := sess.NewDocument()
	for _, q := range questions {
		if err := doc.Insert(sess.BuildItem(q, ItemParams{})); err != nil {
			return err
		}
	}

	if len(media) > 0 {
		mediaPath := filepath.Join(opts.WorkDir, MediaDir)
		if err := os.MkdirAll(mediaPath, 0o755); err != nil {
			return err
		}
		for _, img := range media {
			target := filepath.Join(mediaPath, filepath.Base(img))
			if err := fsutil.CopyFile(img, target); err != nil {
				// WorkDir stays behind so the caller can see what's missing.
				return fmt.Errorf("qti: copy media %s: %w", img, err)
			}
			log.Debug().Str("src", img).Str("dst", target).Msg("copied media file")
		}
	}

	assessmentDir := filepath.Join(opts.WorkDir, id)
	if err := os.MkdirAll(assessmentDir, 0o755); err != nil {
		return err
	}
	if err := writeTo(filepath.Join(assessmentDir, id+".xml"), doc.Write); err != nil {
		return err
	}

	manifest := BuildManifest(id, opts.Title, media)
	if err := writeTo(filepath.Join(opts.WorkDir, "imsmanifest.xml"), manifest.Write); err != nil {
		return err
	}

	if err := writeZip(opts.ZipPath, opts.WorkDir); err != nil {
		return err
	}
	log.Info().Str("zip", opts.ZipPath).Int("questions", len(questions)).Int("media", len(media)).Msg("package assembled")

	if opts.CleanUp {
		return fsutil.Destroy(opts.WorkDir)
	}
	return nil
}

func writeTo(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeZip archives every file under workDir into zipPath at paths relative
// to workDir.
func writeZip(zipPath, workDir string) error {
	files, err := fsutil.FilePaths(workDir)
	if err != nil {
		return err
	}
	f, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)
	for _, rel := range files {
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			f.Close()
			return err
		}
		src, err := os.Open(filepath.Join(workDir, rel))
		if err != nil {
			f.Close()
			return err
		}
		if _, err := io.Copy(w, src); err != nil {
			src.Close()
			f.Close()
			return err
		}
		src.Close()
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// MediaFilenames returns the distinct media basenames referenced by a list
// of questions, in first-reference order.
func MediaFilenames(questions []question.Question) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, q := range questions {
		for _, fn := range q.MediaFiles() {
			base := filepath.Base(fn)
			if _, dup := seen[base]; dup {
				continue
			}
			seen[base] = struct{}{}
			out = append(out, base)
		}
	}
	return out
}
