package qti

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/question"
)

func writeTestImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG fake"), 0o644))
	return path
}

func zipEntries(t *testing.T, zipPath string) map[string][]byte {
	t.Helper()
	zr, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer zr.Close()
	out := map[string][]byte{}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[zf.Name] = b
	}
	return out
}

func TestAssembleEndToEnd(t *testing.T) {
	tmp := t.TempDir()
	img := writeTestImage(t, tmp, "pic.png")

	qs := []question.Question{
		&question.MultipleChoice{
			TextHTML:     `What is shown in <img src="` + img + `">?`,
			Answer:       "a sine wave",
			WrongAnswers: []string{"a square wave", "noise"},
			Marks:        1,
			ShuffleSeed:  17,
		},
		&question.FileUpload{TextHTML: "Show your working for $x^2=2$.", Marks: 5},
	}

	sess, err := NewSession("Week 5 quiz", "")
	require.NoError(t, err)
	id := sess.ID()

	opts := AssembleOptions{
		ZipPath:            filepath.Join(tmp, "upload_me.zip"),
		Title:              "Week 5 quiz",
		WorkDir:            filepath.Join(tmp, "work"),
		CleanUp:            true,
		MakeVariantNumbers: true,
		Session:            sess,
		Log:                zerolog.Nop(),
	}
	require.NoError(t, Assemble(qs, opts))

	_, err = os.Stat(opts.WorkDir)
	assert.True(t, os.IsNotExist(err), "workdir must be removed after archiving")

	entries := zipEntries(t, opts.ZipPath)
	require.Contains(t, entries, "imsmanifest.xml")
	require.Contains(t, entries, id+"/"+id+".xml")
	require.Contains(t, entries, "Uploaded Media/pic.png")
	assert.Equal(t, []byte("\x89PNG fake"), entries["Uploaded Media/pic.png"])

	var doc Questestinterop
	require.NoError(t, xml.Unmarshal(entries[id+"/"+id+".xml"], &doc))
	require.NotEmpty(t, doc.Assessment.Sections)
	items := doc.Assessment.Sections[0].Items
	require.Len(t, items, 2)

	// Variant numbers were assigned in list order; the written question
	// carries the office-use marker for its slot.
	assert.Contains(t, items[1].Presentation.Material.Mattext.Text, "[For office use only: V2]")
	// MCQ options: three answers plus the fixed terminal one.
	require.NotNil(t, items[0].Presentation.ResponseLid)
	assert.Len(t, items[0].Presentation.ResponseLid.RenderChoice.Labels, 4)
	// The image reference was rewritten to the package media path.
	assert.Contains(t, items[0].Presentation.Material.Mattext.Text, "$IMS-CC-FILEBASE$/Uploaded%20Media/pic.png")

	manifest := string(entries["imsmanifest.xml"])
	assert.Contains(t, manifest, id+"/"+id+".xml")
	assert.Contains(t, manifest, "Uploaded Media/pic.png")
}

func TestAssembleRefusesExistingZip(t *testing.T) {
	tmp := t.TempDir()
	zipPath := filepath.Join(tmp, "upload_me.zip")
	original := []byte("precious bytes")
	require.NoError(t, os.WriteFile(zipPath, original, 0o644))

	qs := []question.Question{&question.FileUpload{TextHTML: "t", Marks: 1}}
	err := Assemble(qs, AssembleOptions{
		ZipPath: zipPath,
		WorkDir: filepath.Join(tmp, "work"),
		Log:     zerolog.Nop(),
	})
	require.ErrorIs(t, err, ErrExists)

	after, rerr := os.ReadFile(zipPath)
	require.NoError(t, rerr)
	assert.Equal(t, original, after, "existing zip must be untouched")
	_, serr := os.Stat(filepath.Join(tmp, "work"))
	assert.True(t, os.IsNotExist(serr), "no workdir may be created")
}

func TestAssembleRefusesExistingWorkDir(t *testing.T) {
	tmp := t.TempDir()
	workDir := filepath.Join(tmp, "work")
	require.NoError(t, os.MkdirAll(workDir, 0o755))

	qs := []question.Question{&question.FileUpload{TextHTML: "t", Marks: 1}}
	err := Assemble(qs, AssembleOptions{
		ZipPath: filepath.Join(tmp, "out.zip"),
		WorkDir: workDir,
		Log:     zerolog.Nop(),
	})
	require.ErrorIs(t, err, ErrExists)
}

func TestAssembleOverwriteReplacesTargets(t *testing.T) {
	tmp := t.TempDir()
	zipPath := filepath.Join(tmp, "out.zip")
	workDir := filepath.Join(tmp, "work")
	require.NoError(t, os.WriteFile(zipPath, []byte("old"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(workDir, "stale"), 0o755))

	qs := []question.Question{&question.FileUpload{TextHTML: "t", Marks: 1}}
	require.NoError(t, Assemble(qs, AssembleOptions{
		ZipPath:   zipPath,
		Title:     "q",
		WorkDir:   workDir,
		Overwrite: true,
		CleanUp:   true,
		Log:       zerolog.Nop(),
	}))

	entries := zipEntries(t, zipPath)
	assert.Contains(t, entries, "imsmanifest.xml")
	for name := range entries {
		assert.NotContains(t, name, "stale")
	}
}

func TestAssembleMissingMediaLeavesWorkDir(t *testing.T) {
	tmp := t.TempDir()
	workDir := filepath.Join(tmp, "work")
	qs := []question.Question{
		&question.MultipleChoice{
			TextHTML:     `see <img src="` + filepath.Join(tmp, "nope.png") + `">`,
			Answer:       "a",
			WrongAnswers: []string{"b"},
			Marks:        1,
		},
	}
	err := Assemble(qs, AssembleOptions{
		ZipPath: filepath.Join(tmp, "out.zip"),
		WorkDir: workDir,
		CleanUp: true,
		Log:     zerolog.Nop(),
	})
	require.Error(t, err)

	_, serr := os.Stat(workDir)
	assert.NoError(t, serr, "failed media copy must leave the workdir for inspection")
	_, zerr := os.Stat(filepath.Join(tmp, "out.zip"))
	assert.True(t, os.IsNotExist(zerr), "no zip on failure")
}
