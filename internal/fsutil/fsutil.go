// Package fsutil holds the small filesystem helpers the package assembler
// depends on: directory walks, recursive delete and file copy.
package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FilePaths returns the paths of every regular file under root, relative to
// root, in walk order.
func FilePaths(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Destroy recursively deletes dir and everything under it.
func Destroy(dir string) error {
	if dir == "" || dir == "/" || dir == "." {
		return errors.New("fsutil: refusing to destroy " + dir)
	}
	return os.RemoveAll(dir)
}

// CopyFile copies src to dst, creating or truncating dst. The source file is
// never removed.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
