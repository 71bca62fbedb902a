package readmesync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer persists a finished document.
type Writer interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

// FileWriter writes documents below a base directory. Each write replaces
// the destination in full by renaming a sibling temp file over it.
type FileWriter struct {
	root string
	perm os.FileMode
}

// NewFileWriter constructs a writer rooted at dir. Relative destination
// paths resolve against dir; absolute ones are used as is.
func NewFileWriter(dir string) *FileWriter {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return &FileWriter{root: filepath.Clean(dir), perm: 0o644}
}

// Root returns the base directory.
func (w *FileWriter) Root() string {
	return w.root
}

// Resolve returns the filesystem path a destination path maps to.
func (w *FileWriter) Resolve(path string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(w.root, path)
}

// WriteFile writes data to path, creating parent directories as needed.
func (w *FileWriter) WriteFile(ctx context.Context, path string, data []byte) (err error) {
	if strings.TrimSpace(path) == "" {
		return errors.New("readmesync: write requires path")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	full := w.Resolve(path)
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("readmesync: create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".readme-*")
	if err != nil {
		return fmt.Errorf("readmesync: create temp file in %s: %w", dir, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("readmesync: write %s: %w", full, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("readmesync: close %s: %w", full, err)
	}
	if err = os.Chmod(tmp.Name(), w.perm); err != nil {
		return fmt.Errorf("readmesync: chmod %s: %w", full, err)
	}
	if err = os.Rename(tmp.Name(), full); err != nil {
		return fmt.Errorf("readmesync: replace %s: %w", full, err)
	}
	return nil
}
