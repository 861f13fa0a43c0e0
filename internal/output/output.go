// Package output delivers rendered profiles to the terminal or to a file.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const fileMode = 0o600

// Print writes rendered to w unchanged.
func Print(w io.Writer, rendered string) error {
	if _, err := io.WriteString(w, rendered); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Save writes rendered to path via a temp file in the same directory, then
// renames it into place. An existing file is replaced. The parent directory
// must already exist.
func Save(path, rendered string) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	name := tmp.Name()

	// no-op once the rename succeeds
	defer os.Remove(name)

	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if _, err := tmp.WriteString(rendered); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
