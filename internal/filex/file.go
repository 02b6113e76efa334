// Package filex contains filesystem helpers for downloaded portal files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir (and parents) when missing and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// WriteUnique writes data into dir under name. When name is taken, a numeric
// suffix is added before the extension ("paper (1).pdf"). Only the base of
// name is used so server-supplied names cannot escape dir.
func WriteUnique(dir, name string, data []byte) (string, error) {
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." || name == "" {
		name = "file"
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := filepath.Join(dir, name)
	for i := 1; ; i++ {
		f, err := os.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
		if err == nil {
			if _, err := f.Write(data); err != nil {
				_ = f.Close()
				return "", fmt.Errorf("write %s: %w", candidate, err)
			}
			if err := f.Close(); err != nil {
				return "", fmt.Errorf("close %s: %w", candidate, err)
			}
			return candidate, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("create %s: %w", candidate, err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
	}
}
