// Package fsutil provides file system helpers for locating run artifacts.
package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension returns the regular files directly inside dir whose
// names end with extension, sorted by name. Hidden files are ignored.
func FindFilesByExtension(dir string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, extension) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}
