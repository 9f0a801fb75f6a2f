// Package scaffold writes the sample tag tables used by `ponymatrix init`.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed samples/*.csv
var samples embed.FS

// Result lists what Write did.
type Result struct {
	Written []string
	Skipped []string
}

// Samples returns the embedded sample catalog rooted at the table files.
func Samples() fs.FS {
	sub, err := fs.Sub(samples, "samples")
	if err != nil {
		panic(err) // embedded layout is fixed at build time
	}
	return sub
}

// Write copies the sample tables into dir. Existing files are left alone.
func Write(dir string) (*Result, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	entries, err := fs.ReadDir(Samples(), ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list samples: %w", err)
	}

	res := &Result{}
	for _, e := range entries {
		dst := filepath.Join(dir, e.Name())
		if _, err := os.Stat(dst); err == nil {
			res.Skipped = append(res.Skipped, dst)
			continue
		}

		data, err := fs.ReadFile(Samples(), e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read sample %s: %w", e.Name(), err)
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", dst, err)
		}
		res.Written = append(res.Written, dst)
	}
	return res, nil
}
