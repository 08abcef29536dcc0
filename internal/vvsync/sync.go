// Package vvsync copies time-keyed sample directories from the solver's
// postProcessing tree into the local working data directory so analyses
// never read a tree the solver may still be writing.
package vvsync

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/baditaflorin/l"
)

var timeDirName = regexp.MustCompile(`^[0-9.]+$`)

// Sync copies every numeric-named time directory under src into dst,
// replacing existing targets. File content only; metadata is not
// preserved. Returns the number of time directories copied.
func Sync(src, dst string, logger l.Logger) (int, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, fmt.Errorf("data source not found: %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create data directory: %w", err)
	}

	count := 0
	for _, e := range entries {
		if !e.IsDir() || !timeDirName.MatchString(e.Name()) {
			continue
		}
		target := filepath.Join(dst, e.Name())
		if err := os.RemoveAll(target); err != nil {
			return count, fmt.Errorf("failed to replace %s: %w", target, err)
		}
		if err := copyTree(filepath.Join(src, e.Name()), target); err != nil {
			return count, fmt.Errorf("failed to copy time %s: %w", e.Name(), err)
		}
		if logger != nil {
			logger.Info("synced time directory", "time", e.Name())
		}
		count++
	}
	return count, nil
}

func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
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

// HasSampleTables reports whether any .xy sample table exists under dir,
// recursively. The orchestrator hard-stops when none do.
func HasSampleTables(dir string) bool {
	found := false
	filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && strings.HasSuffix(path, ".xy") {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
