package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotDirectory is returned when the scan root exists but is not a directory
var ErrNotDirectory = errors.New("path is not a directory")

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// MaxDepth limits recursion depth (0 = unlimited, 1 = current dir only)
	MaxDepth int
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the paths of all regular files in walk order
	Files []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// ScanDirectory walks dir depth-first and collects every regular file.
// Entries within a directory are visited in lexical order, and a directory's
// files and subdirectories are interleaved the way filepath.WalkDir yields
// them. Symlinks to regular files are kept; symlinks to directories below
// dir are not followed. Unreadable subdirectories are recorded in Errors and
// skipped.
//
// A dir that is itself a symlink is walked through its target, but file
// paths are reported under dir.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	// Validate directory exists
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		reported := underRoot(root, walkRoot, path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", reported, err))
			return nil // Continue walking
		}

		if path == walkRoot {
			return nil
		}

		if d.IsDir() {
			if opts.MaxDepth > 0 && depth(walkRoot, path) >= opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !isRegular(path, d) {
			return nil
		}

		result.Files = append(result.Files, reported)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return result, nil
}

// underRoot rebuilds a path found below walkRoot under root, the directory
// the caller asked for
func underRoot(root, walkRoot, path string) string {
	if root == walkRoot {
		return path
	}
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(root, rel)
}

// depth returns how many path elements path sits below root (a direct child is 1)
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// isRegular reports whether the entry is a regular file, following symlinks
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
