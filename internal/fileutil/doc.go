// Package fileutil lists the regular files below a directory.
//
// ScanDirectory walks a tree depth-first in filepath.WalkDir order and
// returns the files it finds as absolute paths. It is error tolerant: an
// unreadable subdirectory is recorded in ScanResult.Errors and the walk goes
// on. Only a missing or non-directory root is a fatal error.
//
// Hidden files and directories are not skipped; deciding what to leave out
// belongs to the caller.
//
// Basic recursive scan:
//
//	result, err := fileutil.ScanDirectory("/path/to/dir", fileutil.ScanOptions{})
//	if err != nil {
//	    return err
//	}
//	for _, file := range result.Files {
//	    fmt.Println(file)
//	}
//
// Depth-limited scan (the directory itself and one level below):
//
//	result, err := fileutil.ScanDirectory("/path/to/dir", fileutil.ScanOptions{
//	    MaxDepth: 2,
//	})
package fileutil
