package analyzer

import "fmt"

// FileSystemError indicates the root path itself is missing or unreadable.
// It is fatal to the whole analysis; no partial result is returned.
type FileSystemError struct {
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("folder does not exist: %s", e.Path)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

// ParseError indicates a single file failed to parse. It is recovered
// locally: the file is excluded from the aggregate and the run continues.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
