package importer

import "fmt"

// FileAccessError reports that the transactions file could not be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError reports malformed CSV content. Line is 1-based; 0 means unknown.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d of the CSV: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parsing CSV: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
