package feed

import (
	"errors"
	"fmt"
)

// ErrSourceNotAllowed is returned when a sheets-only HTTP source is pointed elsewhere.
var ErrSourceNotAllowed = errors.New("only Google Sheets URLs are allowed")

// LoadError reports a transport failure while fetching a data source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports malformed delimited text. Line is 1-based, 0 when unknown.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse feed at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("failed to parse feed: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EmptyDataError means the source parsed cleanly but held no rows.
type EmptyDataError struct {
	Source string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("%s appears to be empty or not publicly accessible", e.Source)
}
