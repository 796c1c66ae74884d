package semantic

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuery          = errors.New("search query cannot be empty")
	ErrNoProjects          = errors.New("no projects data provided")
	ErrUnknownProvider     = errors.New("unknown provider")
	ErrProviderUnavailable = errors.New("provider not configured")
)

// UpstreamServiceError reports a provider that failed or answered with
// something that could not be read as a match list.
type UpstreamServiceError struct {
	Provider string
	Err      error
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *UpstreamServiceError) Unwrap() error { return e.Err }
