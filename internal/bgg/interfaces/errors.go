package interfaces

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound means the upstream does not know the username.
	// Callers treat it as zero games, not as a pipeline abort.
	ErrUserNotFound = errors.New("user not found")

	// ErrCollectionEmpty means the user exists but owns nothing. The
	// summary returned alongside it is still valid.
	ErrCollectionEmpty = errors.New("collection is empty")
)

// UpstreamError wraps network failures, 5xx answers and malformed
// responses. Recoverable per user.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream: %s", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
