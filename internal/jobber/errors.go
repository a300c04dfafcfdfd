package jobber

import (
	"errors"
	"fmt"
	"strings"
)

// RequestError wraps a failed GraphQL call. Transient marks failures
// worth retrying (network faults, 5xx, throttling); everything else is
// surfaced to the caller immediately.
type RequestError struct {
	Op         string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("jobber: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("jobber: %s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ValidationError carries the userErrors a mutation returned. These are
// caller mistakes, never retried.
type ValidationError struct {
	Op       string
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("jobber: %s: %s", e.Op, strings.Join(e.Messages, "; "))
}

// IsTransient reports whether err is worth retrying with backoff.
func IsTransient(err error) bool {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Transient
	}
	return false
}
