package analysis

import "fmt"

// ErrorKind classifies analysis call failures
type ErrorKind string

const (
	// KindTimeout means the call exceeded its deadline; retryable once
	KindTimeout ErrorKind = "timeout"
	// KindUnreachable means the service could not be reached or answered
	// with a server fault; retryable once
	KindUnreachable ErrorKind = "unreachable"
	// KindRejected means the service refused the input; never retried
	KindRejected ErrorKind = "rejected"
	// KindMalformed means the response did not match the metric schema;
	// never retried
	KindMalformed ErrorKind = "malformed"
)

// Error is a classified analysis service failure
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analysis %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("analysis %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure warrants the single automatic
// re-sign + re-analyze attempt.
func (e *Error) Retryable() bool {
	return e.Kind == KindTimeout || e.Kind == KindUnreachable
}
