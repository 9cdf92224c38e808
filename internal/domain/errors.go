package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks file read or base64 decode failures on uploaded assets.
	ErrIO = errors.New("file io failure")
	// ErrDecode marks a source image that could not be decoded for export.
	ErrDecode = errors.New("image decode failure")
	// ErrRender marks a failure while rasterizing or serializing an export.
	ErrRender = errors.New("render failure")
	// ErrNoImage means the provider returned no inline image part. The most
	// common cause is an upstream content-safety rejection, so callers must
	// surface this distinctly instead of as a generic provider failure.
	ErrNoImage = errors.New("no image returned")
	// ErrInvalidSelection is a caller-side precondition violation, e.g. a
	// style-copy request with none of the copy toggles enabled.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrMalformedResponse means a structured JSON reply was expected but the
	// provider returned empty or unparseable text.
	ErrMalformedResponse = errors.New("malformed response")
)

// ServiceError wraps a lower-level failure with the name of the studio task
// that was running. Unwrap keeps sentinel kinds reachable through errors.Is,
// so wrapping never masks ErrNoImage and friends.
type ServiceError struct {
	Task string
	Err  error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Task, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WrapService attaches the task name to err. Nil errors pass through.
func WrapService(task string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Task: task, Err: err}
}
