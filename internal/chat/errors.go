package chat

import "fmt"

// Kind classifies a chat processing failure. Every kind surfaces to callers
// as a 500, but logs and tests can tell them apart.
type Kind string

const (
	KindDetection Kind = "DETECTION_ERROR"
	KindUpstream  Kind = "UPSTREAM_ERROR"
	KindInternal  Kind = "INTERNAL_ERROR"
)

// Error wraps a failure during chat processing with its kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("chat: %s", e.Kind)
	}
	return fmt.Sprintf("chat: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}
