package service

import "errors"

// Error kinds returned by the flows. Match them with errors.Is.
var (
	ErrInvalidQuery      = errors.New("invalid query")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrUpstream          = errors.New("upstream failure")
	ErrMalformedResponse = errors.New("malformed response")
)

// Error is a classified failure. Kind is one of the sentinels above; Err is
// the underlying cause, if any.
type Error struct {
	Kind    error
	Message string
	Err     error
}

// NewError creates an Error of the given kind
func NewError(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Detail is the cause's text when there is one, else the message
func (e *Error) Detail() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the kind of err, or nil when err was not classified
func KindOf(err error) error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return nil
}
