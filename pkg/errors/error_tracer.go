package errors

import "github.com/pkg/errors"

// ErrorTracer pairs a caller-facing message with an underlying error that
// carries a stack trace. The trace is captured at Wrap time unless the
// wrapped error already has one.
type ErrorTracer struct {
	Message string
	Err     error
}

// NewTracer creates an ErrorTracer with the provided message.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{
		Message: message,
	}
}

// StackTracer is implemented by errors that carry a stack trace.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

func (e *ErrorTracer) Error() string {
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// Wrap records err as the underlying error, attaching a stack trace if it
// does not already carry one.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	e.Err = err
	if _, ok := err.(StackTracer); !ok {
		e.Err = errors.WithStack(err)
	}
	return e
}

// StackTrace returns the stack trace of the underlying error, or nil when
// nothing has been wrapped.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if errWithStack, ok := e.Unwrap().(StackTracer); ok {
		return errWithStack.StackTrace()
	}
	return nil
}
