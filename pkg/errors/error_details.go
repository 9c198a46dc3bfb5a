package errors

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	// E.g. "order quantity must be positive".
	Message string

	// Code (required) is the machine-readable error code.
	// E.g. "order_invalid_quantity".
	Code ErrorCode

	// Field (optional) is the related field the error occurred on, if any.
	Field string
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message string, code ErrorCode, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// Error is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether a given `error` has a specific code.
func ErrorCodeEquals(err error, code ErrorCode) bool {
	errDetails, ok := err.(*ErrorDetails)
	if !ok {
		return false
	}

	return errDetails.Code == code
}
