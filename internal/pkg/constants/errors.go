package constants

import "net/http"

// CodedError is an error that knows which HTTP status it maps to.
type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound = NewCodedError("not found in db", http.StatusNotFound)

	ErrValidation       = NewCodedError("validation error", http.StatusBadRequest)
	ErrNotFound         = NewCodedError("indicator value not found", http.StatusNotFound)
	ErrStorage          = NewCodedError("storage error", http.StatusInternalServerError)
	ErrMissingIndicator = NewCodedError("missing indicator value", http.StatusUnprocessableEntity)
	ErrDivisionByZero   = NewCodedError("division by zero", http.StatusUnprocessableEntity)
)
