package resterr

import "net/http"

// RestErr is the error type services raise and the HTTP boundary maps to a response.
type RestErr struct {
	Message string  `json:"message"`
	Err     string  `json:"error"`
	Code    int     `json:"-"`
	Causes  []Cause `json:"errors"`
}

// Cause carries a per-field validation message.
type Cause struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (r *RestErr) Error() string {
	return r.Message
}

func New(message, err string, code int, causes []Cause) *RestErr {
	if causes == nil {
		causes = []Cause{}
	}
	return &RestErr{
		Message: message,
		Err:     err,
		Code:    code,
		Causes:  causes,
	}
}

func NewCause(field, message string) Cause {
	return Cause{Field: field, Message: message}
}

func NewBadRequestError(message string) *RestErr {
	return New(message, ErrBadRequest, http.StatusUnprocessableEntity, nil)
}

func NewValidationError(message string, causes []Cause) *RestErr {
	return New(message, ErrValidation, http.StatusUnprocessableEntity, causes)
}

func NewUnauthorizedError(message string) *RestErr {
	return New(message, ErrUnauthorized, http.StatusUnauthorized, nil)
}

func NewForbiddenError(message string) *RestErr {
	return New(message, ErrForbidden, http.StatusForbidden, nil)
}

func NewNotFoundError(message string) *RestErr {
	return New(message, ErrNotFound, http.StatusNotFound, nil)
}

func NewConflictError(message string) *RestErr {
	return New(message, ErrConflict, http.StatusUnprocessableEntity, nil)
}

func NewInternalServerError(message string) *RestErr {
	return New(message, ErrInternal, http.StatusInternalServerError, nil)
}

const (
	ErrBadRequest   = "bad_request"
	ErrValidation   = "validation_error"
	ErrUnauthorized = "unauthorized"
	ErrForbidden    = "forbidden"
	ErrNotFound     = "not_found"
	ErrConflict     = "conflict"
	ErrInternal     = "internal_server_error"
)
