package model

import "errors"

// ErrorResponse represents the error body of read endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Standard error codes for domain errors
const (
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeDuplicateEmail   = "DUPLICATE_EMAIL"
	ErrCodeUserHasDependent = "USER_HAS_DEPENDENTS"
	ErrCodeForeignKey       = "FOREIGN_KEY_VIOLATION"
)

// DomainError is a business rule failure that callers can recover from.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrUserNotFound    = NewDomainError(ErrCodeUserNotFound, "user not found")
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "product not found")
	ErrDuplicateEmail  = NewDomainError(ErrCodeDuplicateEmail, "email is already in use")
	ErrForeignKey      = NewDomainError(ErrCodeForeignKey, "referenced record does not exist or is still referenced")
)

// IsDomainError reports whether err carries the given domain error code.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
