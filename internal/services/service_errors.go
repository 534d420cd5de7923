// filepath: internal/services/service_errors.go
package services

import "errors"

// Standard errors returned by the service layer. Handlers map these onto
// HTTP status codes; none of them should ever surface as a stack trace.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")

	// Borrowing rule violations.
	ErrNotBorrowable   = errors.New("media cannot be borrowed")
	ErrBorrowLimit     = errors.New("borrow limit reached")
	ErrOverdueLoans    = errors.New("user has overdue loans")
	ErrMediaMismatch   = errors.New("submitted media does not match the borrow record")
	ErrAlreadyReturned = errors.New("media already returned")
)
