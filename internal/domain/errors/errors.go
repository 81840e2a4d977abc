// Package errors defines the application error model. Business rejections are
// predefined AppError values carrying an HTTP status and a stable error code;
// the HTTP error handler renders them verbatim to the caller.
package errors

import (
	"net/http"

	"tsmarket/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Checkout-related errors
	ErrEmptyCart = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_CART",
		"Cart is empty",
		"",
	)

	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	ErrInvalidSize = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SIZE",
		"Size not available for this product",
		"",
	)

	ErrInsufficientFunds = NewBaseError(
		http.StatusBadRequest,
		"INSUFFICIENT_FUNDS",
		"Insufficient balance",
		"",
	)

	// Reward-related errors
	ErrRewardNotFound = NewBaseError(
		http.StatusNotFound,
		"REWARD_NOT_FOUND",
		"Reward not found",
		"",
	)

	ErrLevelTooLow = NewBaseError(
		http.StatusBadRequest,
		"LEVEL_TOO_LOW",
		"Level requirement not met",
		"",
	)

	ErrAlreadyClaimed = NewBaseError(
		http.StatusBadRequest,
		"ALREADY_CLAIMED",
		"Reward already claimed",
		"",
	)

	// Wheel-related errors
	ErrNoSpinsAvailable = NewBaseError(
		http.StatusBadRequest,
		"NO_SPINS_AVAILABLE",
		"No wheel spins available",
		"",
	)

	ErrNoPrizesConfigured = NewBaseError(
		http.StatusNotFound,
		"NO_PRIZES_CONFIGURED",
		"No wheel prizes configured",
		"",
	)

	// Top-up-related errors
	ErrTopUpCodeInvalid = NewBaseError(
		http.StatusNotFound,
		"TOPUP_CODE_INVALID",
		"Invalid or already used code",
		"",
	)

	ErrTopUpCodeExists = NewBaseError(
		http.StatusConflict,
		"TOPUP_CODE_EXISTS",
		"Top-up code already exists",
		"",
	)

	ErrTopUpRequestNotFound = NewBaseError(
		http.StatusNotFound,
		"TOPUP_REQUEST_NOT_FOUND",
		"Top-up request not found",
		"",
	)

	ErrTopUpRequestProcessed = NewBaseError(
		http.StatusBadRequest,
		"TOPUP_REQUEST_PROCESSED",
		"Top-up request already processed",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrSelfDeletion = NewBaseError(
		http.StatusBadRequest,
		"SELF_DELETION",
		"Cannot delete your own account",
		"",
	)

	// Catalog-related errors
	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"Category not found",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	// ErrLedgerConflict surfaces when concurrent ledger mutations on the same
	// user keep colliding after the bounded internal retries.
	ErrLedgerConflict = NewBaseError(
		http.StatusConflict,
		"LEDGER_CONFLICT",
		"Concurrent update conflict, please retry",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
