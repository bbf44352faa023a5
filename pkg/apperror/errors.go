package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Error codes shared with callers of the API.
const (
	CodeInsufficientBalance = "WLT_001"
	CodeWalletNotFound      = "WLT_002"
	CodeInvalidAmount       = "WLT_003"
	CodeInvalidPlan         = "PUR_001"
	CodeProviderFailure     = "PUR_002"
	CodeRefundFailed        = "PUR_003"
	CodeDuplicateReference  = "LED_001"
	CodeNotFound            = "LED_002"
	CodeInvalidToken        = "AUTH_003"
	CodeInvalidSignature    = "SEC_002"
	CodeRateLimitExceeded   = "RATE_001"
	CodeInternal            = "SYS_001"
	CodeValidation          = "VAL_001"
	CodeBodyTooLarge        = "VAL_002"
)

// ---- Wallet (WLT) ----

func ErrInsufficientBalance() *AppError {
	return New(CodeInsufficientBalance, "Insufficient wallet balance", http.StatusPaymentRequired)
}

func ErrWalletNotFound() *AppError {
	return New(CodeWalletNotFound, "Wallet not found", http.StatusNotFound)
}

func ErrInvalidAmount() *AppError {
	return New(CodeInvalidAmount, "Amount must be greater than zero with at most 2 decimal places", http.StatusBadRequest)
}

// ---- Purchases (PUR) ----

func ErrInvalidPlan(message string) *AppError {
	if message == "" {
		message = "Invalid plan or price"
	}
	return New(CodeInvalidPlan, message, http.StatusBadRequest)
}

// ErrProviderFailure surfaces the fulfillment provider's own failure message.
func ErrProviderFailure(message string, err error) *AppError {
	if message == "" {
		message = "Fulfillment provider failed"
	}
	return Wrap(CodeProviderFailure, message, http.StatusBadGateway, err)
}

// ErrRefundFailed marks a debit that could not be compensated. The ledger needs manual reconciliation.
func ErrRefundFailed(err error) *AppError {
	return Wrap(CodeRefundFailed, "Purchase failed and refund could not be completed", http.StatusInternalServerError, err)
}

// ---- Ledger (LED) ----

func ErrDuplicateReference() *AppError {
	return New(CodeDuplicateReference, "Duplicate transaction reference", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Authentication (AUTH / SEC) ----

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

func ErrInvalidSignature() *AppError {
	return New(CodeInvalidSignature, "Invalid signature", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func ErrBodyTooLarge(limit int64) *AppError {
	return New(CodeBodyTooLarge, fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}
