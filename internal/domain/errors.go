package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Authentication & Authorization Errors (AUTH_*)
	ErrorCodeAuthMissing      ErrorCode = "AUTH_MISSING"
	ErrorCodeAuthInvalid      ErrorCode = "AUTH_INVALID"
	ErrorCodeAuthShopMismatch ErrorCode = "AUTH_SHOP_MISMATCH"
	ErrorCodeAuthBadCreds     ErrorCode = "AUTH_INVALID_CREDENTIALS"

	// Validation Errors (VALIDATION_*)
	ErrorCodeValidationFailed        ErrorCode = "VALIDATION_FAILED"
	ErrorCodeValidationAmountInvalid ErrorCode = "VALIDATION_AMOUNT_INVALID"
	ErrorCodeValidationMissingField  ErrorCode = "VALIDATION_MISSING_FIELD"

	// Not-found Errors
	ErrorCodeOrderNotFound       ErrorCode = "ORDER_NOT_FOUND"
	ErrorCodePaymentNotFound     ErrorCode = "PAYMENT_NOT_FOUND"
	ErrorCodeBankAccountNotFound ErrorCode = "BANK_ACCOUNT_NOT_FOUND"
	ErrorCodeCustomerNotFound    ErrorCode = "CUSTOMER_NOT_FOUND"
	ErrorCodeUserNotFound        ErrorCode = "USER_NOT_FOUND"

	// Conflict Errors
	ErrorCodeDuplicateAccountNumber ErrorCode = "DUPLICATE_ACCOUNT_NUMBER"
	ErrorCodeDuplicateTransactionID ErrorCode = "DUPLICATE_TRANSACTION_ID"

	// Business-rule Errors (LEDGER_*)
	ErrorCodeInsufficientBalance ErrorCode = "LEDGER_INSUFFICIENT_BALANCE"
	ErrorCodeOrderNotFullyPaid   ErrorCode = "LEDGER_ORDER_NOT_FULLY_PAID"

	// Internal Errors (INTERNAL_*)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrorCodeDatabaseError ErrorCode = "INTERNAL_DATABASE_ERROR"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsNotFoundError checks if an error represents a "not found" condition
func IsNotFoundError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeOrderNotFound ||
		code == ErrorCodePaymentNotFound ||
		code == ErrorCodeBankAccountNotFound ||
		code == ErrorCodeCustomerNotFound ||
		code == ErrorCodeUserNotFound
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeValidationFailed ||
		code == ErrorCodeValidationAmountInvalid ||
		code == ErrorCodeValidationMissingField
}

// IsConflictError checks if an error is a unique-key conflict
func IsConflictError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeDuplicateAccountNumber ||
		code == ErrorCodeDuplicateTransactionID
}

// IsAuthError checks if an error is authentication/authorization related
func IsAuthError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeAuthMissing ||
		code == ErrorCodeAuthInvalid ||
		code == ErrorCodeAuthShopMismatch ||
		code == ErrorCodeAuthBadCreds
}

// IsBusinessRuleError checks if an error is a ledger business-rule violation
func IsBusinessRuleError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeInsufficientBalance ||
		code == ErrorCodeOrderNotFullyPaid
}

// Structured error instances
var (
	ErrAuthMissing  = NewDomainError(ErrorCodeAuthMissing, "authentication required")
	ErrAuthInvalid  = NewDomainError(ErrorCodeAuthInvalid, "invalid authentication")
	ErrAuthBadCreds = NewDomainError(ErrorCodeAuthBadCreds, "invalid username or password")

	ErrOrderNotFound       = NewDomainError(ErrorCodeOrderNotFound, "order not found")
	ErrPaymentNotFound     = NewDomainError(ErrorCodePaymentNotFound, "payment not found")
	ErrBankAccountNotFound = NewDomainError(ErrorCodeBankAccountNotFound, "bank account not found")
	ErrCustomerNotFound    = NewDomainError(ErrorCodeCustomerNotFound, "customer not found")
	ErrUserNotFound        = NewDomainError(ErrorCodeUserNotFound, "user not found")

	ErrValidationFailed        = NewDomainError(ErrorCodeValidationFailed, "validation failed")
	ErrValidationAmountInvalid = NewDomainError(ErrorCodeValidationAmountInvalid, "invalid amount")
	ErrValidationMissingField  = NewDomainError(ErrorCodeValidationMissingField, "required field missing")

	ErrDatabaseError = NewDomainError(ErrorCodeDatabaseError, "database error")
)
