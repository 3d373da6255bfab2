package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError(ErrorCodeOrderNotFound, "order not found")
	assert.Equal(t, "ORDER_NOT_FOUND: order not found", err.Error())

	wrapped := WrapError(ErrorCodeDatabaseError, "query failed", errors.New("connection reset"))
	assert.Equal(t, "INTERNAL_DATABASE_ERROR: query failed: connection reset", wrapped.Error())
}

func TestDomainError_Unwrap(t *testing.T) {
	inner := errors.New("no rows")
	err := WrapError(ErrorCodePaymentNotFound, "payment not found", inner)

	assert.ErrorIs(t, err, inner)
}

func TestDomainError_WithDetail(t *testing.T) {
	err := NewDomainError(ErrorCodeInsufficientBalance, "insufficient balance").
		WithDetail("current_balance", "100.00").
		WithDetail("collection_amount", "250.00")

	assert.Equal(t, "100.00", err.Details["current_balance"])
	assert.Equal(t, "250.00", err.Details["collection_amount"])
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrorCodeOrderNotFound, GetErrorCode(ErrOrderNotFound))
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetErrorCode(nil))

	// code survives wrapping with fmt.Errorf
	wrapped := fmt.Errorf("loading order: %w", ErrOrderNotFound)
	assert.Equal(t, ErrorCodeOrderNotFound, GetErrorCode(wrapped))
}

func TestErrorCategoryHelpers(t *testing.T) {
	tests := []struct {
		err        error
		name       string
		notFound   bool
		validation bool
		conflict   bool
		auth       bool
		business   bool
	}{
		{ErrOrderNotFound, "order not found", true, false, false, false, false},
		{ErrUserNotFound, "user not found", true, false, false, false, false},
		{ErrValidationAmountInvalid, "invalid amount", false, true, false, false, false},
		{ErrValidationMissingField, "missing field", false, true, false, false, false},
		{NewDomainError(ErrorCodeDuplicateAccountNumber, "dup"), "duplicate account", false, false, true, false, false},
		{NewDomainError(ErrorCodeDuplicateTransactionID, "dup"), "duplicate txn", false, false, true, false, false},
		{ErrAuthBadCreds, "bad creds", false, false, false, true, false},
		{NewDomainError(ErrorCodeAuthShopMismatch, "wrong shop"), "shop mismatch", false, false, false, true, false},
		{NewDomainError(ErrorCodeInsufficientBalance, "low"), "insufficient balance", false, false, false, false, true},
		{NewDomainError(ErrorCodeOrderNotFullyPaid, "unpaid"), "not fully paid", false, false, false, false, true},
		{errors.New("plain"), "plain error", false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.validation, IsValidationError(tt.err))
			assert.Equal(t, tt.conflict, IsConflictError(tt.err))
			assert.Equal(t, tt.auth, IsAuthError(tt.err))
			assert.Equal(t, tt.business, IsBusinessRuleError(tt.err))
		})
	}
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(ErrOrderNotFound, ErrorCodeOrderNotFound))
	assert.False(t, IsDomainError(ErrOrderNotFound, ErrorCodePaymentNotFound))
	assert.False(t, IsDomainError(errors.New("plain"), ErrorCodeOrderNotFound))
}

func TestAuthClaims_CanAccessShop(t *testing.T) {
	cashier := &AuthClaims{UserID: 1, ShopID: 2, Role: RoleCashier}
	assert.True(t, cashier.CanAccessShop(2))
	assert.False(t, cashier.CanAccessShop(3))

	admin := &AuthClaims{UserID: 1, ShopID: 2, Role: RoleAdmin}
	assert.True(t, admin.CanAccessShop(2))
	assert.True(t, admin.CanAccessShop(99))
}
