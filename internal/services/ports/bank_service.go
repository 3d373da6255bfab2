package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/threadline/pos-service/internal/domain"
)

// CreateBankAccountRequest carries the fields needed to register a bank account
type CreateBankAccountRequest struct {
	BankName          string
	BranchName        string
	AccountNumber     string
	AccountHolderName string
	AccountType       string
	IFSCCode          string
	ShopID            int64
	InitialBalance    decimal.Decimal
}

// UpdateBankAccountRequest carries a partial account update; nil fields keep the stored value
type UpdateBankAccountRequest struct {
	BankName          *string
	BranchName        *string
	AccountNumber     *string
	AccountHolderName *string
	AccountType       *string
	IFSCCode          *string
	Status            *string
	BankAccountID     int64
	ShopID            int64
}

// BankAccountDetail is an account plus its balance derived from the
// payment and collection history, so drift in the running total is visible.
type BankAccountDetail struct {
	Account         *domain.BankAccount
	ComputedBalance decimal.Decimal
}

// CreateCollectionRequest records a withdrawal from a tracked account
type CreateCollectionRequest struct {
	CollectionDate time.Time
	Notes          string
	ShopID         int64
	BankAccountID  int64
	Amount         decimal.Decimal
}

// BankService manages bank accounts, their running balances, and collections
type BankService interface {
	CreateAccount(ctx context.Context, req CreateBankAccountRequest) (*domain.BankAccount, error)
	GetAccount(ctx context.Context, bankAccountID, shopID int64) (*BankAccountDetail, error)
	ListAccounts(ctx context.Context, shopID int64) ([]*domain.BankAccount, error)
	ListActiveAccounts(ctx context.Context, shopID int64) ([]*domain.BankAccount, error)
	UpdateAccount(ctx context.Context, req UpdateBankAccountRequest) (*domain.BankAccount, error)
	CloseAccount(ctx context.Context, bankAccountID, shopID int64) error
	Reconciliation(ctx context.Context, bankAccountID, shopID int64) (*domain.ReconciliationReport, error)

	// CreateCollection debits the account inside the same transaction that
	// inserts the collection row; it fails without side effects when the
	// balance cannot cover the amount.
	CreateCollection(ctx context.Context, req CreateCollectionRequest) (*domain.BankCollection, error)

	ListCollectionsByAccount(ctx context.Context, bankAccountID int64) ([]*domain.BankCollection, error)
	ListCollectionsByShop(ctx context.Context, shopID int64) ([]*domain.BankCollection, error)
	ListCollectionsByDateRange(ctx context.Context, shopID int64, from, to time.Time) ([]*domain.BankCollection, error)
	CollectionSummary(ctx context.Context, shopID int64) (*domain.CollectionSummary, error)
}
