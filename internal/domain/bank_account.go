package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccountType represents the kind of bank account
type BankAccountType string

const (
	BankAccountTypeChecking BankAccountType = "checking"
	BankAccountTypeSavings  BankAccountType = "savings"
	BankAccountTypeBusiness BankAccountType = "business"
)

// ValidBankAccountType reports whether s is a known account type
func ValidBankAccountType(s string) bool {
	switch BankAccountType(s) {
	case BankAccountTypeChecking, BankAccountTypeSavings, BankAccountTypeBusiness:
		return true
	}
	return false
}

// BankAccountStatus represents the lifecycle state of a bank account
type BankAccountStatus string

const (
	BankAccountStatusActive   BankAccountStatus = "active"
	BankAccountStatusInactive BankAccountStatus = "inactive"
	BankAccountStatusClosed   BankAccountStatus = "closed"
)

// BankAccount tracks a shop-owned bank account and its running balance.
// CurrentBalance is maintained additively by completed bank-linked payments
// and subtractively by collections; the intended invariant is
// CurrentBalance = InitialBalance + sum(completed bank payments) - sum(collections).
type BankAccount struct {
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	BankName          string            `json:"bank_name"`
	BranchName        string            `json:"branch_name,omitempty"`
	AccountNumber     string            `json:"account_number"`
	AccountHolderName string            `json:"account_holder_name"`
	IFSCCode          string            `json:"ifsc_code,omitempty"`
	AccountType       BankAccountType   `json:"account_type"`
	Status            BankAccountStatus `json:"status"`
	ID                int64             `json:"bank_account_id"`
	ShopID            int64             `json:"shop_id"`
	InitialBalance    decimal.Decimal   `json:"initial_balance"`
	CurrentBalance    decimal.Decimal   `json:"current_balance"`
}

// BankCollection records a manual withdrawal from a bank account's tracked balance
type BankCollection struct {
	CreatedAt      time.Time       `json:"created_at"`
	CollectionDate time.Time       `json:"collection_date"`
	Notes          string          `json:"notes,omitempty"`
	ID             int64           `json:"collection_id"`
	ShopID         int64           `json:"shop_id"`
	BankAccountID  int64           `json:"bank_account_id"`
	Amount         decimal.Decimal `json:"collection_amount"`
}

// ReconciliationReport compares an account's running balance against the
// balance derived from its payment and collection history.
type ReconciliationReport struct {
	BankAccountID    int64           `json:"bank_account_id"`
	InitialBalance   decimal.Decimal `json:"initial_balance"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalCollections decimal.Decimal `json:"total_collections"`
	ComputedBalance  decimal.Decimal `json:"computed_balance"`
	Drift            decimal.Decimal `json:"drift"`
}
