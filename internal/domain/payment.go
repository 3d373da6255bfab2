package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash           PaymentMethod = "cash"
	PaymentMethodOnlineTransfer PaymentMethod = "online_transfer"
	PaymentMethodBankDeposit    PaymentMethod = "bank_deposit"
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodOther          PaymentMethod = "other"
)

// NormalizePaymentMethod maps a raw method string to a known PaymentMethod.
// Unknown values fall back to PaymentMethodOther; the second return reports
// whether the fallback was taken so callers can log it.
func NormalizePaymentMethod(raw string) (PaymentMethod, bool) {
	switch PaymentMethod(raw) {
	case PaymentMethodCash, PaymentMethodOnlineTransfer, PaymentMethodBankDeposit,
		PaymentMethodCard, PaymentMethodOther:
		return PaymentMethod(raw), false
	}
	return PaymentMethodOther, true
}

// IsBankLinked reports whether the method moves funds into a tracked bank account
func (m PaymentMethod) IsBankLinked() bool {
	return m == PaymentMethodOnlineTransfer || m == PaymentMethodBankDeposit
}

// PaymentStatus represents the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// ValidPaymentStatus reports whether s is a known payment status
func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusCompleted, PaymentStatusPending, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment is one row of the append-only payment journal
type Payment struct {
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	PaymentDate   time.Time       `json:"payment_date"`
	TransactionID string          `json:"transaction_id"`
	BranchName    string          `json:"branch_name,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Method        PaymentMethod   `json:"payment_method"`
	Status        PaymentStatus   `json:"payment_status"`
	OrderID       *int64          `json:"order_id"`
	CustomerID    *int64          `json:"customer_id"`
	BankAccountID *int64          `json:"bank_account_id"`
	ID            int64           `json:"payment_id"`
	ShopID        int64           `json:"shop_id"`
	Amount        decimal.Decimal `json:"payment_amount"`
}

// AffectsBankLedger reports whether this payment, as stored, has been credited
// to a bank account's running balance. Only completed bank-linked payments
// with a target account move the ledger.
func (p *Payment) AffectsBankLedger() bool {
	return p.Status == PaymentStatusCompleted && p.BankAccountID != nil && p.Method.IsBankLinked()
}
