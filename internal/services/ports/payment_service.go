package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/threadline/pos-service/internal/domain"
)

// CreatePaymentRequest carries the fields needed to record a payment
type CreatePaymentRequest struct {
	PaymentDate   time.Time
	OrderID       *int64
	CustomerID    *int64
	BankAccountID *int64
	Method        string
	Status        string
	TransactionID string
	BranchName    string
	Notes         string
	ShopID        int64
	Amount        decimal.Decimal
}

// UpdatePaymentRequest carries a partial update; nil fields keep the stored value
type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal
	Method        *string
	Status        *string
	BankAccountID *int64
	BranchName    *string
	Notes         *string
	PaymentDate   *time.Time
	PaymentID     int64
	ShopID        int64
}

// PaymentResult is the outcome of recording or editing a payment.
// ChangeGiven is the portion of the tendered amount above the order's
// final amount; it is handed back to the customer and never stored.
type PaymentResult struct {
	Payment        *domain.Payment
	ChangeGiven    decimal.Decimal
	MethodFellBack bool
}

// PaymentService records, edits, and queries the payment journal while
// keeping bank-account running balances in step.
type PaymentService interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*PaymentResult, error)
	UpdatePayment(ctx context.Context, req UpdatePaymentRequest) (*domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID, shopID int64) error
	GetPayment(ctx context.Context, paymentID, shopID int64) (*domain.Payment, error)
	ListPaymentsByShop(ctx context.Context, shopID int64) ([]*domain.Payment, error)
	ListPaymentsByOrder(ctx context.Context, orderID int64) ([]*domain.Payment, error)
	ListPaymentsByDateRange(ctx context.Context, shopID int64, from, to time.Time) ([]*domain.Payment, error)
	ListPaymentsByMethod(ctx context.Context, shopID int64, method string) ([]*domain.Payment, error)
	PaymentSummary(ctx context.Context, shopID int64) (*domain.PaymentSummary, error)
}
