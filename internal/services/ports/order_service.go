package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/threadline/pos-service/internal/domain"
)

// CreateOrderRequest carries the fields needed to open an order ledger
type CreateOrderRequest struct {
	OrderDate      time.Time
	CustomerID     *int64
	OrderNumber    string
	Notes          string
	ShopID         int64
	TotalAmount    decimal.Decimal
	DeliveryCharge decimal.Decimal
}

// UpdateOrderRequest carries a partial order update; nil fields keep the stored value
type UpdateOrderRequest struct {
	CustomerID     *int64
	OrderNumber    *string
	Notes          *string
	TotalAmount    *decimal.Decimal
	DeliveryCharge *decimal.Decimal
	OrderDate      *time.Time
	OrderID        int64
	ShopID         int64
}

// RecordOrderPaymentRequest applies a payment of the given type to an order's ledger
type RecordOrderPaymentRequest struct {
	PaymentType string
	OrderID     int64
	ShopID      int64
	Amount      decimal.Decimal
}

// OrderService manages order ledgers and fulfilment state
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID, shopID int64) (*domain.Order, error)
	ListOrdersByShop(ctx context.Context, shopID int64) ([]*domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID, shopID int64) ([]*domain.Order, error)
	ListPendingOrders(ctx context.Context, shopID int64) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, req UpdateOrderRequest) (*domain.Order, error)

	// RecordPayment applies advance/balance/full arithmetic to the ledger
	// and recomputes the payment status.
	RecordPayment(ctx context.Context, req RecordOrderPaymentRequest) (*domain.Order, error)

	// UpdateStatus transitions the fulfilment status. The shipped transition
	// is rejected while the amount paid is below the order total.
	UpdateStatus(ctx context.Context, orderID, shopID int64, status string) (*domain.Order, error)

	OrderSummary(ctx context.Context, shopID int64, from, to time.Time) (*domain.OrderSummary, error)
}
