package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentState represents the paid/due state of an order's ledger
type PaymentState string

const (
	PaymentStateUnpaid    PaymentState = "unpaid"
	PaymentStatePartial   PaymentState = "partial"
	PaymentStateFullyPaid PaymentState = "fully_paid"
)

// OrderStatus represents the fulfilment lifecycle of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// LedgerPaymentType classifies how a payment applies to an order's ledger
type LedgerPaymentType string

const (
	LedgerPaymentAdvance LedgerPaymentType = "advance"
	LedgerPaymentBalance LedgerPaymentType = "balance"
	LedgerPaymentFull    LedgerPaymentType = "full"
)

// ValidLedgerPaymentType reports whether s is a known ledger payment type
func ValidLedgerPaymentType(s string) bool {
	switch LedgerPaymentType(s) {
	case LedgerPaymentAdvance, LedgerPaymentBalance, LedgerPaymentFull:
		return true
	}
	return false
}

// Order holds the per-order payment ledger alongside fulfilment state.
// FinalAmount tracks the cumulative amount actually paid; BalanceDue is the
// amount still owed against the grand total (TotalAmount + DeliveryCharge).
type Order struct {
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	OrderDate      time.Time       `json:"order_date"`
	OrderNumber    string          `json:"order_number"`
	Notes          string          `json:"notes,omitempty"`
	PaymentStatus  PaymentState    `json:"payment_status"`
	OrderStatus    OrderStatus     `json:"order_status"`
	CustomerID     *int64          `json:"customer_id"`
	ID             int64           `json:"order_id"`
	ShopID         int64           `json:"shop_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	AdvancePaid    decimal.Decimal `json:"advance_paid"`
	BalanceDue     decimal.Decimal `json:"balance_due"`
}

// GrandTotal returns the full amount owed for the order
func (o *Order) GrandTotal() decimal.Decimal {
	return o.TotalAmount.Add(o.DeliveryCharge)
}

// TotalPaid returns the cumulative amount paid so far
func (o *Order) TotalPaid() decimal.Decimal {
	return o.FinalAmount
}

// ApplyPayment mutates the ledger fields for a payment of the given type and
// recomputes PaymentStatus. Pure arithmetic; persistence is the caller's job.
func (o *Order) ApplyPayment(paymentType LedgerPaymentType, amount decimal.Decimal) {
	switch paymentType {
	case LedgerPaymentAdvance:
		o.AdvancePaid = o.AdvancePaid.Add(amount)
		o.FinalAmount = o.AdvancePaid
		o.BalanceDue = decimal.Max(decimal.Zero, o.BalanceDue.Sub(amount))
	case LedgerPaymentBalance:
		o.BalanceDue = decimal.Max(decimal.Zero, o.BalanceDue.Sub(amount))
		o.FinalAmount = o.FinalAmount.Add(amount)
	case LedgerPaymentFull:
		o.FinalAmount = o.GrandTotal()
		o.AdvancePaid = decimal.Zero
		o.BalanceDue = decimal.Zero
	}
	o.PaymentStatus = o.derivePaymentStatus()
}

// derivePaymentStatus recomputes the payment state from the ledger fields:
// fully_paid iff nothing is due, partial iff something has been paid,
// unpaid otherwise.
func (o *Order) derivePaymentStatus() PaymentState {
	if o.BalanceDue.LessThanOrEqual(decimal.Zero) {
		return PaymentStateFullyPaid
	}
	if o.FinalAmount.GreaterThan(decimal.Zero) {
		return PaymentStatePartial
	}
	return PaymentStateUnpaid
}

// CanShip reports whether the order may transition to shipped.
// Shipping is blocked until the cumulative paid amount covers TotalAmount.
func (o *Order) CanShip() bool {
	return o.TotalPaid().GreaterThanOrEqual(o.TotalAmount)
}

// RemainingBeforeShipment returns how much is still owed against TotalAmount
func (o *Order) RemainingBeforeShipment() decimal.Decimal {
	return decimal.Max(decimal.Zero, o.TotalAmount.Sub(o.TotalPaid()))
}
