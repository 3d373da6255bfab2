package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
	sports "github.com/threadline/pos-service/internal/services/ports"
	"github.com/threadline/pos-service/pkg/timeutil"
)

// Service implements sports.OrderService
type Service struct {
	orders ports.OrderRepository
	logger ports.Logger
}

// NewService creates a new order service
func NewService(orders ports.OrderRepository, logger ports.Logger) *Service {
	return &Service{orders: orders, logger: logger}
}

// CreateOrder opens an order ledger. The balance due starts at the grand
// total (order total plus delivery charge) and nothing has been paid.
func (s *Service) CreateOrder(ctx context.Context, req sports.CreateOrderRequest) (*domain.Order, error) {
	if req.OrderNumber == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationMissingField,
			"order number is required").WithDetail("field", "order_number")
	}
	if req.TotalAmount.LessThan(decimal.Zero) || req.DeliveryCharge.LessThan(decimal.Zero) {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationAmountInvalid,
			"order amounts cannot be negative").
			WithDetail("total_amount", req.TotalAmount.String()).
			WithDetail("delivery_charge", req.DeliveryCharge.String())
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = timeutil.Now()
	}

	o := &domain.Order{
		ShopID:         req.ShopID,
		CustomerID:     req.CustomerID,
		OrderNumber:    req.OrderNumber,
		TotalAmount:    req.TotalAmount,
		DeliveryCharge: req.DeliveryCharge,
		FinalAmount:    decimal.Zero,
		AdvancePaid:    decimal.Zero,
		PaymentStatus:  domain.PaymentStateUnpaid,
		OrderStatus:    domain.OrderStatusPending,
		Notes:          req.Notes,
		OrderDate:      orderDate,
	}
	o.BalanceDue = o.GrandTotal()

	id, err := s.orders.Create(ctx, nil, o)
	if err != nil {
		s.logger.Error("create order failed",
			ports.Int64("shop_id", req.ShopID),
			ports.String("order_number", req.OrderNumber),
			ports.Err(err))
		return nil, err
	}
	o.ID = id

	s.logger.Info("order created",
		ports.Int64("order_id", o.ID),
		ports.Int64("shop_id", o.ShopID),
		ports.String("order_number", o.OrderNumber),
		ports.Decimal("balance_due", o.BalanceDue))
	return o, nil
}

// GetOrder retrieves a single order
func (s *Service) GetOrder(ctx context.Context, orderID, shopID int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, nil, orderID, shopID)
}

// ListOrdersByShop lists a shop's orders
func (s *Service) ListOrdersByShop(ctx context.Context, shopID int64) ([]*domain.Order, error) {
	return s.orders.ListByShop(ctx, nil, shopID)
}

// ListOrdersByCustomer lists a customer's orders within a shop
func (s *Service) ListOrdersByCustomer(ctx context.Context, customerID, shopID int64) ([]*domain.Order, error) {
	return s.orders.ListByCustomer(ctx, nil, customerID, shopID)
}

// ListPendingOrders lists orders that are not yet fully paid
func (s *Service) ListPendingOrders(ctx context.Context, shopID int64) ([]*domain.Order, error) {
	return s.orders.ListPending(ctx, nil, shopID)
}

// UpdateOrder overlays the request's set fields on the stored order
func (s *Service) UpdateOrder(ctx context.Context, req sports.UpdateOrderRequest) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, nil, req.OrderID, req.ShopID)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		o.CustomerID = req.CustomerID
	}
	if req.OrderNumber != nil {
		o.OrderNumber = *req.OrderNumber
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.LessThan(decimal.Zero) {
			return nil, domain.NewDomainError(domain.ErrorCodeValidationAmountInvalid,
				"order amounts cannot be negative").
				WithDetail("total_amount", req.TotalAmount.String())
		}
		o.TotalAmount = *req.TotalAmount
	}
	if req.DeliveryCharge != nil {
		if req.DeliveryCharge.LessThan(decimal.Zero) {
			return nil, domain.NewDomainError(domain.ErrorCodeValidationAmountInvalid,
				"order amounts cannot be negative").
				WithDetail("delivery_charge", req.DeliveryCharge.String())
		}
		o.DeliveryCharge = *req.DeliveryCharge
	}
	if req.OrderDate != nil {
		o.OrderDate = *req.OrderDate
	}

	if err := s.orders.Update(ctx, nil, o); err != nil {
		s.logger.Error("update order failed",
			ports.Int64("order_id", req.OrderID),
			ports.Int64("shop_id", req.ShopID),
			ports.Err(err))
		return nil, err
	}
	return o, nil
}

// RecordPayment applies advance/balance/full arithmetic to the order's
// ledger and persists the recomputed ledger fields in a single UPDATE.
func (s *Service) RecordPayment(ctx context.Context, req sports.RecordOrderPaymentRequest) (*domain.Order, error) {
	if !domain.ValidLedgerPaymentType(req.PaymentType) {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationFailed,
			"unknown payment type").WithDetail("payment_type", req.PaymentType)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationAmountInvalid,
			"payment amount must be positive").
			WithDetail("payment_amount", req.Amount.String())
	}

	o, err := s.orders.GetByID(ctx, nil, req.OrderID, req.ShopID)
	if err != nil {
		return nil, err
	}

	o.ApplyPayment(domain.LedgerPaymentType(req.PaymentType), req.Amount)

	if err := s.orders.UpdateLedger(ctx, nil, o); err != nil {
		s.logger.Error("record order payment failed",
			ports.Int64("order_id", req.OrderID),
			ports.Int64("shop_id", req.ShopID),
			ports.Err(err))
		return nil, err
	}

	s.logger.Info("order payment recorded",
		ports.Int64("order_id", o.ID),
		ports.String("payment_type", req.PaymentType),
		ports.Decimal("payment_amount", req.Amount),
		ports.String("payment_status", string(o.PaymentStatus)))
	return o, nil
}

// UpdateStatus transitions the fulfilment status. Shipping is refused while
// the amount paid is below the order total; the error carries how much is
// still owed.
func (s *Service) UpdateStatus(ctx context.Context, orderID, shopID int64, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationFailed,
			"unknown order status").WithDetail("order_status", status)
	}

	o, err := s.orders.GetByID(ctx, nil, orderID, shopID)
	if err != nil {
		return nil, err
	}

	next := domain.OrderStatus(status)
	if next == domain.OrderStatusShipped && !o.CanShip() {
		return nil, domain.NewDomainError(domain.ErrorCodeOrderNotFullyPaid,
			"order cannot ship until the total amount is paid").
			WithDetail("order_id", o.ID).
			WithDetail("total_amount", o.TotalAmount.String()).
			WithDetail("total_paid", o.TotalPaid().String()).
			WithDetail("remaining_amount", o.RemainingBeforeShipment().String())
	}

	if err := s.orders.UpdateStatus(ctx, nil, orderID, shopID, next); err != nil {
		return nil, err
	}
	o.OrderStatus = next

	s.logger.Info("order status updated",
		ports.Int64("order_id", orderID),
		ports.String("order_status", status))
	return o, nil
}

// OrderSummary aggregates a shop's orders over a date range
func (s *Service) OrderSummary(ctx context.Context, shopID int64, from, to time.Time) (*domain.OrderSummary, error) {
	return s.orders.Summary(ctx, nil, shopID, from, to)
}
