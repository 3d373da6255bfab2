package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
)

// OrderRepository implements ports.OrderRepository with raw pgx queries
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db ports.DBPort) *OrderRepository {
	return &OrderRepository{pool: db.GetDB()}
}

func (r *OrderRepository) db(tx ports.DBTX) ports.DBTX {
	if tx != nil {
		return tx
	}
	return r.pool
}

const orderColumns = `order_id, shop_id, customer_id, order_number, total_amount, delivery_charge,
	final_amount, advance_paid, balance_due, payment_status, order_status, notes,
	order_date, created_at, updated_at`

// Create inserts a new order and returns its id
func (r *OrderRepository) Create(ctx context.Context, tx ports.DBTX, order *domain.Order) (int64, error) {
	total, err := decimalToNumeric(order.TotalAmount)
	if err != nil {
		return 0, err
	}
	delivery, err := decimalToNumeric(order.DeliveryCharge)
	if err != nil {
		return 0, err
	}
	final, err := decimalToNumeric(order.FinalAmount)
	if err != nil {
		return 0, err
	}
	advance, err := decimalToNumeric(order.AdvancePaid)
	if err != nil {
		return 0, err
	}
	due, err := decimalToNumeric(order.BalanceDue)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db(tx).QueryRow(ctx,
		`INSERT INTO orders (shop_id, customer_id, order_number, total_amount, delivery_charge,
			final_amount, advance_paid, balance_due, payment_status, order_status, notes, order_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING order_id`,
		order.ShopID, nullInt8(order.CustomerID), order.OrderNumber, total, delivery,
		final, advance, due, string(order.PaymentStatus), string(order.OrderStatus),
		nullText(order.Notes), order.OrderDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}
	return id, nil
}

// GetByID retrieves an order scoped to its shop
func (r *OrderRepository) GetByID(ctx context.Context, tx ports.DBTX, id, shopID int64) (*domain.Order, error) {
	row := r.db(tx).QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_id = $1 AND shop_id = $2`,
		id, shopID)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return order, nil
}

// ListByShop lists a shop's orders, newest first
func (r *OrderRepository) ListByShop(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.Order, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE shop_id = $1 ORDER BY created_at DESC`,
		shopID)
	if err != nil {
		return nil, fmt.Errorf("list orders by shop: %w", err)
	}
	return collectOrders(rows)
}

// ListByCustomer lists a customer's orders within a shop
func (r *OrderRepository) ListByCustomer(ctx context.Context, tx ports.DBTX, customerID, shopID int64) ([]*domain.Order, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE customer_id = $1 AND shop_id = $2 ORDER BY created_at DESC`,
		customerID, shopID)
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	return collectOrders(rows)
}

// ListPending lists orders that are not fully paid
func (r *OrderRepository) ListPending(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.Order, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE shop_id = $1 AND payment_status != 'fully_paid' ORDER BY created_at DESC`,
		shopID)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	return collectOrders(rows)
}

// Update writes the mutable order fields
func (r *OrderRepository) Update(ctx context.Context, tx ports.DBTX, order *domain.Order) error {
	total, err := decimalToNumeric(order.TotalAmount)
	if err != nil {
		return err
	}
	delivery, err := decimalToNumeric(order.DeliveryCharge)
	if err != nil {
		return err
	}
	final, err := decimalToNumeric(order.FinalAmount)
	if err != nil {
		return err
	}
	advance, err := decimalToNumeric(order.AdvancePaid)
	if err != nil {
		return err
	}
	due, err := decimalToNumeric(order.BalanceDue)
	if err != nil {
		return err
	}

	tag, err := r.db(tx).Exec(ctx,
		`UPDATE orders
		 SET customer_id = $1, order_number = $2, total_amount = $3, delivery_charge = $4,
		     final_amount = $5, advance_paid = $6, balance_due = $7, payment_status = $8,
		     order_status = $9, notes = $10, updated_at = NOW()
		 WHERE order_id = $11 AND shop_id = $12`,
		nullInt8(order.CustomerID), order.OrderNumber, total, delivery,
		final, advance, due, string(order.PaymentStatus),
		string(order.OrderStatus), nullText(order.Notes), order.ID, order.ShopID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// UpdateLedger writes only the payment-ledger fields and payment status
func (r *OrderRepository) UpdateLedger(ctx context.Context, tx ports.DBTX, order *domain.Order) error {
	final, err := decimalToNumeric(order.FinalAmount)
	if err != nil {
		return err
	}
	advance, err := decimalToNumeric(order.AdvancePaid)
	if err != nil {
		return err
	}
	due, err := decimalToNumeric(order.BalanceDue)
	if err != nil {
		return err
	}

	tag, err := r.db(tx).Exec(ctx,
		`UPDATE orders
		 SET final_amount = $1, advance_paid = $2, balance_due = $3, payment_status = $4, updated_at = NOW()
		 WHERE order_id = $5 AND shop_id = $6`,
		final, advance, due, string(order.PaymentStatus), order.ID, order.ShopID)
	if err != nil {
		return fmt.Errorf("update order ledger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// UpdateStatus writes only the fulfilment status
func (r *OrderRepository) UpdateStatus(ctx context.Context, tx ports.DBTX, id, shopID int64, status domain.OrderStatus) error {
	tag, err := r.db(tx).Exec(ctx,
		`UPDATE orders SET order_status = $1, updated_at = NOW() WHERE order_id = $2 AND shop_id = $3`,
		string(status), id, shopID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// Summary aggregates a shop's orders over a date range
func (r *OrderRepository) Summary(ctx context.Context, tx ports.DBTX, shopID int64, from, to time.Time) (*domain.OrderSummary, error) {
	var (
		totalOrders, fullyPaid         int64
		revenue, collected, pendingAmt pgtype.Numeric
	)
	err := r.db(tx).QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE payment_status = 'fully_paid'),
		        COALESCE(SUM(total_amount), 0),
		        COALESCE(SUM(final_amount), 0),
		        COALESCE(SUM(balance_due), 0)
		 FROM orders
		 WHERE shop_id = $1 AND order_date BETWEEN $2 AND $3`,
		shopID, from, to,
	).Scan(&totalOrders, &fullyPaid, &revenue, &collected, &pendingAmt)
	if err != nil {
		return nil, fmt.Errorf("order summary: %w", err)
	}

	summary := &domain.OrderSummary{TotalOrders: totalOrders, FullyPaidCount: fullyPaid}
	if summary.TotalRevenue, err = numericToDecimal(revenue); err != nil {
		return nil, err
	}
	if summary.TotalCollected, err = numericToDecimal(collected); err != nil {
		return nil, err
	}
	if summary.TotalPending, err = numericToDecimal(pendingAmt); err != nil {
		return nil, err
	}
	return summary, nil
}

// scanOrder reads one order row
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o                                     domain.Order
		customerID                            pgtype.Int8
		total, delivery, final, advance, due  pgtype.Numeric
		notes                                 pgtype.Text
		paymentStatus, orderStatus            string
	)
	err := row.Scan(&o.ID, &o.ShopID, &customerID, &o.OrderNumber, &total, &delivery,
		&final, &advance, &due, &paymentStatus, &orderStatus, &notes,
		&o.OrderDate, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	o.CustomerID = int8Ptr(customerID)
	o.Notes = notes.String
	o.PaymentStatus = domain.PaymentState(paymentStatus)
	o.OrderStatus = domain.OrderStatus(orderStatus)
	if o.TotalAmount, err = numericToDecimal(total); err != nil {
		return nil, err
	}
	if o.DeliveryCharge, err = numericToDecimal(delivery); err != nil {
		return nil, err
	}
	if o.FinalAmount, err = numericToDecimal(final); err != nil {
		return nil, err
	}
	if o.AdvancePaid, err = numericToDecimal(advance); err != nil {
		return nil, err
	}
	if o.BalanceDue, err = numericToDecimal(due); err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]*domain.Order, error) {
	defer rows.Close()
	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}
