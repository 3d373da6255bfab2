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

// PaymentRepository implements ports.PaymentRepository with raw pgx queries
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db ports.DBPort) *PaymentRepository {
	return &PaymentRepository{pool: db.GetDB()}
}

func (r *PaymentRepository) db(tx ports.DBTX) ports.DBTX {
	if tx != nil {
		return tx
	}
	return r.pool
}

const paymentColumns = `payment_id, shop_id, order_id, customer_id, bank_account_id, payment_amount,
	payment_method, payment_status, transaction_id, branch_name, notes,
	payment_date, created_at, updated_at`

// Create inserts a new payment row and returns its id.
// A foreign-key violation against customers surfaces as ErrCustomerNotFound,
// a duplicate transaction id as a conflict error.
func (r *PaymentRepository) Create(ctx context.Context, tx ports.DBTX, payment *domain.Payment) (int64, error) {
	amount, err := decimalToNumeric(payment.Amount)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db(tx).QueryRow(ctx,
		`INSERT INTO payments (shop_id, order_id, customer_id, bank_account_id, payment_amount,
			payment_method, payment_status, transaction_id, branch_name, notes, payment_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING payment_id`,
		payment.ShopID, nullInt8(payment.OrderID), nullInt8(payment.CustomerID),
		nullInt8(payment.BankAccountID), amount, string(payment.Method),
		string(payment.Status), payment.TransactionID, nullText(payment.BranchName),
		nullText(payment.Notes), payment.PaymentDate,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err, "payments_customer_id_fkey") {
			return 0, domain.WrapError(domain.ErrorCodeCustomerNotFound,
				"customer not found, select a valid customer", err)
		}
		if isUniqueViolation(err) {
			return 0, domain.WrapError(domain.ErrorCodeDuplicateTransactionID,
				"transaction id already recorded", err)
		}
		return 0, fmt.Errorf("create payment: %w", err)
	}
	return id, nil
}

// GetByID retrieves a payment scoped to its shop
func (r *PaymentRepository) GetByID(ctx context.Context, tx ports.DBTX, id, shopID int64) (*domain.Payment, error) {
	row := r.db(tx).QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1 AND shop_id = $2`,
		id, shopID)
	payment, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get payment by id: %w", err)
	}
	return payment, nil
}

// Update writes the mutable payment fields
func (r *PaymentRepository) Update(ctx context.Context, tx ports.DBTX, payment *domain.Payment) error {
	amount, err := decimalToNumeric(payment.Amount)
	if err != nil {
		return err
	}

	tag, err := r.db(tx).Exec(ctx,
		`UPDATE payments
		 SET order_id = $1, customer_id = $2, bank_account_id = $3, payment_amount = $4,
		     payment_method = $5, payment_status = $6, branch_name = $7, notes = $8,
		     payment_date = $9, updated_at = NOW()
		 WHERE payment_id = $10 AND shop_id = $11`,
		nullInt8(payment.OrderID), nullInt8(payment.CustomerID), nullInt8(payment.BankAccountID),
		amount, string(payment.Method), string(payment.Status),
		nullText(payment.BranchName), nullText(payment.Notes), payment.PaymentDate,
		payment.ID, payment.ShopID)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// Delete removes a payment row
func (r *PaymentRepository) Delete(ctx context.Context, tx ports.DBTX, id, shopID int64) error {
	tag, err := r.db(tx).Exec(ctx,
		`DELETE FROM payments WHERE payment_id = $1 AND shop_id = $2`, id, shopID)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// ListByShop lists a shop's payments, newest first
func (r *PaymentRepository) ListByShop(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.Payment, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE shop_id = $1 ORDER BY payment_date DESC`,
		shopID)
	if err != nil {
		return nil, fmt.Errorf("list payments by shop: %w", err)
	}
	return collectPayments(rows)
}

// ListByOrder lists the payments recorded against an order
func (r *PaymentRepository) ListByOrder(ctx context.Context, tx ports.DBTX, orderID int64) ([]*domain.Payment, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1 ORDER BY payment_date DESC`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments by order: %w", err)
	}
	return collectPayments(rows)
}

// ListByDateRange lists a shop's payments between two dates
func (r *PaymentRepository) ListByDateRange(ctx context.Context, tx ports.DBTX, shopID int64, from, to time.Time) ([]*domain.Payment, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+paymentColumns+` FROM payments
		 WHERE shop_id = $1 AND payment_date BETWEEN $2 AND $3 ORDER BY payment_date DESC`,
		shopID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list payments by date range: %w", err)
	}
	return collectPayments(rows)
}

// ListByMethod lists a shop's payments made with one method
func (r *PaymentRepository) ListByMethod(ctx context.Context, tx ports.DBTX, shopID int64, method domain.PaymentMethod) ([]*domain.Payment, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+paymentColumns+` FROM payments
		 WHERE shop_id = $1 AND payment_method = $2 ORDER BY payment_date DESC`,
		shopID, string(method))
	if err != nil {
		return nil, fmt.Errorf("list payments by method: %w", err)
	}
	return collectPayments(rows)
}

// Summary aggregates a shop's completed payments, overall and per method
func (r *PaymentRepository) Summary(ctx context.Context, tx ports.DBTX, shopID int64) (*domain.PaymentSummary, error) {
	summary := &domain.PaymentSummary{}

	var total pgtype.Numeric
	err := r.db(tx).QueryRow(ctx,
		`SELECT COALESCE(SUM(payment_amount), 0), COUNT(*)
		 FROM payments WHERE shop_id = $1 AND payment_status = 'completed'`,
		shopID,
	).Scan(&total, &summary.Count)
	if err != nil {
		return nil, fmt.Errorf("payment summary: %w", err)
	}
	if summary.Total, err = numericToDecimal(total); err != nil {
		return nil, err
	}

	rows, err := r.db(tx).Query(ctx,
		`SELECT payment_method, COALESCE(SUM(payment_amount), 0), COUNT(*)
		 FROM payments WHERE shop_id = $1 AND payment_status = 'completed'
		 GROUP BY payment_method ORDER BY payment_method`,
		shopID)
	if err != nil {
		return nil, fmt.Errorf("payment summary by method: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			method      string
			methodTotal pgtype.Numeric
			row         domain.MethodTotal
		)
		if err := rows.Scan(&method, &methodTotal, &row.Count); err != nil {
			return nil, fmt.Errorf("scan method total: %w", err)
		}
		row.Method = domain.PaymentMethod(method)
		if row.Total, err = numericToDecimal(methodTotal); err != nil {
			return nil, err
		}
		summary.ByMethod = append(summary.ByMethod, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate method totals: %w", err)
	}
	return summary, nil
}

// scanPayment reads one payment row
func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		p                               domain.Payment
		orderID, customerID, accountID  pgtype.Int8
		amount                          pgtype.Numeric
		branch, notes                   pgtype.Text
		method, status                  string
	)
	err := row.Scan(&p.ID, &p.ShopID, &orderID, &customerID, &accountID, &amount,
		&method, &status, &p.TransactionID, &branch, &notes,
		&p.PaymentDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.OrderID = int8Ptr(orderID)
	p.CustomerID = int8Ptr(customerID)
	p.BankAccountID = int8Ptr(accountID)
	p.Method = domain.PaymentMethod(method)
	p.Status = domain.PaymentStatus(status)
	p.BranchName = branch.String
	p.Notes = notes.String
	if p.Amount, err = numericToDecimal(amount); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPayments(rows pgx.Rows) ([]*domain.Payment, error) {
	defer rows.Close()
	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return payments, nil
}
