package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
)

// CustomerRepository implements ports.CustomerRepository with raw pgx queries
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db ports.DBPort) *CustomerRepository {
	return &CustomerRepository{pool: db.GetDB()}
}

func (r *CustomerRepository) db(tx ports.DBTX) ports.DBTX {
	if tx != nil {
		return tx
	}
	return r.pool
}

const customerColumns = `customer_id, shop_id, first_name, last_name, phone, email, address,
	created_at, updated_at`

func (r *CustomerRepository) Create(ctx context.Context, tx ports.DBTX, customer *domain.Customer) (int64, error) {
	var id int64
	err := r.db(tx).QueryRow(ctx,
		`INSERT INTO customers (shop_id, first_name, last_name, phone, email, address)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING customer_id`,
		customer.ShopID, customer.FirstName, customer.LastName,
		nullText(customer.Phone), nullText(customer.Email), nullText(customer.Address),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create customer: %w", err)
	}
	return id, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, tx ports.DBTX, id, shopID int64) (*domain.Customer, error) {
	row := r.db(tx).QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE customer_id = $1 AND shop_id = $2`,
		id, shopID)
	customer, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get customer by id: %w", err)
	}
	return customer, nil
}

func (r *CustomerRepository) ListByShop(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.Customer, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE shop_id = $1
		 ORDER BY first_name, last_name`,
		shopID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, tx ports.DBTX, customer *domain.Customer) error {
	tag, err := r.db(tx).Exec(ctx,
		`UPDATE customers
		 SET first_name = $1, last_name = $2, phone = $3, email = $4, address = $5, updated_at = NOW()
		 WHERE customer_id = $6 AND shop_id = $7`,
		customer.FirstName, customer.LastName, nullText(customer.Phone),
		nullText(customer.Email), nullText(customer.Address),
		customer.ID, customer.ShopID)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, tx ports.DBTX, id, shopID int64) error {
	tag, err := r.db(tx).Exec(ctx,
		`DELETE FROM customers WHERE customer_id = $1 AND shop_id = $2`,
		id, shopID)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var (
		c                     domain.Customer
		phone, email, address pgtype.Text
	)
	err := row.Scan(&c.ID, &c.ShopID, &c.FirstName, &c.LastName,
		&phone, &email, &address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Phone = phone.String
	c.Email = email.String
	c.Address = address.String
	return &c, nil
}
