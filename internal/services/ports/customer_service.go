package ports

import (
	"context"

	"github.com/threadline/pos-service/internal/domain"
)

// CreateCustomerRequest carries the fields needed to register a customer
type CreateCustomerRequest struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Address   string
	ShopID    int64
}

// UpdateCustomerRequest carries a partial customer update; nil fields keep the stored value
type UpdateCustomerRequest struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	Email      *string
	Address    *string
	CustomerID int64
	ShopID     int64
}

// CustomerService manages shop-scoped customer records
type CustomerService interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error)
	GetCustomer(ctx context.Context, customerID, shopID int64) (*domain.Customer, error)
	ListCustomersByShop(ctx context.Context, shopID int64) ([]*domain.Customer, error)
	UpdateCustomer(ctx context.Context, req UpdateCustomerRequest) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID, shopID int64) error
}
