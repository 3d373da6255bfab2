package ports

import (
	"context"

	"github.com/threadline/pos-service/internal/domain"
)

// CustomerRepository persists shop-scoped customer records
type CustomerRepository interface {
	Create(ctx context.Context, tx DBTX, customer *domain.Customer) (int64, error)
	GetByID(ctx context.Context, tx DBTX, id, shopID int64) (*domain.Customer, error)
	ListByShop(ctx context.Context, tx DBTX, shopID int64) ([]*domain.Customer, error)
	Update(ctx context.Context, tx DBTX, customer *domain.Customer) error
	Delete(ctx context.Context, tx DBTX, id, shopID int64) error
}

// UserRepository looks up login accounts
type UserRepository interface {
	GetByUsername(ctx context.Context, tx DBTX, username string) (*domain.User, error)
}
