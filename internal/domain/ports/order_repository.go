package ports

import (
	"context"
	"time"

	"github.com/threadline/pos-service/internal/domain"
)

// OrderRepository persists order ledgers.
// A nil DBTX runs the statement against the pool; callers inside a
// transaction pass the pgx.Tx so the statement joins it.
type OrderRepository interface {
	Create(ctx context.Context, tx DBTX, order *domain.Order) (int64, error)
	GetByID(ctx context.Context, tx DBTX, id, shopID int64) (*domain.Order, error)
	ListByShop(ctx context.Context, tx DBTX, shopID int64) ([]*domain.Order, error)
	ListByCustomer(ctx context.Context, tx DBTX, customerID, shopID int64) ([]*domain.Order, error)
	ListPending(ctx context.Context, tx DBTX, shopID int64) ([]*domain.Order, error)

	// Update writes the mutable order fields (ledger, statuses, notes)
	Update(ctx context.Context, tx DBTX, order *domain.Order) error

	// UpdateLedger writes only the payment-ledger fields and payment status
	UpdateLedger(ctx context.Context, tx DBTX, order *domain.Order) error

	UpdateStatus(ctx context.Context, tx DBTX, id, shopID int64, status domain.OrderStatus) error
	Summary(ctx context.Context, tx DBTX, shopID int64, from, to time.Time) (*domain.OrderSummary, error)
}
