package ports

import (
	"context"
	"time"

	"github.com/threadline/pos-service/internal/domain"
)

// PaymentRepository persists the payment journal
type PaymentRepository interface {
	Create(ctx context.Context, tx DBTX, payment *domain.Payment) (int64, error)
	GetByID(ctx context.Context, tx DBTX, id, shopID int64) (*domain.Payment, error)
	Update(ctx context.Context, tx DBTX, payment *domain.Payment) error
	Delete(ctx context.Context, tx DBTX, id, shopID int64) error
	ListByShop(ctx context.Context, tx DBTX, shopID int64) ([]*domain.Payment, error)
	ListByOrder(ctx context.Context, tx DBTX, orderID int64) ([]*domain.Payment, error)
	ListByDateRange(ctx context.Context, tx DBTX, shopID int64, from, to time.Time) ([]*domain.Payment, error)
	ListByMethod(ctx context.Context, tx DBTX, shopID int64, method domain.PaymentMethod) ([]*domain.Payment, error)
	Summary(ctx context.Context, tx DBTX, shopID int64) (*domain.PaymentSummary, error)
}
