package order

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Debug(string, ...ports.Field) {}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, tx ports.DBTX, order *domain.Order) (int64, error) {
	args := m.Called(ctx, tx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, tx ports.DBTX, id, shopID int64) (*domain.Order, error) {
	args := m.Called(ctx, tx, id, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByShop(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.Order, error) {
	args := m.Called(ctx, tx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByCustomer(ctx context.Context, tx ports.DBTX, customerID, shopID int64) ([]*domain.Order, error) {
	args := m.Called(ctx, tx, customerID, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *mockOrderRepo) ListPending(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.Order, error) {
	args := m.Called(ctx, tx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *mockOrderRepo) Update(ctx context.Context, tx ports.DBTX, order *domain.Order) error {
	return m.Called(ctx, tx, order).Error(0)
}

func (m *mockOrderRepo) UpdateLedger(ctx context.Context, tx ports.DBTX, order *domain.Order) error {
	return m.Called(ctx, tx, order).Error(0)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, tx ports.DBTX, id, shopID int64, status domain.OrderStatus) error {
	return m.Called(ctx, tx, id, shopID, status).Error(0)
}

func (m *mockOrderRepo) Summary(ctx context.Context, tx ports.DBTX, shopID int64, from, to time.Time) (*domain.OrderSummary, error) {
	args := m.Called(ctx, tx, shopID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderSummary), args.Error(1)
}
