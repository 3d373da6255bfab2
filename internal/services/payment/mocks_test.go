package payment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Debug(string, ...ports.Field) {}

// fakeDB runs transaction callbacks inline with a nil tx, so repository
// mocks see the same call shape as production code.
type fakeDB struct{}

func (fakeDB) GetDB() *pgxpool.Pool { return nil }

func (fakeDB) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

func (fakeDB) WithReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, tx ports.DBTX, payment *domain.Payment) (int64, error) {
	args := m.Called(ctx, tx, payment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, tx ports.DBTX, id, shopID int64) (*domain.Payment, error) {
	args := m.Called(ctx, tx, id, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Update(ctx context.Context, tx ports.DBTX, payment *domain.Payment) error {
	return m.Called(ctx, tx, payment).Error(0)
}

func (m *mockPaymentRepo) Delete(ctx context.Context, tx ports.DBTX, id, shopID int64) error {
	return m.Called(ctx, tx, id, shopID).Error(0)
}

func (m *mockPaymentRepo) ListByShop(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.Payment, error) {
	args := m.Called(ctx, tx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) ListByOrder(ctx context.Context, tx ports.DBTX, orderID int64) ([]*domain.Payment, error) {
	args := m.Called(ctx, tx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) ListByDateRange(ctx context.Context, tx ports.DBTX, shopID int64, from, to time.Time) ([]*domain.Payment, error) {
	args := m.Called(ctx, tx, shopID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) ListByMethod(ctx context.Context, tx ports.DBTX, shopID int64, method domain.PaymentMethod) ([]*domain.Payment, error) {
	args := m.Called(ctx, tx, shopID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Summary(ctx context.Context, tx ports.DBTX, shopID int64) (*domain.PaymentSummary, error) {
	args := m.Called(ctx, tx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSummary), args.Error(1)
}

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

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) Create(ctx context.Context, tx ports.DBTX, account *domain.BankAccount) (int64, error) {
	args := m.Called(ctx, tx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccountRepo) GetByID(ctx context.Context, tx ports.DBTX, id, shopID int64) (*domain.BankAccount, error) {
	args := m.Called(ctx, tx, id, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *mockAccountRepo) ListByShop(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.BankAccount, error) {
	args := m.Called(ctx, tx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BankAccount), args.Error(1)
}

func (m *mockAccountRepo) ListActive(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.BankAccount, error) {
	args := m.Called(ctx, tx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BankAccount), args.Error(1)
}

func (m *mockAccountRepo) Update(ctx context.Context, tx ports.DBTX, account *domain.BankAccount) error {
	return m.Called(ctx, tx, account).Error(0)
}

func (m *mockAccountRepo) Close(ctx context.Context, tx ports.DBTX, id, shopID int64) error {
	return m.Called(ctx, tx, id, shopID).Error(0)
}

func (m *mockAccountRepo) AdjustBalance(ctx context.Context, tx ports.DBTX, id int64, delta decimal.Decimal) error {
	return m.Called(ctx, tx, id, delta).Error(0)
}

func (m *mockAccountRepo) LedgerTotals(ctx context.Context, tx ports.DBTX, id int64) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, tx, id)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}
