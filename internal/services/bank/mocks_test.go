package bank

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

type fakeDB struct{}

func (fakeDB) GetDB() *pgxpool.Pool { return nil }

func (fakeDB) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

func (fakeDB) WithReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
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

type mockCollectionRepo struct {
	mock.Mock
}

func (m *mockCollectionRepo) Create(ctx context.Context, tx ports.DBTX, collection *domain.BankCollection) (int64, error) {
	args := m.Called(ctx, tx, collection)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCollectionRepo) ListByAccount(ctx context.Context, tx ports.DBTX, bankAccountID int64) ([]*domain.BankCollection, error) {
	args := m.Called(ctx, tx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BankCollection), args.Error(1)
}

func (m *mockCollectionRepo) ListByShop(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.BankCollection, error) {
	args := m.Called(ctx, tx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BankCollection), args.Error(1)
}

func (m *mockCollectionRepo) ListByDateRange(ctx context.Context, tx ports.DBTX, shopID int64, from, to time.Time) ([]*domain.BankCollection, error) {
	args := m.Called(ctx, tx, shopID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BankCollection), args.Error(1)
}

func (m *mockCollectionRepo) Summary(ctx context.Context, tx ports.DBTX, shopID int64) (*domain.CollectionSummary, error) {
	args := m.Called(ctx, tx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionSummary), args.Error(1)
}
