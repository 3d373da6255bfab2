package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/threadline/pos-service/internal/domain"
)

// BankAccountRepository persists bank accounts and their running balances
type BankAccountRepository interface {
	Create(ctx context.Context, tx DBTX, account *domain.BankAccount) (int64, error)
	GetByID(ctx context.Context, tx DBTX, id, shopID int64) (*domain.BankAccount, error)
	ListByShop(ctx context.Context, tx DBTX, shopID int64) ([]*domain.BankAccount, error)
	ListActive(ctx context.Context, tx DBTX, shopID int64) ([]*domain.BankAccount, error)
	Update(ctx context.Context, tx DBTX, account *domain.BankAccount) error
	Close(ctx context.Context, tx DBTX, id, shopID int64) error

	// AdjustBalance applies delta to the running balance as a single atomic
	// UPDATE with the arithmetic in SQL, never read-modify-write in Go.
	AdjustBalance(ctx context.Context, tx DBTX, id int64, delta decimal.Decimal) error

	// LedgerTotals sums completed bank-linked payments and collections for
	// the account, for deriving the balance on read.
	LedgerTotals(ctx context.Context, tx DBTX, id int64) (deposits, collections decimal.Decimal, err error)
}

// BankCollectionRepository persists withdrawal events
type BankCollectionRepository interface {
	Create(ctx context.Context, tx DBTX, collection *domain.BankCollection) (int64, error)
	ListByAccount(ctx context.Context, tx DBTX, bankAccountID int64) ([]*domain.BankCollection, error)
	ListByShop(ctx context.Context, tx DBTX, shopID int64) ([]*domain.BankCollection, error)
	ListByDateRange(ctx context.Context, tx DBTX, shopID int64, from, to time.Time) ([]*domain.BankCollection, error)
	Summary(ctx context.Context, tx DBTX, shopID int64) (*domain.CollectionSummary, error)
}
