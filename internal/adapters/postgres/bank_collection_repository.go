package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
)

// BankCollectionRepository implements ports.BankCollectionRepository with raw pgx queries
type BankCollectionRepository struct {
	pool *pgxpool.Pool
}

// NewBankCollectionRepository creates a new bank collection repository
func NewBankCollectionRepository(db ports.DBPort) *BankCollectionRepository {
	return &BankCollectionRepository{pool: db.GetDB()}
}

func (r *BankCollectionRepository) db(tx ports.DBTX) ports.DBTX {
	if tx != nil {
		return tx
	}
	return r.pool
}

const bankCollectionColumns = `collection_id, shop_id, bank_account_id, collection_amount,
	collection_date, notes, created_at`

// Create inserts a collection record. The balance debit happens separately
// in the same transaction via BankAccountRepository.AdjustBalance.
func (r *BankCollectionRepository) Create(ctx context.Context, tx ports.DBTX, collection *domain.BankCollection) (int64, error) {
	amount, err := decimalToNumeric(collection.Amount)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db(tx).QueryRow(ctx,
		`INSERT INTO bank_collections (shop_id, bank_account_id, collection_amount, collection_date, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING collection_id`,
		collection.ShopID, collection.BankAccountID, amount,
		collection.CollectionDate, nullText(collection.Notes),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create bank collection: %w", err)
	}
	return id, nil
}

// ListByAccount lists an account's collections, newest first
func (r *BankCollectionRepository) ListByAccount(ctx context.Context, tx ports.DBTX, bankAccountID int64) ([]*domain.BankCollection, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+bankCollectionColumns+` FROM bank_collections
		 WHERE bank_account_id = $1 ORDER BY collection_date DESC`,
		bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("list collections by account: %w", err)
	}
	return collectBankCollections(rows)
}

// ListByShop lists a shop's collections across all its accounts
func (r *BankCollectionRepository) ListByShop(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.BankCollection, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+bankCollectionColumns+` FROM bank_collections
		 WHERE shop_id = $1 ORDER BY collection_date DESC`,
		shopID)
	if err != nil {
		return nil, fmt.Errorf("list collections by shop: %w", err)
	}
	return collectBankCollections(rows)
}

// ListByDateRange lists a shop's collections within [from, to]
func (r *BankCollectionRepository) ListByDateRange(ctx context.Context, tx ports.DBTX, shopID int64, from, to time.Time) ([]*domain.BankCollection, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+bankCollectionColumns+` FROM bank_collections
		 WHERE shop_id = $1 AND collection_date >= $2 AND collection_date <= $3
		 ORDER BY collection_date DESC`,
		shopID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list collections by date range: %w", err)
	}
	return collectBankCollections(rows)
}

// Summary returns the shop-wide collection count and total
func (r *BankCollectionRepository) Summary(ctx context.Context, tx ports.DBTX, shopID int64) (*domain.CollectionSummary, error) {
	var (
		summary  domain.CollectionSummary
		totalRaw pgtype.Numeric
	)
	err := r.db(tx).QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(collection_amount), 0)
		 FROM bank_collections WHERE shop_id = $1`,
		shopID,
	).Scan(&summary.Count, &totalRaw)
	if err != nil {
		return nil, fmt.Errorf("collection summary: %w", err)
	}
	if summary.Total, err = numericToDecimal(totalRaw); err != nil {
		return nil, err
	}
	return &summary, nil
}

func scanBankCollection(row pgx.Row) (*domain.BankCollection, error) {
	var (
		c      domain.BankCollection
		amount pgtype.Numeric
		notes  pgtype.Text
	)
	err := row.Scan(&c.ID, &c.ShopID, &c.BankAccountID, &amount,
		&c.CollectionDate, &notes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Notes = notes.String
	if c.Amount, err = numericToDecimal(amount); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectBankCollections(rows pgx.Rows) ([]*domain.BankCollection, error) {
	defer rows.Close()
	var collections []*domain.BankCollection
	for rows.Next() {
		collection, err := scanBankCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bank collection: %w", err)
		}
		collections = append(collections, collection)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank collections: %w", err)
	}
	return collections, nil
}
