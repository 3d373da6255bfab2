package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
)

// BankAccountRepository implements ports.BankAccountRepository with raw pgx queries
type BankAccountRepository struct {
	pool *pgxpool.Pool
}

// NewBankAccountRepository creates a new bank account repository
func NewBankAccountRepository(db ports.DBPort) *BankAccountRepository {
	return &BankAccountRepository{pool: db.GetDB()}
}

func (r *BankAccountRepository) db(tx ports.DBTX) ports.DBTX {
	if tx != nil {
		return tx
	}
	return r.pool
}

const bankAccountColumns = `bank_account_id, shop_id, bank_name, branch_name, account_number,
	account_holder_name, account_type, ifsc_code, initial_balance, current_balance,
	status, created_at, updated_at`

// Create inserts a new bank account. The running balance starts at the
// initial balance. A duplicate account number within the shop is a conflict.
func (r *BankAccountRepository) Create(ctx context.Context, tx ports.DBTX, account *domain.BankAccount) (int64, error) {
	initial, err := decimalToNumeric(account.InitialBalance)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db(tx).QueryRow(ctx,
		`INSERT INTO bank_accounts (shop_id, bank_name, branch_name, account_number,
			account_holder_name, account_type, ifsc_code, initial_balance, current_balance, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, 'active')
		 RETURNING bank_account_id`,
		account.ShopID, account.BankName, nullText(account.BranchName), account.AccountNumber,
		account.AccountHolderName, string(account.AccountType), nullText(account.IFSCCode), initial,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.WrapError(domain.ErrorCodeDuplicateAccountNumber,
				"account number already exists for this shop", err)
		}
		return 0, fmt.Errorf("create bank account: %w", err)
	}
	return id, nil
}

// GetByID retrieves a bank account scoped to its shop
func (r *BankAccountRepository) GetByID(ctx context.Context, tx ports.DBTX, id, shopID int64) (*domain.BankAccount, error) {
	row := r.db(tx).QueryRow(ctx,
		`SELECT `+bankAccountColumns+` FROM bank_accounts WHERE bank_account_id = $1 AND shop_id = $2`,
		id, shopID)
	account, err := scanBankAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBankAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bank account by id: %w", err)
	}
	return account, nil
}

// ListByShop lists a shop's bank accounts, newest first
func (r *BankAccountRepository) ListByShop(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.BankAccount, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+bankAccountColumns+` FROM bank_accounts WHERE shop_id = $1 ORDER BY created_at DESC`,
		shopID)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	return collectBankAccounts(rows)
}

// ListActive lists only a shop's active accounts
func (r *BankAccountRepository) ListActive(ctx context.Context, tx ports.DBTX, shopID int64) ([]*domain.BankAccount, error) {
	rows, err := r.db(tx).Query(ctx,
		`SELECT `+bankAccountColumns+` FROM bank_accounts
		 WHERE shop_id = $1 AND status = 'active' ORDER BY created_at DESC`,
		shopID)
	if err != nil {
		return nil, fmt.Errorf("list active bank accounts: %w", err)
	}
	return collectBankAccounts(rows)
}

// Update writes the mutable account fields (not the running balance)
func (r *BankAccountRepository) Update(ctx context.Context, tx ports.DBTX, account *domain.BankAccount) error {
	tag, err := r.db(tx).Exec(ctx,
		`UPDATE bank_accounts
		 SET bank_name = $1, branch_name = $2, account_number = $3, account_holder_name = $4,
		     account_type = $5, ifsc_code = $6, status = $7, updated_at = NOW()
		 WHERE bank_account_id = $8 AND shop_id = $9`,
		account.BankName, nullText(account.BranchName), account.AccountNumber,
		account.AccountHolderName, string(account.AccountType), nullText(account.IFSCCode),
		string(account.Status), account.ID, account.ShopID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.WrapError(domain.ErrorCodeDuplicateAccountNumber,
				"account number already exists for this shop", err)
		}
		return fmt.Errorf("update bank account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBankAccountNotFound
	}
	return nil
}

// Close soft-deletes an account by marking it closed
func (r *BankAccountRepository) Close(ctx context.Context, tx ports.DBTX, id, shopID int64) error {
	tag, err := r.db(tx).Exec(ctx,
		`UPDATE bank_accounts SET status = 'closed', updated_at = NOW()
		 WHERE bank_account_id = $1 AND shop_id = $2`,
		id, shopID)
	if err != nil {
		return fmt.Errorf("close bank account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBankAccountNotFound
	}
	return nil
}

// AdjustBalance applies delta to the running balance. The arithmetic runs in
// a single UPDATE statement so concurrent adjustments cannot lose updates.
func (r *BankAccountRepository) AdjustBalance(ctx context.Context, tx ports.DBTX, id int64, delta decimal.Decimal) error {
	amount, err := decimalToNumeric(delta)
	if err != nil {
		return err
	}

	tag, err := r.db(tx).Exec(ctx,
		`UPDATE bank_accounts SET current_balance = current_balance + $1, updated_at = NOW()
		 WHERE bank_account_id = $2`,
		amount, id)
	if err != nil {
		return fmt.Errorf("adjust bank balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBankAccountNotFound
	}
	return nil
}

// LedgerTotals sums the account's completed bank-linked payments and its collections
func (r *BankAccountRepository) LedgerTotals(ctx context.Context, tx ports.DBTX, id int64) (decimal.Decimal, decimal.Decimal, error) {
	var depositsRaw, collectionsRaw pgtype.Numeric
	err := r.db(tx).QueryRow(ctx,
		`SELECT
		   COALESCE((SELECT SUM(payment_amount) FROM payments
		             WHERE bank_account_id = $1 AND payment_status = 'completed'
		             AND payment_method IN ('online_transfer', 'bank_deposit')), 0),
		   COALESCE((SELECT SUM(collection_amount) FROM bank_collections
		             WHERE bank_account_id = $1), 0)`,
		id,
	).Scan(&depositsRaw, &collectionsRaw)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("ledger totals: %w", err)
	}

	deposits, err := numericToDecimal(depositsRaw)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	collections, err := numericToDecimal(collectionsRaw)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return deposits, collections, nil
}

// scanBankAccount reads one bank account row
func scanBankAccount(row pgx.Row) (*domain.BankAccount, error) {
	var (
		a                  domain.BankAccount
		branch, ifsc       pgtype.Text
		initial, current   pgtype.Numeric
		accountType, state string
	)
	err := row.Scan(&a.ID, &a.ShopID, &a.BankName, &branch, &a.AccountNumber,
		&a.AccountHolderName, &accountType, &ifsc, &initial, &current,
		&state, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	a.BranchName = branch.String
	a.IFSCCode = ifsc.String
	a.AccountType = domain.BankAccountType(accountType)
	a.Status = domain.BankAccountStatus(state)
	if a.InitialBalance, err = numericToDecimal(initial); err != nil {
		return nil, err
	}
	if a.CurrentBalance, err = numericToDecimal(current); err != nil {
		return nil, err
	}
	return &a, nil
}

func collectBankAccounts(rows pgx.Rows) ([]*domain.BankAccount, error) {
	defer rows.Close()
	var accounts []*domain.BankAccount
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank accounts: %w", err)
	}
	return accounts, nil
}
