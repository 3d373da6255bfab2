package bank

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
	sports "github.com/threadline/pos-service/internal/services/ports"
	"github.com/threadline/pos-service/pkg/observability"
	"github.com/threadline/pos-service/pkg/timeutil"
)

// Service implements sports.BankService. Account balances are maintained as a
// running total; reads additionally derive the balance from the payment and
// collection history so the two can be compared.
type Service struct {
	db          ports.DBPort
	accounts    ports.BankAccountRepository
	collections ports.BankCollectionRepository
	logger      ports.Logger
}

// NewService creates a new bank service
func NewService(
	db ports.DBPort,
	accounts ports.BankAccountRepository,
	collections ports.BankCollectionRepository,
	logger ports.Logger,
) *Service {
	return &Service{
		db:          db,
		accounts:    accounts,
		collections: collections,
		logger:      logger,
	}
}

// CreateAccount registers a bank account with its running balance seeded
// from the initial balance.
func (s *Service) CreateAccount(ctx context.Context, req sports.CreateBankAccountRequest) (*domain.BankAccount, error) {
	if req.BankName == "" || req.AccountNumber == "" || req.AccountHolderName == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationMissingField,
			"bank name, account number, and account holder name are required")
	}
	if !domain.ValidBankAccountType(req.AccountType) {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationFailed,
			"unknown account type").WithDetail("account_type", req.AccountType)
	}
	if req.InitialBalance.LessThan(decimal.Zero) {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationAmountInvalid,
			"initial balance cannot be negative").
			WithDetail("initial_balance", req.InitialBalance.String())
	}

	account := &domain.BankAccount{
		ShopID:            req.ShopID,
		BankName:          req.BankName,
		BranchName:        req.BranchName,
		AccountNumber:     req.AccountNumber,
		AccountHolderName: req.AccountHolderName,
		AccountType:       domain.BankAccountType(req.AccountType),
		IFSCCode:          req.IFSCCode,
		InitialBalance:    req.InitialBalance,
		CurrentBalance:    req.InitialBalance,
		Status:            domain.BankAccountStatusActive,
	}

	id, err := s.accounts.Create(ctx, nil, account)
	if err != nil {
		s.logger.Error("create bank account failed",
			ports.Int64("shop_id", req.ShopID),
			ports.Err(err))
		return nil, err
	}
	account.ID = id

	s.logger.Info("bank account created",
		ports.Int64("bank_account_id", account.ID),
		ports.Int64("shop_id", account.ShopID),
		ports.Decimal("initial_balance", account.InitialBalance))
	return account, nil
}

// GetAccount retrieves an account plus its balance derived from history.
// Both reads run in one read-only transaction for a consistent snapshot.
func (s *Service) GetAccount(ctx context.Context, bankAccountID, shopID int64) (*sports.BankAccountDetail, error) {
	var detail *sports.BankAccountDetail
	err := s.db.WithReadOnlyTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		account, err := s.accounts.GetByID(ctx, tx, bankAccountID, shopID)
		if err != nil {
			return err
		}
		deposits, collections, err := s.accounts.LedgerTotals(ctx, tx, bankAccountID)
		if err != nil {
			return err
		}
		detail = &sports.BankAccountDetail{
			Account:         account,
			ComputedBalance: account.InitialBalance.Add(deposits).Sub(collections),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ListAccounts lists a shop's bank accounts
func (s *Service) ListAccounts(ctx context.Context, shopID int64) ([]*domain.BankAccount, error) {
	return s.accounts.ListByShop(ctx, nil, shopID)
}

// ListActiveAccounts lists only a shop's active accounts
func (s *Service) ListActiveAccounts(ctx context.Context, shopID int64) ([]*domain.BankAccount, error) {
	return s.accounts.ListActive(ctx, nil, shopID)
}

// UpdateAccount overlays the request's set fields on the stored account.
// The running balance is not editable through this path.
func (s *Service) UpdateAccount(ctx context.Context, req sports.UpdateBankAccountRequest) (*domain.BankAccount, error) {
	account, err := s.accounts.GetByID(ctx, nil, req.BankAccountID, req.ShopID)
	if err != nil {
		return nil, err
	}

	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.BranchName != nil {
		account.BranchName = *req.BranchName
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	if req.AccountHolderName != nil {
		account.AccountHolderName = *req.AccountHolderName
	}
	if req.AccountType != nil {
		if !domain.ValidBankAccountType(*req.AccountType) {
			return nil, domain.NewDomainError(domain.ErrorCodeValidationFailed,
				"unknown account type").WithDetail("account_type", *req.AccountType)
		}
		account.AccountType = domain.BankAccountType(*req.AccountType)
	}
	if req.IFSCCode != nil {
		account.IFSCCode = *req.IFSCCode
	}
	if req.Status != nil {
		switch domain.BankAccountStatus(*req.Status) {
		case domain.BankAccountStatusActive, domain.BankAccountStatusInactive, domain.BankAccountStatusClosed:
			account.Status = domain.BankAccountStatus(*req.Status)
		default:
			return nil, domain.NewDomainError(domain.ErrorCodeValidationFailed,
				"unknown account status").WithDetail("status", *req.Status)
		}
	}

	if err := s.accounts.Update(ctx, nil, account); err != nil {
		s.logger.Error("update bank account failed",
			ports.Int64("bank_account_id", req.BankAccountID),
			ports.Int64("shop_id", req.ShopID),
			ports.Err(err))
		return nil, err
	}
	return account, nil
}

// CloseAccount marks an account closed. Its history stays queryable.
func (s *Service) CloseAccount(ctx context.Context, bankAccountID, shopID int64) error {
	if err := s.accounts.Close(ctx, nil, bankAccountID, shopID); err != nil {
		return err
	}
	s.logger.Info("bank account closed",
		ports.Int64("bank_account_id", bankAccountID),
		ports.Int64("shop_id", shopID))
	return nil
}

// Reconciliation compares the account's running balance against the balance
// derived from its payment and collection history.
func (s *Service) Reconciliation(ctx context.Context, bankAccountID, shopID int64) (*domain.ReconciliationReport, error) {
	var report *domain.ReconciliationReport
	err := s.db.WithReadOnlyTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		account, err := s.accounts.GetByID(ctx, tx, bankAccountID, shopID)
		if err != nil {
			return err
		}
		deposits, collections, err := s.accounts.LedgerTotals(ctx, tx, bankAccountID)
		if err != nil {
			return err
		}
		computed := account.InitialBalance.Add(deposits).Sub(collections)
		report = &domain.ReconciliationReport{
			BankAccountID:    account.ID,
			InitialBalance:   account.InitialBalance,
			CurrentBalance:   account.CurrentBalance,
			TotalDeposits:    deposits,
			TotalCollections: collections,
			ComputedBalance:  computed,
			Drift:            account.CurrentBalance.Sub(computed),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// CreateCollection records a withdrawal and debits the account's running
// balance, both inside one transaction. The balance check happens against
// the row as read inside that transaction, so a failed guard leaves the
// account untouched.
func (s *Service) CreateCollection(ctx context.Context, req sports.CreateCollectionRequest) (*domain.BankCollection, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationAmountInvalid,
			"collection amount must be positive").
			WithDetail("collection_amount", req.Amount.String())
	}

	collectionDate := req.CollectionDate
	if collectionDate.IsZero() {
		collectionDate = timeutil.NowShopLocal()
	} else {
		collectionDate = timeutil.ToShopLocal(collectionDate)
	}

	collection := &domain.BankCollection{
		ShopID:         req.ShopID,
		BankAccountID:  req.BankAccountID,
		Amount:         req.Amount,
		CollectionDate: collectionDate,
		Notes:          req.Notes,
	}

	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		account, err := s.accounts.GetByID(ctx, tx, req.BankAccountID, req.ShopID)
		if err != nil {
			return err
		}
		if account.CurrentBalance.LessThan(req.Amount) {
			return domain.NewDomainError(domain.ErrorCodeInsufficientBalance,
				"collection amount exceeds the account balance").
				WithDetail("current_balance", account.CurrentBalance.String()).
				WithDetail("collection_amount", req.Amount.String())
		}

		id, err := s.collections.Create(ctx, tx, collection)
		if err != nil {
			return err
		}
		collection.ID = id

		return s.accounts.AdjustBalance(ctx, tx, req.BankAccountID, req.Amount.Neg())
	})
	if err != nil {
		s.logger.Error("create collection failed",
			ports.Int64("bank_account_id", req.BankAccountID),
			ports.Int64("shop_id", req.ShopID),
			ports.Err(err))
		return nil, err
	}

	s.logger.Info("collection recorded",
		ports.Int64("collection_id", collection.ID),
		ports.Int64("bank_account_id", collection.BankAccountID),
		ports.Decimal("collection_amount", collection.Amount))
	observability.RecordCollection(collection.Amount)
	observability.RecordLedgerAdjustment(collection.Amount.Neg())
	return collection, nil
}

// ListCollectionsByAccount lists an account's collections
func (s *Service) ListCollectionsByAccount(ctx context.Context, bankAccountID int64) ([]*domain.BankCollection, error) {
	return s.collections.ListByAccount(ctx, nil, bankAccountID)
}

// ListCollectionsByShop lists a shop's collections
func (s *Service) ListCollectionsByShop(ctx context.Context, shopID int64) ([]*domain.BankCollection, error) {
	return s.collections.ListByShop(ctx, nil, shopID)
}

// ListCollectionsByDateRange lists a shop's collections within [from, to]
func (s *Service) ListCollectionsByDateRange(ctx context.Context, shopID int64, from, to time.Time) ([]*domain.BankCollection, error) {
	return s.collections.ListByDateRange(ctx, nil, shopID, from, to)
}

// CollectionSummary aggregates a shop's collections
func (s *Service) CollectionSummary(ctx context.Context, shopID int64) (*domain.CollectionSummary, error) {
	return s.collections.Summary(ctx, nil, shopID)
}
