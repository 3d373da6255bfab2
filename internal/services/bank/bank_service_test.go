package bank

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/threadline/pos-service/internal/domain"
	sports "github.com/threadline/pos-service/internal/services/ports"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService() (*Service, *mockAccountRepo, *mockCollectionRepo) {
	accounts := new(mockAccountRepo)
	collections := new(mockCollectionRepo)
	return NewService(fakeDB{}, accounts, collections, nopLogger{}), accounts, collections
}

func storedAccount(balance string) *domain.BankAccount {
	return &domain.BankAccount{
		ID:                3,
		ShopID:            1,
		BankName:          "State Bank",
		AccountNumber:     "000111222333",
		AccountHolderName: "Threadline Retail",
		AccountType:       domain.BankAccountTypeSavings,
		InitialBalance:    dec("1000"),
		CurrentBalance:    dec(balance),
		Status:            domain.BankAccountStatusActive,
	}
}

func TestCreateAccount_SeedsRunningBalance(t *testing.T) {
	svc, accounts, _ := newTestService()

	accounts.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.BankAccount")).
		Return(int64(3), nil)

	account, err := svc.CreateAccount(context.Background(), sports.CreateBankAccountRequest{
		ShopID:            1,
		BankName:          "State Bank",
		AccountNumber:     "000111222333",
		AccountHolderName: "Threadline Retail",
		AccountType:       "savings",
		InitialBalance:    dec("5000"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), account.ID)
	assert.True(t, account.CurrentBalance.Equal(dec("5000")))
	assert.Equal(t, domain.BankAccountStatusActive, account.Status)
}

func TestCreateAccount_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateAccount(context.Background(), sports.CreateBankAccountRequest{
		ShopID:      1,
		BankName:    "State Bank",
		AccountType: "savings",
	})
	assert.Equal(t, domain.ErrorCodeValidationMissingField, domain.GetErrorCode(err))

	_, err = svc.CreateAccount(context.Background(), sports.CreateBankAccountRequest{
		ShopID:            1,
		BankName:          "State Bank",
		AccountNumber:     "1",
		AccountHolderName: "x",
		AccountType:       "offshore",
	})
	assert.Equal(t, domain.ErrorCodeValidationFailed, domain.GetErrorCode(err))

	_, err = svc.CreateAccount(context.Background(), sports.CreateBankAccountRequest{
		ShopID:            1,
		BankName:          "State Bank",
		AccountNumber:     "1",
		AccountHolderName: "x",
		AccountType:       "savings",
		InitialBalance:    dec("-1"),
	})
	assert.Equal(t, domain.ErrorCodeValidationAmountInvalid, domain.GetErrorCode(err))
}

func TestGetAccount_DerivesComputedBalance(t *testing.T) {
	svc, accounts, _ := newTestService()

	accounts.On("GetByID", mock.Anything, mock.Anything, int64(3), int64(1)).
		Return(storedAccount("3400"), nil)
	accounts.On("LedgerTotals", mock.Anything, mock.Anything, int64(3)).
		Return(dec("3000"), dec("600"), nil)

	detail, err := svc.GetAccount(context.Background(), 3, 1)

	require.NoError(t, err)
	// initial 1000 + deposits 3000 - collections 600
	assert.True(t, detail.ComputedBalance.Equal(dec("3400")))
}

func TestReconciliation_ReportsDrift(t *testing.T) {
	svc, accounts, _ := newTestService()

	accounts.On("GetByID", mock.Anything, mock.Anything, int64(3), int64(1)).
		Return(storedAccount("3500"), nil)
	accounts.On("LedgerTotals", mock.Anything, mock.Anything, int64(3)).
		Return(dec("3000"), dec("600"), nil)

	report, err := svc.Reconciliation(context.Background(), 3, 1)

	require.NoError(t, err)
	assert.True(t, report.ComputedBalance.Equal(dec("3400")))
	assert.True(t, report.CurrentBalance.Equal(dec("3500")))
	assert.True(t, report.Drift.Equal(dec("100")))
	assert.True(t, report.TotalDeposits.Equal(dec("3000")))
	assert.True(t, report.TotalCollections.Equal(dec("600")))
}

func TestCreateCollection_DebitsAccount(t *testing.T) {
	svc, accounts, collections := newTestService()

	accounts.On("GetByID", mock.Anything, mock.Anything, int64(3), int64(1)).
		Return(storedAccount("2000"), nil)
	collections.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.BankCollection")).
		Return(int64(11), nil)
	accounts.On("AdjustBalance", mock.Anything, mock.Anything, int64(3), dec("-500")).Return(nil)

	collection, err := svc.CreateCollection(context.Background(), sports.CreateCollectionRequest{
		ShopID:        1,
		BankAccountID: 3,
		Amount:        dec("500"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), collection.ID)
	accounts.AssertExpectations(t)
	collections.AssertExpectations(t)
}

func TestCreateCollection_InsufficientBalance(t *testing.T) {
	svc, accounts, collections := newTestService()

	accounts.On("GetByID", mock.Anything, mock.Anything, int64(3), int64(1)).
		Return(storedAccount("100"), nil)

	_, err := svc.CreateCollection(context.Background(), sports.CreateCollectionRequest{
		ShopID:        1,
		BankAccountID: 3,
		Amount:        dec("250"),
	})

	require.Error(t, err)
	assert.Equal(t, domain.ErrorCodeInsufficientBalance, domain.GetErrorCode(err))

	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "100", derr.Details["current_balance"])
	assert.Equal(t, "250", derr.Details["collection_amount"])

	collections.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	accounts.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCollection_StampsShopLocalDate(t *testing.T) {
	svc, accounts, collections := newTestService()

	accounts.On("GetByID", mock.Anything, mock.Anything, int64(3), int64(1)).
		Return(storedAccount("2000"), nil)
	collections.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(int64(11), nil)
	accounts.On("AdjustBalance", mock.Anything, mock.Anything, int64(3), dec("-500")).Return(nil)

	utcDate := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	collection, err := svc.CreateCollection(context.Background(), sports.CreateCollectionRequest{
		ShopID:         1,
		BankAccountID:  3,
		Amount:         dec("500"),
		CollectionDate: utcDate,
	})

	require.NoError(t, err)
	_, offset := collection.CollectionDate.Zone()
	assert.Equal(t, 5*3600+30*60, offset)
	assert.True(t, collection.CollectionDate.Equal(utcDate))
}

func TestCreateCollection_InvalidAmount(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateCollection(context.Background(), sports.CreateCollectionRequest{
		ShopID:        1,
		BankAccountID: 3,
		Amount:        decimal.Zero,
	})

	assert.Equal(t, domain.ErrorCodeValidationAmountInvalid, domain.GetErrorCode(err))
}

func TestUpdateAccount_PartialMerge(t *testing.T) {
	svc, accounts, _ := newTestService()

	accounts.On("GetByID", mock.Anything, mock.Anything, int64(3), int64(1)).
		Return(storedAccount("2000"), nil)
	accounts.On("Update", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	branch := "MG Road"
	account, err := svc.UpdateAccount(context.Background(), sports.UpdateBankAccountRequest{
		BankAccountID: 3,
		ShopID:        1,
		BranchName:    &branch,
	})

	require.NoError(t, err)
	assert.Equal(t, "MG Road", account.BranchName)
	assert.Equal(t, "State Bank", account.BankName)
}

func TestUpdateAccount_UnknownStatus(t *testing.T) {
	svc, accounts, _ := newTestService()

	accounts.On("GetByID", mock.Anything, mock.Anything, int64(3), int64(1)).
		Return(storedAccount("2000"), nil)

	status := "frozen"
	_, err := svc.UpdateAccount(context.Background(), sports.UpdateBankAccountRequest{
		BankAccountID: 3,
		ShopID:        1,
		Status:        &status,
	})

	assert.Equal(t, domain.ErrorCodeValidationFailed, domain.GetErrorCode(err))
	accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCloseAccount(t *testing.T) {
	svc, accounts, _ := newTestService()

	accounts.On("Close", mock.Anything, mock.Anything, int64(3), int64(1)).Return(nil)

	require.NoError(t, svc.CloseAccount(context.Background(), 3, 1))
	accounts.AssertExpectations(t)
}
