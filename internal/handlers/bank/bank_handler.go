package bank

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/threadline/pos-service/internal/domain/ports"
	"github.com/threadline/pos-service/internal/handlers/request"
	"github.com/threadline/pos-service/internal/handlers/respond"
	sports "github.com/threadline/pos-service/internal/services/ports"
)

// Handler exposes bank accounts and collections over HTTP
type Handler struct {
	service sports.BankService
	logger  ports.Logger
}

// NewHandler creates a new bank handler
func NewHandler(service sports.BankService, logger ports.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type createAccountBody struct {
	ShopID            int64           `json:"shop_id"`
	BankName          string          `json:"bank_name"`
	BranchName        string          `json:"branch_name"`
	AccountNumber     string          `json:"account_number"`
	AccountHolderName string          `json:"account_holder_name"`
	AccountType       string          `json:"account_type"`
	IFSCCode          string          `json:"ifsc_code"`
	InitialBalance    decimal.Decimal `json:"initial_balance"`
}

type updateAccountBody struct {
	BankName          *string `json:"bank_name"`
	BranchName        *string `json:"branch_name"`
	AccountNumber     *string `json:"account_number"`
	AccountHolderName *string `json:"account_holder_name"`
	AccountType       *string `json:"account_type"`
	IFSCCode          *string `json:"ifsc_code"`
	Status            *string `json:"status"`
}

type createCollectionBody struct {
	ShopID         int64           `json:"shop_id"`
	BankAccountID  int64           `json:"bank_account_id"`
	Amount         decimal.Decimal `json:"collection_amount"`
	CollectionDate time.Time       `json:"collection_date"`
	Notes          string          `json:"notes"`
}

// CreateAccount handles POST /bank-accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var body createAccountBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	if body.ShopID <= 0 {
		respond.BadRequest(w, "shop_id is required")
		return
	}

	account, err := h.service.CreateAccount(r.Context(), sports.CreateBankAccountRequest{
		ShopID:            body.ShopID,
		BankName:          body.BankName,
		BranchName:        body.BranchName,
		AccountNumber:     body.AccountNumber,
		AccountHolderName: body.AccountHolderName,
		AccountType:       body.AccountType,
		IFSCCode:          body.IFSCCode,
		InitialBalance:    body.InitialBalance,
	})
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, account)
}

// ListAccounts handles GET /bank-accounts/{shopId}
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	accounts, err := h.service.ListAccounts(r.Context(), shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, accounts)
}

// ListActiveAccounts handles GET /bank-accounts/{shopId}/active
func (h *Handler) ListActiveAccounts(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	accounts, err := h.service.ListActiveAccounts(r.Context(), shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, accounts)
}

// GetAccount handles GET /bank-accounts/{shopId}/{id}
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	id, err := request.ID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	detail, err := h.service.GetAccount(r.Context(), id, shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"account":          detail.Account,
		"computed_balance": detail.ComputedBalance,
	})
}

// UpdateAccount handles PUT /bank-accounts/{shopId}/{id}
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	id, err := request.ID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var body updateAccountBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	account, err := h.service.UpdateAccount(r.Context(), sports.UpdateBankAccountRequest{
		BankAccountID:     id,
		ShopID:            shopID,
		BankName:          body.BankName,
		BranchName:        body.BranchName,
		AccountNumber:     body.AccountNumber,
		AccountHolderName: body.AccountHolderName,
		AccountType:       body.AccountType,
		IFSCCode:          body.IFSCCode,
		Status:            body.Status,
	})
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, account)
}

// CloseAccount handles DELETE /bank-accounts/{shopId}/{id}
func (h *Handler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	id, err := request.ID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	if err := h.service.CloseAccount(r.Context(), id, shopID); err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.Message(w, http.StatusOK, "bank account closed")
}

// Reconciliation handles GET /bank-accounts/{shopId}/{id}/reconciliation
func (h *Handler) Reconciliation(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	id, err := request.ID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	report, err := h.service.Reconciliation(r.Context(), id, shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, report)
}

// CreateCollection handles POST /bank-collections
func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var body createCollectionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	if body.ShopID <= 0 || body.BankAccountID <= 0 {
		respond.BadRequest(w, "shop_id and bank_account_id are required")
		return
	}

	collection, err := h.service.CreateCollection(r.Context(), sports.CreateCollectionRequest{
		ShopID:         body.ShopID,
		BankAccountID:  body.BankAccountID,
		Amount:         body.Amount,
		CollectionDate: body.CollectionDate,
		Notes:          body.Notes,
	})
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, collection)
}

// ListCollectionsByAccount handles GET /bank-collections/account/{bankAccountId}
func (h *Handler) ListCollectionsByAccount(w http.ResponseWriter, r *http.Request) {
	bankAccountID, err := request.ID(r, "bankAccountId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	collections, err := h.service.ListCollectionsByAccount(r.Context(), bankAccountID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, collections)
}

// ListCollectionsByShop handles GET /bank-collections/shop/{shopId}.
// With from/to query parameters it narrows to that date range.
func (h *Handler) ListCollectionsByShop(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	if r.URL.Query().Get("from") != "" || r.URL.Query().Get("to") != "" {
		from, to, err := request.DateRange(r)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		collections, err := h.service.ListCollectionsByDateRange(r.Context(), shopID, from, to)
		if err != nil {
			respond.Error(w, h.logger, err)
			return
		}
		respond.JSON(w, http.StatusOK, collections)
		return
	}

	collections, err := h.service.ListCollectionsByShop(r.Context(), shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, collections)
}

// CollectionSummary handles GET /bank-collections/shop/{shopId}/summary
func (h *Handler) CollectionSummary(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	summary, err := h.service.CollectionSummary(r.Context(), shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, summary)
}
