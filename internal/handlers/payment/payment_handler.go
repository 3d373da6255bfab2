package payment

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/threadline/pos-service/internal/domain/ports"
	"github.com/threadline/pos-service/internal/handlers/request"
	"github.com/threadline/pos-service/internal/handlers/respond"
	sports "github.com/threadline/pos-service/internal/services/ports"
)

// Handler exposes the payment journal over HTTP
type Handler struct {
	service sports.PaymentService
	logger  ports.Logger
}

// NewHandler creates a new payment handler
func NewHandler(service sports.PaymentService, logger ports.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type createPaymentBody struct {
	ShopID        int64           `json:"shop_id"`
	OrderID       *int64          `json:"order_id"`
	CustomerID    *int64          `json:"customer_id"`
	Amount        decimal.Decimal `json:"payment_amount"`
	Method        string          `json:"payment_method"`
	Status        string          `json:"payment_status"`
	BankAccountID *int64          `json:"bank_account_id"`
	BranchName    string          `json:"branch_name"`
	TransactionID string          `json:"transaction_id"`
	PaymentDate   time.Time       `json:"payment_date"`
	Notes         string          `json:"notes"`
}

type updatePaymentBody struct {
	Amount        *decimal.Decimal `json:"payment_amount"`
	Method        *string          `json:"payment_method"`
	Status        *string          `json:"payment_status"`
	BankAccountID *int64           `json:"bank_account_id"`
	BranchName    *string          `json:"branch_name"`
	Notes         *string          `json:"notes"`
	PaymentDate   *time.Time       `json:"payment_date"`
}

// Create handles POST /payments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var body createPaymentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	if body.ShopID <= 0 {
		respond.BadRequest(w, "shop_id is required")
		return
	}

	result, err := h.service.CreatePayment(r.Context(), sports.CreatePaymentRequest{
		ShopID:        body.ShopID,
		OrderID:       body.OrderID,
		CustomerID:    body.CustomerID,
		Amount:        body.Amount,
		Method:        body.Method,
		Status:        body.Status,
		BankAccountID: body.BankAccountID,
		BranchName:    body.BranchName,
		TransactionID: body.TransactionID,
		PaymentDate:   body.PaymentDate,
		Notes:         body.Notes,
	})
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"payment":      result.Payment,
		"change_given": result.ChangeGiven,
	})
}

// Update handles PUT /payments/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	shopID, err := request.ShopID(r)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var body updatePaymentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	pmt, err := h.service.UpdatePayment(r.Context(), sports.UpdatePaymentRequest{
		PaymentID:     id,
		ShopID:        shopID,
		Amount:        body.Amount,
		Method:        body.Method,
		Status:        body.Status,
		BankAccountID: body.BankAccountID,
		BranchName:    body.BranchName,
		Notes:         body.Notes,
		PaymentDate:   body.PaymentDate,
	})
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, pmt)
}

// Delete handles DELETE /payments/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	shopID, err := request.ShopID(r)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	if err := h.service.DeletePayment(r.Context(), id, shopID); err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.Message(w, http.StatusOK, "payment deleted")
}

// Get handles GET /payments/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	shopID, err := request.ShopID(r)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	pmt, err := h.service.GetPayment(r.Context(), id, shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, pmt)
}

// ListByShop handles GET /payments/shop/{shopId}
func (h *Handler) ListByShop(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	payments, err := h.service.ListPaymentsByShop(r.Context(), shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, payments)
}

// ListByOrder handles GET /payments/order/{orderId}
func (h *Handler) ListByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := request.ID(r, "orderId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	payments, err := h.service.ListPaymentsByOrder(r.Context(), orderID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, payments)
}

// ListByDateRange handles GET /payments/shop/{shopId}/date-range
func (h *Handler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	from, to, err := request.DateRange(r)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	payments, err := h.service.ListPaymentsByDateRange(r.Context(), shopID, from, to)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, payments)
}

// ListByMethod handles GET /payments/shop/{shopId}/method/{method}
func (h *Handler) ListByMethod(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	payments, err := h.service.ListPaymentsByMethod(r.Context(), shopID, chi.URLParam(r, "method"))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, payments)
}

// Summary handles GET /payments/shop/{shopId}/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	summary, err := h.service.PaymentSummary(r.Context(), shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, summary)
}
