package order

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

// Handler exposes order ledgers over HTTP
type Handler struct {
	service sports.OrderService
	logger  ports.Logger
}

// NewHandler creates a new order handler
func NewHandler(service sports.OrderService, logger ports.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type createOrderBody struct {
	ShopID         int64           `json:"shop_id"`
	CustomerID     *int64          `json:"customer_id"`
	OrderNumber    string          `json:"order_number"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	Notes          string          `json:"notes"`
	OrderDate      time.Time       `json:"order_date"`
}

type updateOrderBody struct {
	CustomerID     *int64           `json:"customer_id"`
	OrderNumber    *string          `json:"order_number"`
	Notes          *string          `json:"notes"`
	TotalAmount    *decimal.Decimal `json:"total_amount"`
	DeliveryCharge *decimal.Decimal `json:"delivery_charge"`
	OrderDate      *time.Time       `json:"order_date"`
}

type recordPaymentBody struct {
	PaymentType string          `json:"payment_type"`
	Amount      decimal.Decimal `json:"payment_amount"`
}

type updateStatusBody struct {
	OrderStatus string `json:"order_status"`
	ShopID      int64  `json:"shop_id"`
}

// Create handles POST /orders
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var body createOrderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	if body.ShopID <= 0 {
		respond.BadRequest(w, "shop_id is required")
		return
	}

	o, err := h.service.CreateOrder(r.Context(), sports.CreateOrderRequest{
		ShopID:         body.ShopID,
		CustomerID:     body.CustomerID,
		OrderNumber:    body.OrderNumber,
		TotalAmount:    body.TotalAmount,
		DeliveryCharge: body.DeliveryCharge,
		Notes:          body.Notes,
		OrderDate:      body.OrderDate,
	})
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, o)
}

// Get handles GET /orders/{id}
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

	o, err := h.service.GetOrder(r.Context(), id, shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, o)
}

// ListByShop handles GET /orders/shop/{shopId}
func (h *Handler) ListByShop(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	orders, err := h.service.ListOrdersByShop(r.Context(), shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, orders)
}

// ListPending handles GET /orders/shop/{shopId}/pending
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	orders, err := h.service.ListPendingOrders(r.Context(), shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, orders)
}

// ListByCustomer handles GET /orders/customer/{customerId}
func (h *Handler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := request.ID(r, "customerId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	shopID, err := request.ShopID(r)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	orders, err := h.service.ListOrdersByCustomer(r.Context(), customerID, shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, orders)
}

// Update handles PUT /orders/{id}
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

	var body updateOrderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	o, err := h.service.UpdateOrder(r.Context(), sports.UpdateOrderRequest{
		OrderID:        id,
		ShopID:         shopID,
		CustomerID:     body.CustomerID,
		OrderNumber:    body.OrderNumber,
		Notes:          body.Notes,
		TotalAmount:    body.TotalAmount,
		DeliveryCharge: body.DeliveryCharge,
		OrderDate:      body.OrderDate,
	})
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, o)
}

// RecordPayment handles POST /orders/{id}/payment
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
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

	var body recordPaymentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	o, err := h.service.RecordPayment(r.Context(), sports.RecordOrderPaymentRequest{
		OrderID:     id,
		ShopID:      shopID,
		PaymentType: body.PaymentType,
		Amount:      body.Amount,
	})
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, o)
}

// UpdateStatus handles PUT /orders/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var body updateStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	if body.ShopID <= 0 {
		respond.BadRequest(w, "shop_id is required")
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), id, body.ShopID, body.OrderStatus)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, o)
}

// Summary handles GET /orders/shop/{shopId}/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.service.OrderSummary(r.Context(), shopID, from, to)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, summary)
}
