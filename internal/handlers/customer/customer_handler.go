package customer

import (
	"encoding/json"
	"net/http"

	"github.com/threadline/pos-service/internal/domain/ports"
	"github.com/threadline/pos-service/internal/handlers/request"
	"github.com/threadline/pos-service/internal/handlers/respond"
	sports "github.com/threadline/pos-service/internal/services/ports"
)

// Handler exposes customer records over HTTP
type Handler struct {
	service sports.CustomerService
	logger  ports.Logger
}

// NewHandler creates a new customer handler
func NewHandler(service sports.CustomerService, logger ports.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type createCustomerBody struct {
	ShopID    int64  `json:"shop_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

type updateCustomerBody struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
}

// Create handles POST /customers
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var body createCustomerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	if body.ShopID <= 0 {
		respond.BadRequest(w, "shop_id is required")
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), sports.CreateCustomerRequest{
		ShopID:    body.ShopID,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Phone:     body.Phone,
		Email:     body.Email,
		Address:   body.Address,
	})
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, customer)
}

// Get handles GET /customers/{id}
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

	customer, err := h.service.GetCustomer(r.Context(), id, shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, customer)
}

// ListByShop handles GET /customers/shop/{shopId}
func (h *Handler) ListByShop(w http.ResponseWriter, r *http.Request) {
	shopID, err := request.ID(r, "shopId")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	customers, err := h.service.ListCustomersByShop(r.Context(), shopID)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, customers)
}

// Update handles PUT /customers/{id}
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

	var body updateCustomerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), sports.UpdateCustomerRequest{
		CustomerID: id,
		ShopID:     shopID,
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Phone:      body.Phone,
		Email:      body.Email,
		Address:    body.Address,
	})
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, customer)
}

// Delete handles DELETE /customers/{id}
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

	if err := h.service.DeleteCustomer(r.Context(), id, shopID); err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.Message(w, http.StatusOK, "customer deleted")
}
