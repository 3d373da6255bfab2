package auth

import (
	"encoding/json"
	"net/http"

	"github.com/threadline/pos-service/internal/domain/ports"
	"github.com/threadline/pos-service/internal/handlers/respond"
	sports "github.com/threadline/pos-service/internal/services/ports"
)

// Handler exposes the login endpoint
type Handler struct {
	service sports.AuthService
	logger  ports.Logger
}

// NewHandler creates a new auth handler
func NewHandler(service sports.AuthService, logger ports.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user":       result.User,
	})
}
