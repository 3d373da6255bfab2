// Package respond writes the uniform JSON envelope every API endpoint uses
// and maps domain error codes onto HTTP statuses.
package respond

import (
	"errors"
	"net/http"

	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
	"github.com/threadline/pos-service/pkg/encoding"
)

// Envelope is the response shape shared by every endpoint
type Envelope struct {
	Data    interface{}            `json:"data,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
	Message string                 `json:"message,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Success bool                   `json:"success"`
}

// JSON writes a success envelope with the given payload
func JSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Envelope{Success: true, Data: data})
}

// Message writes a success envelope carrying only a message
func Message(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: true, Message: message})
}

// Error maps err onto an HTTP status and writes a failure envelope.
// Infrastructure errors are reported generically; their detail stays in logs.
func Error(w http.ResponseWriter, logger ports.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	var details map[string]interface{}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		switch {
		case domain.IsValidationError(err), domain.IsBusinessRuleError(err):
			status = http.StatusBadRequest
			message = domainErr.Message
			details = domainErr.Details
		case domain.IsNotFoundError(err):
			status = http.StatusNotFound
			message = domainErr.Message
		case domain.IsConflictError(err):
			status = http.StatusConflict
			message = domainErr.Message
			details = domainErr.Details
		case domain.IsAuthError(err):
			status = authStatus(domainErr.Code)
			message = domainErr.Message
		default:
			logger.Error("request failed", ports.Err(err))
		}
		write(w, status, Envelope{Success: false, Error: string(domainErr.Code), Message: message, Details: details})
		return
	}

	logger.Error("request failed", ports.Err(err))
	write(w, status, Envelope{Success: false, Error: string(domain.ErrorCodeInternalError), Message: message})
}

// BadRequest writes a validation failure for malformed input
func BadRequest(w http.ResponseWriter, message string) {
	write(w, http.StatusBadRequest, Envelope{
		Success: false,
		Error:   string(domain.ErrorCodeValidationFailed),
		Message: message,
	})
}

func authStatus(code domain.ErrorCode) int {
	if code == domain.ErrorCodeAuthShopMismatch {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}

func write(w http.ResponseWriter, status int, env Envelope) {
	body, err := encoding.EncodeJSON(env)
	if err != nil {
		http.Error(w, `{"success":false,"error":"INTERNAL_ERROR"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
