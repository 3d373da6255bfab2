package ports

import (
	"context"
	"time"

	"github.com/threadline/pos-service/internal/domain"
)

// LoginResult is a successful authentication: a signed bearer token and its subject
type LoginResult struct {
	ExpiresAt time.Time
	Token     string
	User      *domain.User
}

// AuthService verifies credentials and issues bearer tokens
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// ValidateToken parses and verifies a bearer token, returning its claims
	ValidateToken(token string) (*domain.AuthClaims, error)
}
