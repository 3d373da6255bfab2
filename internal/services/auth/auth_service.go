package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
	sports "github.com/threadline/pos-service/internal/services/ports"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "pos-service"

// Service implements sports.AuthService with HMAC-signed bearer tokens
type Service struct {
	users    ports.UserRepository
	logger   ports.Logger
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates a new auth service
func NewService(users ports.UserRepository, secret string, tokenTTL time.Duration, logger ports.Logger) *Service {
	return &Service{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// tokenClaims carries the user's identity inside the signed token
type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	ShopID   int64  `json:"shop_id"`
	jwt.RegisteredClaims
}

// Login verifies the credentials and issues a signed bearer token.
// Unknown usernames and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (*sports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationMissingField,
			"username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, nil, username)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return nil, domain.ErrAuthBadCreds
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("failed login attempt",
			ports.String("username", username))
		return nil, domain.ErrAuthBadCreds
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := tokenClaims{
		Username: user.Username,
		Role:     string(user.Role),
		ShopID:   user.ShopID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(user.ID, 10),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("user logged in",
		ports.Int64("user_id", user.ID),
		ports.Int64("shop_id", user.ShopID),
		ports.String("role", string(user.Role)))

	return &sports.LoginResult{
		Token:     signed,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken parses and verifies a bearer token
func (s *Service) ValidateToken(tokenString string) (*domain.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeAuthInvalid, "invalid token", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrAuthInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrAuthInvalid
	}

	return &domain.AuthClaims{
		UserID:   userID,
		ShopID:   claims.ShopID,
		Username: claims.Username,
		Role:     domain.Role(claims.Role),
	}, nil
}
