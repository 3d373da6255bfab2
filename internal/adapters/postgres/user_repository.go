package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
)

// UserRepository implements ports.UserRepository
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db ports.DBPort) *UserRepository {
	return &UserRepository{pool: db.GetDB()}
}

func (r *UserRepository) db(tx ports.DBTX) ports.DBTX {
	if tx != nil {
		return tx
	}
	return r.pool
}

// GetByUsername looks up a login account by its unique username
func (r *UserRepository) GetByUsername(ctx context.Context, tx ports.DBTX, username string) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := r.db(tx).QueryRow(ctx,
		`SELECT user_id, shop_id, username, password_hash, role, created_at
		 FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.ShopID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}
