package domain

import "time"

// Role controls what a user may do and which shops they may see
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

// User is a login account tied to a shop
type User struct {
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ID           int64     `json:"user_id"`
	ShopID       int64     `json:"shop_id"`
}

// CanAccessShop reports whether the user may touch data for the given shop.
// Admins see every shop; everyone else is confined to their own.
func (u *User) CanAccessShop(shopID int64) bool {
	return u.Role == RoleAdmin || u.ShopID == shopID
}

// AuthClaims is the verified identity carried by a bearer token
type AuthClaims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	UserID   int64  `json:"user_id"`
	ShopID   int64  `json:"shop_id"`
}

// CanAccessShop mirrors User.CanAccessShop for token-derived identities
func (c *AuthClaims) CanAccessShop(shopID int64) bool {
	return c.Role == RoleAdmin || c.ShopID == shopID
}
