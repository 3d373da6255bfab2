package domain

import "time"

// Customer is a shop-scoped customer record
type Customer struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	ID        int64     `json:"customer_id"`
	ShopID    int64     `json:"shop_id"`
}
