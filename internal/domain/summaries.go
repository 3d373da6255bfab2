package domain

import "github.com/shopspring/decimal"

// MethodTotal is one row of a per-method payment breakdown
type MethodTotal struct {
	Method PaymentMethod   `json:"payment_method"`
	Total  decimal.Decimal `json:"total"`
	Count  int64           `json:"count"`
}

// PaymentSummary aggregates a shop's completed payments
type PaymentSummary struct {
	ByMethod []MethodTotal   `json:"by_method"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// OrderSummary aggregates a shop's orders over a date range
type OrderSummary struct {
	TotalOrders    int64           `json:"total_orders"`
	FullyPaidCount int64           `json:"fully_paid_count"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	TotalPending   decimal.Decimal `json:"total_pending"`
}

// CollectionSummary aggregates a shop's bank collections
type CollectionSummary struct {
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}
