// internal/models/common.go
package models

import "time"

// Timestamps shared by the mutable tables
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

func (s OrderStatus) Valid() bool {
	return s == OrderStatusNew || s == OrderStatusDelivered
}

// CanTransitionTo reports whether the one-way status machine allows s -> next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == OrderStatusNew && next == OrderStatusDelivered
}
