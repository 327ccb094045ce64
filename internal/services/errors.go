// internal/services/errors.go
package services

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateReview   = errors.New("product already reviewed by this user")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

const (
	MaxQuantity         = 999
	ProductDisplayLimit = 30
	ProductPageReviews  = 3
	MaxReviewsLimit     = 50
)
