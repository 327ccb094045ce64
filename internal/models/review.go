// internal/models/review.go
package models

import "time"

// Review is unique per (user, product): the composite primary key is the
// final guard against duplicates.
type Review struct {
	UserID    int64     `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID int64     `json:"product_id" gorm:"primaryKey;autoIncrement:false;index"`
	OrderID   int64     `json:"order_id" gorm:"not null"`
	Rating    int       `json:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}

// ReviewableProduct is an order line the user may still review.
type ReviewableProduct struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
}
