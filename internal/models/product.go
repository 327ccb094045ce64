// internal/models/product.go
package models

import "time"

type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Category    string    `json:"category" gorm:"size:100;not null;index"`
	Price       int64     `json:"price" gorm:"not null;check:price >= 0"`
	Description string    `json:"description" gorm:"type:text;default:''"`
	CreatedAt   time.Time `json:"created_at"`
}
