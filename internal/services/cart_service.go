// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/shopbot/internal/models"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddItem merges qty into the (user, product) line. Repeated calls
// accumulate.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, qty int) error {
	if qty < 1 || qty > MaxQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, MaxQuantity)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}

		item := models.CartItem{UserID: userID, ProductID: productID, Qty: qty}
		return tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"qty":        gorm.Expr("cart_items.qty + excluded.qty"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
		}).Create(&item).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

func (s *CartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	lines, err := cartLines(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &models.Cart{UserID: userID, Lines: lines}, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	if err := clearCart(s.db.WithContext(ctx), userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// cartLines joins the cart against current catalog data, newest product first.
func cartLines(db *gorm.DB, userID int64) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := db.Table("cart_items AS ci").
		Select("p.id AS product_id, p.name AS name, p.price AS price, ci.qty AS qty").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.user_id = ?", userID).
		Order("p.id DESC").
		Scan(&lines).Error
	return lines, err
}

func clearCart(db *gorm.DB, userID int64) error {
	return db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
