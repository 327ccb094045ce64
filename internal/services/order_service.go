// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/javajoker/shopbot/internal/models"
	"github.com/javajoker/shopbot/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

// CheckoutDetails are the delivery contact fields collected by the bot.
type CheckoutDetails struct {
	FullName string `json:"full_name" validate:"trimmed_min=2,max=255"`
	Phone    string `json:"phone" validate:"trimmed_min=7,max=32"`
	Address  string `json:"address" validate:"trimmed_min=5,max=1000"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrderFromCart turns the user's cart into a NEW order in one
// transaction: the cart is cleared only when the order and all item
// snapshots are written.
func (s *OrderService) CreateOrderFromCart(ctx context.Context, userID int64, details CheckoutDetails) (*models.Order, error) {
	details.FullName = strings.TrimSpace(details.FullName)
	details.Phone = strings.TrimSpace(details.Phone)
	details.Address = strings.TrimSpace(details.Address)
	if err := utils.ValidateStruct(details); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := cartLines(tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		o := &models.Order{
			UserID:   userID,
			FullName: details.FullName,
			Phone:    details.Phone,
			Address:  details.Address,
			Status:   models.OrderStatusNew,
			Items:    make([]models.OrderItem, 0, len(lines)),
		}
		for _, line := range lines {
			o.Items = append(o.Items, models.OrderItem{
				ProductID: line.ProductID,
				Name:      line.Name,
				Price:     line.Price,
				Qty:       line.Qty,
			})
		}

		if err := tx.Create(o).Error; err != nil {
			return err
		}
		if err := clearCart(tx, userID); err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) GetOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	return items, nil
}

// SetOrderStatus moves an order along NEW -> DELIVERED. The update is
// conditional on the current status, so two concurrent calls cannot both
// succeed.
func (s *OrderService) SetOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q: %w", status, ErrInvalidTransition)
	}
	db := s.db.WithContext(ctx)

	var order models.Order
	if err := db.Select("id", "status").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if !order.Status.CanTransitionTo(status) {
		return fmt.Errorf("order %d %s -> %s: %w", id, order.Status, status, ErrInvalidTransition)
	}

	result := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, order.Status).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %d changed concurrently: %w", id, ErrInvalidTransition)
	}
	return nil
}
