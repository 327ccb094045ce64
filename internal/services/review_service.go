// internal/services/review_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/javajoker/shopbot/internal/database"
	"github.com/javajoker/shopbot/internal/models"
	"github.com/javajoker/shopbot/internal/utils"
)

type ReviewService struct {
	db  *gorm.DB
	now func() time.Time
}

type NewReview struct {
	UserID    int64  `json:"user_id" validate:"required"`
	ProductID int64  `json:"product_id" validate:"required"`
	OrderID   int64  `json:"order_id" validate:"required"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Text      string `json:"text" validate:"trimmed_min=3,max=2000"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		db:  db,
		now: time.Now,
	}
}

// WithClock replaces the timestamp source, for tests.
func (s *ReviewService) WithClock(now func() time.Time) *ReviewService {
	s.now = now
	return s
}

// EligibleProducts lists the products of a delivered order owned by userID
// that the user has not reviewed yet. An empty result is not an error.
func (s *ReviewService) EligibleProducts(ctx context.Context, userID, orderID int64) ([]models.ReviewableProduct, error) {
	out := []models.ReviewableProduct{}
	err := s.db.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.product_id AS product_id, oi.name AS name").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.id = ? AND o.user_id = ? AND o.status = ?", orderID, userID, models.OrderStatusDelivered).
		Where("NOT EXISTS (SELECT 1 FROM reviews r WHERE r.user_id = ? AND r.product_id = oi.product_id)", userID).
		Order("oi.product_id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible products: %w", err)
	}
	return out, nil
}

// IsEligible reports whether productID is still reviewable in orderID.
func (s *ReviewService) IsEligible(ctx context.Context, userID, orderID, productID int64) (bool, error) {
	products, err := s.EligibleProducts(ctx, userID, orderID)
	if err != nil {
		return false, err
	}
	for _, p := range products {
		if p.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// AddReview stores a review. Delivery and ownership are gated by the caller
// through EligibleProducts; uniqueness per (user, product) is enforced here.
func (s *ReviewService) AddReview(ctx context.Context, req NewReview) (*models.Review, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	review := &models.Review{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		OrderID:   req.OrderID,
		Rating:    req.Rating,
		Text:      req.Text,
		CreatedAt: s.now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Review{}).
			Where("user_id = ? AND product_id = ?", req.UserID, req.ProductID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateReview
		}
		return tx.Create(review).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateReview) || database.IsUniqueViolation(err) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("failed to add review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) ReviewsForProduct(ctx context.Context, productID int64, limit int) ([]models.Review, error) {
	if limit < 1 || limit > MaxReviewsLimit {
		limit = MaxReviewsLimit
	}

	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Order("user_id DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return reviews, nil
}
