// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/shopbot/internal/models"
)

type CatalogService struct {
	db      *gorm.DB
	reviews *ReviewService
}

func NewCatalogService(db *gorm.DB, reviews *ReviewService) *CatalogService {
	return &CatalogService{
		db:      db,
		reviews: reviews,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListProductsByCategory returns the newest ProductDisplayLimit products.
func (s *CatalogService) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id DESC").
		Limit(ProductDisplayLimit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) RecentReviews(ctx context.Context, productID int64, n int) ([]models.Review, error) {
	return s.reviews.ReviewsForProduct(ctx, productID, n)
}

// SeedIfEmpty inserts products only when the table has none. It returns the
// number of rows written.
func (s *CatalogService) SeedIfEmpty(ctx context.Context, products []models.Product) (int, error) {
	inserted := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 || len(products) == 0 {
			return nil
		}

		rows := make([]models.Product, len(products))
		copy(rows, products)
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		inserted = len(rows)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}

	if inserted > 0 {
		logrus.WithField("products", inserted).Info("Catalog seeded")
	}
	return inserted, nil
}
