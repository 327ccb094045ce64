// internal/handlers/catalog.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/shopbot/internal/services"
	"github.com/javajoker/shopbot/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	reviewService  *services.ReviewService
}

func NewCatalogHandler(catalogService *services.CatalogService, reviewService *services.ReviewService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		reviewService:  reviewService,
	}
}

// GET /catalog/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// GET /catalog/categories/:category/products
func (h *CatalogHandler) GetCategoryProducts(c *gin.Context) {
	params := utils.GetListParams(c, services.ProductDisplayLimit)
	category := c.Param("category")

	products, err := h.catalogService.ListProductsByCategory(c.Request.Context(), category)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if len(products) > params.Limit {
		products = products[:params.Limit]
	}

	utils.SetListHeaders(c, len(products), params)
	utils.SuccessResponseWithMeta(c, gin.H{
		"category": category,
		"products": products,
	}, gin.H{
		"count": len(products),
		"limit": params.Limit,
	})
}

// GET /catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || productID <= 0 {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Product")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	params := utils.GetListParams(c, services.MaxReviewsLimit)
	reviews, err := h.reviewService.ReviewsForProduct(c.Request.Context(), productID, params.Limit)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
		"reviews": reviews,
	})
}
