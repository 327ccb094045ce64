// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type ListParams struct {
	Limit int `json:"limit"`
}

// GetListParams reads ?limit= and clamps it to [1, max], falling back to max.
func GetListParams(c *gin.Context, max int) ListParams {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(max)))
	if err != nil || limit < 1 || limit > max {
		limit = max
	}
	return ListParams{Limit: limit}
}

func SetListHeaders(c *gin.Context, count int, params ListParams) {
	c.Header("X-Total-Count", strconv.Itoa(count))
	c.Header("X-Per-Page", strconv.Itoa(params.Limit))
}
