// Package response holds the JSON response helpers used by the read and
// admin endpoints. The lifecycle endpoints write their bodies directly
// because their wire contract is fixed.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adotepet/service-adoption/internal/domain"
)

// Success writes a 200 envelope around data.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Paginated writes a 200 envelope with paging metadata.
func Paginated(c *gin.Context, items any, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"meta":    gin.H{"total": total, "page": page, "limit": limit},
	})
}

// Error maps a domain error to its transport status; anything else becomes
// a sanitized 500.
func Error(c *gin.Context, err error) {
	if de, ok := domain.AsDomainError(err); ok {
		c.JSON(statusFor(de.Kind), gin.H{"error": de.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
