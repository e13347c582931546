package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/adotepet/service-adoption/internal/application"
	"github.com/adotepet/service-adoption/internal/auth"
	"github.com/adotepet/service-adoption/internal/middleware"
	"github.com/adotepet/service-adoption/internal/response"
)

// AdminService is the slice of the application service the admin handler
// needs.
type AdminService interface {
	ListAll(ctx context.Context, page, limit int) ([]application.AnimalDTO, int64, error)
	Stats(ctx context.Context) (*application.StatsDTO, error)
}

// AdminAnimalHandler handles admin HTTP requests for listing management.
type AdminAnimalHandler struct {
	service AdminService
}

// NewAdminAnimalHandler creates a new AdminAnimalHandler.
func NewAdminAnimalHandler(service AdminService) *AdminAnimalHandler {
	return &AdminAnimalHandler{service: service}
}

// RegisterRoutes registers admin routes.
func (h *AdminAnimalHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthContext(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/animals", h.ListAnimals)
		admin.GET("/stats/animals", h.AnimalStats)
	}
}

// ListAnimals handles GET /api/v1/admin/animals.
func (h *AdminAnimalHandler) ListAnimals(c *gin.Context) {
	page, limit := parsePagination(c)
	items, total, err := h.service.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, total, page, limit)
}

// AnimalStats handles GET /api/v1/admin/stats/animals.
func (h *AdminAnimalHandler) AnimalStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
