package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adotepet/service-adoption/internal/application"
	"github.com/adotepet/service-adoption/internal/auth"
	"github.com/adotepet/service-adoption/internal/middleware"
	"github.com/adotepet/service-adoption/internal/response"
	"github.com/adotepet/service-adoption/internal/result"
	"github.com/adotepet/service-adoption/internal/validation"
)

// pictureField is the multipart field carrying the uploaded photos.
const pictureField = "pictures"

// LifecycleService is the slice of the application service the animal
// handler needs. Create and UpdateStatus return a Result for expected
// domain outcomes; the error return means an unexpected fault.
type LifecycleService interface {
	Create(ctx context.Context, cmd application.CreateAnimalCommand) (result.Result, error)
	UpdateStatus(ctx context.Context, cmd application.UpdateStatusCommand) (result.Result, error)
	Get(ctx context.Context, id uuid.UUID) (*application.AnimalDTO, error)
	ListAvailable(ctx context.Context, nameFilter string, page, limit int) ([]application.AnimalDTO, int64, error)
	ListMine(ctx context.Context, ownerUserID string) ([]application.AnimalDTO, error)
}

// AnimalHandler handles HTTP requests for animal listings.
type AnimalHandler struct {
	service LifecycleService
	logger  *zap.Logger
	timeout time.Duration
}

// NewAnimalHandler creates a new AnimalHandler. timeout bounds every
// service call so a stuck dependency cannot hang the request forever.
func NewAnimalHandler(service LifecycleService, logger *zap.Logger, timeout time.Duration) *AnimalHandler {
	return &AnimalHandler{service: service, logger: logger, timeout: timeout}
}

// RegisterRoutes registers all animal listing routes.
func (h *AnimalHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	animals := r.Group("/api/v1/animals")
	animals.Use(middleware.AuthContext(jwtManager))
	{
		animals.POST("", h.CreateAnimal)
		animals.PATCH("/:id/status", h.UpdateAnimalStatus)
		animals.GET("", h.ListAvailable)
		animals.GET("/mine", h.ListMine)
		animals.GET("/:id", h.GetAnimal)
	}
}

// CreateAnimal handles POST /api/v1/animals (multipart/form-data).
// Validation failures and domain rejections are 400; anything unexpected is
// logged and answered with a fixed 500 body that carries no internal detail.
func (h *AnimalHandler) CreateAnimal(c *gin.Context) {
	// An absent identity becomes the empty identifier; the service treats
	// it as a valid but powerless user.
	userID, _ := middleware.GetUserID(c)

	pictures, err := picturePayloads(c)
	if err != nil {
		h.logger.Error("error creating animal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	form := validation.CreateAnimalForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Type:        c.PostForm("type"),
		Gender:      c.PostForm("gender"),
		Race:        c.PostForm("race"),
	}
	input, fieldErrs := validation.ValidateCreateAnimal(form)
	if fieldErrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid input data.",
			"errors":  fieldErrs,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	res, err := h.service.Create(ctx, application.CreateAnimalCommand{
		Input:    input,
		UserID:   userID,
		Pictures: pictures,
	})
	if err != nil {
		h.logger.Error("error creating animal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	if res.IsFailure() {
		c.JSON(http.StatusBadRequest, res.Value())
		return
	}
	c.JSON(http.StatusCreated, res.Value())
}

// UpdateAnimalStatus handles PATCH /api/v1/animals/:id/status. The handler
// applies no validation of its own; id, status and user all go to the
// service, which owns legality and entitlement.
func (h *AnimalHandler) UpdateAnimalStatus(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var body struct {
		Status string `json:"status"`
	}
	// A missing or malformed body leaves status empty; the service rejects
	// it with a failure Result.
	_ = c.ShouldBindJSON(&body)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	res, err := h.service.UpdateStatus(ctx, application.UpdateStatusCommand{
		ID:     c.Param("id"),
		Status: body.Status,
		UserID: userID,
	})
	if err != nil {
		h.logger.Error("error updating animal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if res.IsFailure() {
		c.JSON(http.StatusBadRequest, res.Value())
		return
	}
	c.JSON(http.StatusOK, res.Value())
}

// GetAnimal handles GET /api/v1/animals/:id.
func (h *AnimalHandler) GetAnimal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid animal ID")
		return
	}

	dto, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// ListAvailable handles GET /api/v1/animals with an optional name filter.
func (h *AnimalHandler) ListAvailable(c *gin.Context) {
	page, limit := parsePagination(c)
	items, total, err := h.service.ListAvailable(c.Request.Context(), c.Query("name"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, total, page, limit)
}

// ListMine handles GET /api/v1/animals/mine.
func (h *AnimalHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// picturePayloads reads every uploaded file fully into memory, preserving
// upload order and discarding all file metadata. No attachments yields an
// empty slice, never nil.
func picturePayloads(c *gin.Context) ([][]byte, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return [][]byte{}, nil
		}
		return nil, err
	}

	files := form.File[pictureField]
	payloads := make([][]byte, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, data)
	}
	return payloads, nil
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
