package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/api/dto"
	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/service"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// RatingsHandler manages rating endpoints.
type RatingsHandler struct {
	service *service.RatingService
}

// NewRatingsHandler constructs handler.
func NewRatingsHandler(ratingService *service.RatingService) *RatingsHandler {
	return &RatingsHandler{service: ratingService}
}

// List handles GET /api/ratings with an optional store_id filter.
func (h *RatingsHandler) List(c *fiber.Ctx) error {
	var storeID *int64
	if raw := c.Query("store_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid store_id", map[string]any{"store_id": raw})
		}
		storeID = &parsed
	}

	ratings, err := h.service.ListRatings(c.Context(), storeID)
	if err != nil {
		return err
	}

	items := make([]dto.RatingSummary, 0, len(ratings))
	for i := range ratings {
		items = append(items, dto.NewRatingSummary(&ratings[i]))
	}
	return c.JSON(items)
}

// Create handles POST /api/ratings/add.
func (h *RatingsHandler) Create(c *fiber.Ctx) error {
	principal, req, err := h.parseRatingRequest(c)
	if err != nil {
		return err
	}

	rating, err := h.service.SubmitRating(c.Context(), principal, req.StoreID, req.Rating)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Rating added!",
		"data":    dto.NewRatingSummary(rating),
	})
}

// Update handles PUT /api/ratings/update.
func (h *RatingsHandler) Update(c *fiber.Ctx) error {
	principal, req, err := h.parseRatingRequest(c)
	if err != nil {
		return err
	}

	rating, err := h.service.UpdateRating(c.Context(), principal, req.StoreID, req.Rating)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Rating updated!",
		"data":    dto.NewRatingSummary(rating),
	})
}

func (h *RatingsHandler) parseRatingRequest(c *fiber.Ctx) (*auth.Principal, *dto.RatingRequest, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, nil, apperrors.NewUnauthorized("authentication required")
	}

	var req dto.RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.StoreID == 0 {
		return nil, nil, apperrors.NewValidationError("store_id required", nil)
	}
	return principal, &req, nil
}
