package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/api/dto"
	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/service"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// StoresHandler manages store endpoints.
type StoresHandler struct {
	service *service.StoreService
}

// NewStoresHandler constructs handler.
func NewStoresHandler(storeService *service.StoreService) *StoresHandler {
	return &StoresHandler{service: storeService}
}

// List handles GET /api/stores.
func (h *StoresHandler) List(c *fiber.Ctx) error {
	stores, err := h.service.ListStores(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.StoreSummary, 0, len(stores))
	for i := range stores {
		items = append(items, dto.NewStoreSummary(&stores[i]))
	}
	return c.JSON(items)
}

// Create handles POST /api/stores/add.
func (h *StoresHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	store, err := h.service.CreateStore(c.Context(), principal, service.StoreCreateInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Store added!",
		"data":    dto.NewStoreSummary(store),
	})
}
