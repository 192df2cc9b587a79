package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/api/dto"
	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/service"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// OwnerHandler exposes the store-owner dashboard.
type OwnerHandler struct {
	stores *service.StoreService
}

// NewOwnerHandler constructs handler.
func NewOwnerHandler(storeService *service.StoreService) *OwnerHandler {
	return &OwnerHandler{stores: storeService}
}

// Dashboard handles GET /owner/store: the caller's store with its average
// rating and the list of users who rated it.
func (h *OwnerHandler) Dashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no authenticated principal")
	}

	dashboard, err := h.stores.OwnerDashboard(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"store":  dto.NewStoreResponse(&dashboard.Store),
			"raters": dto.NewRaterResponses(dashboard.Raters),
		},
	})
}
