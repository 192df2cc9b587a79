package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/api/dto"
	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/repository"
	"github.com/spec-kit/store-rating-service/internal/service"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// StoresHandler exposes store browsing and rating submission.
type StoresHandler struct {
	stores  *service.StoreService
	ratings *service.RatingService
}

// NewStoresHandler constructs handler.
func NewStoresHandler(storeService *service.StoreService, ratingService *service.RatingService) *StoresHandler {
	return &StoresHandler{stores: storeService, ratings: ratingService}
}

// List handles GET /stores with name/address search, sorting, pagination.
func (h *StoresHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no authenticated principal")
	}

	callerID := principal.User.ID
	filter := repository.StoreFilter{
		Name:      optionalQuery(c, "name"),
		Address:   optionalQuery(c, "address"),
		ForUserID: &callerID,
		SortBy:    c.Query("sort_by"),
		SortDir:   c.Query("order"),
		Limit:     c.QueryInt("limit", 20),
		Offset:    c.QueryInt("offset", 0),
	}

	stores, err := h.stores.ListStores(c.UserContext(), filter)
	if err != nil {
		return err
	}

	out := make([]dto.StoreResponse, 0, len(stores))
	for i := range stores {
		out = append(out, dto.NewStoreResponse(&stores[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"stores": out}})
}

// Get handles GET /stores/:id.
func (h *StoresHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no authenticated principal")
	}

	callerID := principal.User.ID
	store, err := h.stores.GetStore(c.UserContext(), c.Params("id"), &callerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"store": dto.NewStoreResponse(store)}})
}

// SubmitRating handles POST /stores/:id/ratings. First submission creates
// the rating; later ones replace the value.
func (h *StoresHandler) SubmitRating(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no authenticated principal")
	}

	var req dto.SubmitRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	rating, store, err := h.ratings.SubmitRating(c.UserContext(), principal.User.ID, c.Params("id"), req.Value)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"rating": dto.RatingResponse{
				ID:        rating.ID,
				StoreID:   rating.StoreID,
				Value:     rating.Value,
				UpdatedAt: rating.UpdatedAt,
			},
			"store": dto.NewStoreResponse(store),
		},
	})
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	return &val
}
