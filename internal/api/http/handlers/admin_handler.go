package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/api/dto"
	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/repository"
	"github.com/spec-kit/store-rating-service/internal/service"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// AdminHandler exposes the admin management surface.
type AdminHandler struct {
	users  *service.UserService
	stores *service.StoreService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(userService *service.UserService, storeService *service.StoreService) *AdminHandler {
	return &AdminHandler{users: userService, stores: storeService}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	totals, err := h.users.DashboardTotals(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"total_users":   totals.Users,
			"total_stores":  totals.Stores,
			"total_ratings": totals.Ratings,
		},
	})
}

// CreateUser handles POST /admin/users.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.AdminCreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.UserContext(), req.Name, req.Email, req.Address, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"user": dto.NewUserResponse(user)}})
}

// ListUsers handles GET /admin/users with filter/sort/pagination.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		Name:    optionalQuery(c, "name"),
		Email:   optionalQuery(c, "email"),
		Address: optionalQuery(c, "address"),
		SortBy:  c.Query("sort_by"),
		SortDir: c.Query("order"),
		Limit:   c.QueryInt("limit", 20),
		Offset:  c.QueryInt("offset", 0),
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := domain.Role(roleStr)
		if !role.IsValid() {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": roleStr})
		}
		filter.Role = &role
	}

	users, err := h.users.ListUsers(c.UserContext(), filter)
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"users": out}})
}

// GetUser handles GET /admin/users/:id. Store-owner rows additionally
// carry their store's rating aggregate.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	detail, err := h.users.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	payload := fiber.Map{"user": dto.NewUserResponse(&detail.User)}
	if detail.OwnedStore != nil {
		payload["store"] = dto.NewStoreResponse(detail.OwnedStore)
	}
	return c.JSON(fiber.Map{"data": payload})
}

// CreateStore handles POST /admin/stores.
func (h *AdminHandler) CreateStore(c *fiber.Ctx) error {
	var req dto.CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	store, err := h.stores.CreateStore(c.UserContext(), req.Name, req.Email, req.Address, req.OwnerID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"store": fiber.Map{
				"id":       store.ID,
				"name":     store.Name,
				"email":    store.Email,
				"address":  store.Address,
				"owner_id": store.OwnerID,
			},
		},
	})
}

// ListStores handles GET /admin/stores with filter/sort/pagination.
func (h *AdminHandler) ListStores(c *fiber.Ctx) error {
	filter := repository.StoreFilter{
		Name:    optionalQuery(c, "name"),
		Address: optionalQuery(c, "address"),
		SortBy:  c.Query("sort_by"),
		SortDir: c.Query("order"),
		Limit:   c.QueryInt("limit", 20),
		Offset:  c.QueryInt("offset", 0),
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
