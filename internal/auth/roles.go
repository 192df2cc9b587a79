package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/domain"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// RequireRole gates a route on the live role of the authenticated caller.
// It must run after AuthMiddleware.Handle; a missing principal fails as
// unauthenticated rather than forbidden. An empty allow-list admits any
// authenticated caller. Pure over (principal, allow-list): no I/O.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("no authenticated principal")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role()]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
