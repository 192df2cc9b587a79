package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/repository"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the authenticated caller, resolved fresh from the
// credential store on every request. It lives exactly as long as the
// request and owns no cross-request state.
type Principal struct {
	User    *domain.User
	TokenID string
	Expires time.Time
}

// Role returns the live role from the loaded record.
func (p *Principal) Role() domain.Role {
	return p.User.Role
}

// AuthMiddleware validates bearer tokens and loads principals. Every
// protected request performs exactly one point lookup against the user
// store; the token's embedded role snapshot is never trusted, so role
// changes and deletions take effect without re-login.
type AuthMiddleware struct {
	tokens   *TokenManager
	users    repository.UserRepository
	denylist Denylist
	logger   *zap.Logger
}

// NewAuthMiddleware constructs middleware. A nil denylist disables
// revocation checks (stateless mode).
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, denylist Denylist, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, denylist: denylist, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("malformed authorization header")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		return apperrors.NewInvalidToken("token rejected")
	}

	if m.denylist != nil {
		revoked, err := m.denylist.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			// fail closed: an unreachable denylist never admits a token
			m.logger.Warn("denylist check failed", zap.Error(err))
			return apperrors.NewInternalError(err)
		}
		if revoked {
			return apperrors.NewInvalidToken("token revoked")
		}
	}

	user, err := m.users.GetByID(c.UserContext(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewStaleIdentity("subject no longer resolvable")
		}
		return apperrors.MapError(err)
	}

	principal := &Principal{User: user, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		principal.Expires = claims.ExpiresAt.Time
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
