package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/config"
	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/events"
	"github.com/spec-kit/store-rating-service/internal/repository"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// AuthService coordinates registration, login, logout, and password flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	hasher     *auth.Hasher
	denylist   auth.Denylist
	dispatcher events.Dispatcher
	loginTTL   time.Duration
	signupTTL  time.Duration
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Denylist   auth.Denylist
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service. Secret and lifetimes come from
// config so tests can inject throwaway values.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.LoginTokenTTL()),
		hasher:     auth.NewHasher(cfg.BcryptCost),
		denylist:   deps.Denylist,
		dispatcher: deps.Dispatcher,
		loginTTL:   cfg.LoginTokenTTL(),
		signupTTL:  cfg.SignupTokenTTL(),
	}
}

// Register creates a normal-user account and issues a signup-lifetime token.
func (s *AuthService) Register(ctx context.Context, name, email, address, password string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Address:      address,
		Role:         domain.RoleNormalUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})

	token, exp, err := s.tokenMgr.IssueWithTTL(user.ID, user.Role, s.signupTTL)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates by email and password and issues a login-lifetime
// token. Unknown emails and wrong passwords are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.tokenMgr.IssueWithTTL(user.ID, user.Role, s.loginTTL)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout revokes the presented token for its remaining lifetime. Without
// a denylist backend this is the stateless no-op of the original design.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expires time.Time) error {
	if s.denylist == nil || tokenID == "" {
		return nil
	}
	return s.denylist.Revoke(ctx, tokenID, time.Until(expires))
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Verify(currentPassword, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return apperrors.NewUnauthenticated("invalid credentials")
		}
		return err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actorID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
