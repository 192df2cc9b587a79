package service_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/config"
	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/events"
	"github.com/spec-kit/store-rating-service/internal/repository"
	"github.com/spec-kit/store-rating-service/internal/service"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = "user-" + strconv.Itoa(r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) ListWithFilter(_ context.Context, _ repository.UserFilter) ([]domain.User, error) {
	return nil, nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type memDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Duration
}

func newMemDenylist() *memDenylist {
	return &memDenylist{entries: map[string]time.Duration{}}
}

func (d *memDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if ttl <= 0 {
		return nil
	}
	d.entries[tokenID] = ttl
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.entries[tokenID]
	return ok, nil
}

type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *captureDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:           "test-secret",
		LoginTokenTTLHours:  48,
		SignupTokenTTLHours: 168,
		BcryptCost:          bcrypt.MinCost,
	}
}

func newAuthService(users *memUserRepo, denylist auth.Denylist, dispatcher events.Dispatcher) *service.AuthService {
	return service.NewAuthService(testAuthConfig(), service.AuthDependencies{
		UserRepo:   users,
		Denylist:   denylist,
		Dispatcher: dispatcher,
	})
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	dispatcher := &captureDispatcher{}
	svc := newAuthService(users, nil, dispatcher)

	user, token, exp, err := svc.Register(ctx, "Beatrice of the Long Name Co", "bea@example.com", "12 Main St", "Sup3r!secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleNormalUser {
		t.Errorf("role = %q, want default NORMAL_USER", user.Role)
	}
	if time.Until(exp) < 100*time.Hour {
		t.Errorf("signup token should carry the long lifetime, expires %v", exp)
	}

	claims, err := svc.TokenManager().Parse(token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Subject != user.ID {
		t.Errorf("token subject = %q, want %q", claims.Subject, user.ID)
	}

	if got := dispatcher.byType(events.EventUserRegistered); len(got) != 1 {
		t.Errorf("user_registered events = %d, want 1", len(got))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newMemUserRepo(), nil, nil)

	if _, _, _, err := svc.Register(ctx, "Beatrice of the Long Name Co", "bea@example.com", "", "Sup3r!secret"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, _, err := svc.Register(ctx, "Another Long Enough Name Here", "bea@example.com", "", "Sup3r!secret")

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "CONFLICT" {
		t.Fatalf("duplicate register err = %v, want CONFLICT", err)
	}
}

func TestLoginSuccessAndFailure(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	svc := newAuthService(users, nil, nil)

	registered, _, _, err := svc.Register(ctx, "Beatrice of the Long Name Co", "bea@example.com", "", "Sup3r!secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, token, _, err := svc.Login(ctx, "bea@example.com", "Sup3r!secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("login returned user %q, want %q", user.ID, registered.ID)
	}
	if _, err := svc.TokenManager().Parse(token); err != nil {
		t.Errorf("parse login token: %v", err)
	}

	for name, attempt := range map[string][2]string{
		"wrong password": {"bea@example.com", "Wrong!password1"},
		"unknown email":  {"nobody@example.com", "Sup3r!secret"},
	} {
		_, _, _, err := svc.Login(ctx, attempt[0], attempt[1])
		var domainErr *apperrors.DomainError
		if !errors.As(err, &domainErr) || domainErr.Code != apperrors.CodeUnauthenticated {
			t.Errorf("%s: err = %v, want UNAUTHENTICATED", name, err)
		}
	}
}

func TestLogoutRevokesTokenID(t *testing.T) {
	ctx := context.Background()
	denylist := newMemDenylist()
	svc := newAuthService(newMemUserRepo(), denylist, nil)

	_, token, exp, err := svc.Register(ctx, "Beatrice of the Long Name Co", "bea@example.com", "", "Sup3r!secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	claims, err := svc.TokenManager().Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if err := svc.Logout(ctx, claims.ID, exp); err != nil {
		t.Fatalf("logout: %v", err)
	}

	revoked, err := denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		t.Fatalf("is revoked: %v", err)
	}
	if !revoked {
		t.Error("token id not denylisted after logout")
	}
	if ttl := denylist.entries[claims.ID]; ttl > 168*time.Hour {
		t.Errorf("denylist ttl %v exceeds token lifetime", ttl)
	}
}

func TestLogoutWithoutDenylistIsNoOp(t *testing.T) {
	svc := newAuthService(newMemUserRepo(), nil, nil)
	if err := svc.Logout(context.Background(), "some-id", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("stateless logout: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	svc := newAuthService(users, nil, nil)

	user, _, _, err := svc.Register(ctx, "Beatrice of the Long Name Co", "bea@example.com", "", "Sup3r!secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "Wrong!password1", "N3w!password"); err == nil {
		t.Fatal("change with wrong current password should fail")
	}

	if err := svc.ChangePassword(ctx, user.ID, "Sup3r!secret", "N3w!password"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "bea@example.com", "N3w!password"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "bea@example.com", "Sup3r!secret"); err == nil {
		t.Error("old password still accepted after change")
	}
}
