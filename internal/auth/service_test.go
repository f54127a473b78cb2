package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/mateohidalgo/landrecords-backend/pkg/auth"
	"github.com/mateohidalgo/landrecords-backend/pkg/config"
	"github.com/mateohidalgo/landrecords-backend/pkg/db/models"
	pkgerrors "github.com/mateohidalgo/landrecords-backend/pkg/errors"
	"github.com/mateohidalgo/landrecords-backend/pkg/security"
)

type fakeUserRepo struct {
	user      *models.User
	lastLogin *time.Time
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if f.user == nil || f.user.Username != username {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	f.lastLogin = &at
	return nil
}

type fakeSessionManager struct {
	generated string
	revoked   string
}

func (f *fakeSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	f.generated = accessID
	return "refresh-token", nil
}

func (f *fakeSessionManager) Rotate(_ context.Context, _, _ string) (string, string, error) {
	return "new-access-id", "new-refresh-token", nil
}

func (f *fakeSessionManager) Revoke(_ context.Context, accessID string) error {
	f.revoked = accessID
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func testUser(t *testing.T, username, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func newTestService(t *testing.T, repo *fakeUserRepo, sessions *fakeSessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "landrecords-test",
			ExpirationMinutes: 15,
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestLoginSuccess(t *testing.T) {
	repo := &fakeUserRepo{user: testUser(t, "alice", "s3cret-pass")}
	sessions := &fakeSessionManager{}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}
	if resp.User == nil || resp.User.Username != "alice" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
	if repo.lastLogin == nil {
		t.Fatal("expected last login to be recorded")
	}

	claims, err := pkgAuth.ParseAccessToken(config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "landrecords-test",
		ExpirationMinutes: 15,
	}, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != repo.user.ID {
		t.Fatalf("expected user id %s in claims, got %s", repo.user.ID, claims.UserID)
	}
	if claims.ID != sessions.generated {
		t.Fatalf("jti %q should match generated session %q", claims.ID, sessions.generated)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &fakeUserRepo{user: testUser(t, "alice", "s3cret-pass")}
	svc := newTestService(t, repo, &fakeSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestService(t, &fakeUserRepo{}, &fakeSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	user := testUser(t, "alice", "s3cret-pass")
	user.IsActive = false
	svc := newTestService(t, &fakeUserRepo{user: user}, &fakeSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "s3cret-pass"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &fakeSessionManager{}
	svc := newTestService(t, &fakeUserRepo{user: testUser(t, "alice", "x-pass-123")}, sessions)

	if err := svc.Logout(context.Background(), "access-id-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.revoked != "access-id-1" {
		t.Fatalf("expected session revoked, got %q", sessions.revoked)
	}

	err := svc.Logout(context.Background(), "  ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for blank access id, got %v", err)
	}
}
