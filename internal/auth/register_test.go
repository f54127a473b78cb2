package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateohidalgo/landrecords-backend/internal/profiles"
	"github.com/mateohidalgo/landrecords-backend/internal/users"
	"github.com/mateohidalgo/landrecords-backend/pkg/config"
	pkgmodels "github.com/mateohidalgo/landrecords-backend/pkg/db/models"
	pkgerrors "github.com/mateohidalgo/landrecords-backend/pkg/errors"
	"github.com/mateohidalgo/landrecords-backend/pkg/security"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubUserRepository struct {
	byUsername map[string]*pkgmodels.User
	byEmail    map[string]*pkgmodels.User
	created    *pkgmodels.User
	createErr  error
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{
		byUsername: map[string]*pkgmodels.User{},
		byEmail:    map[string]*pkgmodels.User{},
	}
}

func (s *stubUserRepository) FindByUsername(_ context.Context, username string) (*pkgmodels.User, error) {
	if user, ok := s.byUsername[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) FindByEmail(_ context.Context, email string) (*pkgmodels.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) Create(_ context.Context, dto users.CreateUserDTO) (*pkgmodels.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	s.byUsername[dto.Username] = user
	s.byEmail[dto.Email] = user
	s.created = user
	return user, nil
}

type stubProfileRepository struct {
	created *pkgmodels.Profile
	err     error
}

func (s *stubProfileRepository) Create(_ context.Context, dto profiles.CreateProfileDTO) (*pkgmodels.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	profile := dto.ToModel()
	profile.ID = uuid.New()
	s.created = profile
	return profile, nil
}

type registerTestSetup struct {
	service     RegisterService
	userRepo    *stubUserRepository
	profileRepo *stubProfileRepository
}

func newRegisterTestSetup(t *testing.T) *registerTestSetup {
	t.Helper()
	userRepo := newStubUserRepository()
	profileRepo := &stubProfileRepository{}
	svc, err := NewRegisterService(RegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return userRepo
		},
		ProfileRepoFactory: func(tx *gorm.DB) registerProfileRepository {
			return profileRepo
		},
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return &registerTestSetup{
		service:     svc,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func sampleRegisterRequest(username, email string) RegisterRequest {
	return RegisterRequest{
		Username:  username,
		Email:     email,
		Password:  "correct-horse-9",
		FirstName: "Jamie",
		LastName:  "Rivera",
	}
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	setup := newRegisterTestSetup(t)

	dto, err := setup.service.Register(context.Background(), sampleRegisterRequest("jamie", "Jamie@Example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if dto == nil || dto.Username != "jamie" {
		t.Fatalf("unexpected user dto: %+v", dto)
	}
	if dto.Email != "jamie@example.com" {
		t.Fatalf("expected lowered email, got %q", dto.Email)
	}

	if setup.userRepo.created == nil {
		t.Fatal("expected user to be persisted")
	}
	if setup.userRepo.created.PasswordHash == "correct-horse-9" {
		t.Fatal("password must not be stored in plaintext")
	}
	valid, err := security.VerifyPassword("correct-horse-9", setup.userRepo.created.PasswordHash)
	if err != nil || !valid {
		t.Fatalf("stored hash should verify: valid=%v err=%v", valid, err)
	}

	if setup.profileRepo.created == nil {
		t.Fatal("expected profile to be created")
	}
	if setup.profileRepo.created.UserID != setup.userRepo.created.ID {
		t.Fatal("profile must reference the new user")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	setup := newRegisterTestSetup(t)

	if _, err := setup.service.Register(context.Background(), sampleRegisterRequest("jamie", "one@example.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := setup.service.Register(context.Background(), sampleRegisterRequest("jamie", "two@example.com"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setup := newRegisterTestSetup(t)

	if _, err := setup.service.Register(context.Background(), sampleRegisterRequest("jamie", "same@example.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := setup.service.Register(context.Background(), sampleRegisterRequest("casey", "same@example.com"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterProfileFailureAborts(t *testing.T) {
	setup := newRegisterTestSetup(t)
	setup.profileRepo.err = gorm.ErrInvalidData

	_, err := setup.service.Register(context.Background(), sampleRegisterRequest("jamie", "jamie@example.com"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}
