package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateohidalgo/landrecords-backend/internal/users"
	"github.com/mateohidalgo/landrecords-backend/pkg/db"
	"github.com/mateohidalgo/landrecords-backend/pkg/db/models"
	pkgerrors "github.com/mateohidalgo/landrecords-backend/pkg/errors"
)

// Service exposes the profile operations needed by the controller.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	Update(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, error)
}

type service struct {
	db *db.Client
}

// NewService constructs a profile service backed by the shared DB client.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{db: client}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	userRepo := users.NewRepository(s.db.DB())
	profileRepo := NewRepository(s.db.DB())

	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	profile, err := profileRepo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
	}

	return fromModels(user, profile), nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, error) {
	var result *ProfileDTO

	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		profileRepo := NewRepository(tx)

		if _, err := userRepo.FindByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
		}

		update := users.UpdateUserDTO{
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if existing, err := userRepo.FindByEmail(ctx, email); err == nil && existing.ID != userID {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
			}
			update.Email = &email
		}

		user, err := userRepo.Update(ctx, userID, update)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user")
		}

		if req.PhoneNumber != nil || req.Address != nil {
			if _, err := profileRepo.FindByUserID(ctx, userID); err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
				}
				if _, err := profileRepo.Create(ctx, CreateProfileDTO{
					UserID:      userID,
					PhoneNumber: req.PhoneNumber,
					Address:     req.Address,
				}); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create profile")
				}
			} else if err := profileRepo.UpdateContact(ctx, userID, req.PhoneNumber, req.Address); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
			}
		}

		var profile *models.Profile
		if found, err := profileRepo.FindByUserID(ctx, userID); err == nil {
			profile = found
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload profile")
		}

		result = fromModels(user, profile)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return result, nil
}
