package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/mateohidalgo/landrecords-backend/pkg/db/models"
)

// ProfileDTO merges account fields with the contact details stored on the profile row.
type ProfileDTO struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Address     *string   `json:"address,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProfileDTO holds the data required to persist a new profile.
type CreateProfileDTO struct {
	UserID      uuid.UUID
	PhoneNumber *string
	Address     *string
}

// UpdateProfileRequest captures the mutable profile fields. Nil fields are left untouched.
type UpdateProfileRequest struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
}

func (c CreateProfileDTO) ToModel() *models.Profile {
	return &models.Profile{
		UserID:      c.UserID,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
	}
}

func fromModels(user *models.User, profile *models.Profile) *ProfileDTO {
	if user == nil {
		return nil
	}
	dto := &ProfileDTO{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		UpdatedAt: user.UpdatedAt,
	}
	if profile != nil {
		dto.PhoneNumber = profile.PhoneNumber
		dto.Address = profile.Address
		if profile.UpdatedAt.After(dto.UpdatedAt) {
			dto.UpdatedAt = profile.UpdatedAt
		}
	}
	return dto
}
