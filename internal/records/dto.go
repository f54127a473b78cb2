package records

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/mateohidalgo/landrecords-backend/internal/categories"
	"github.com/mateohidalgo/landrecords-backend/pkg/db/models"
)

// RecordDTO is the transport shape for a land record.
type RecordDTO struct {
	ID              uuid.UUID               `json:"id"`
	Title           string                  `json:"title"`
	PropertyAddress string                  `json:"property_address"`
	Description     string                  `json:"description"`
	SurveyNumber    string                  `json:"survey_number"`
	PropertySize    string                  `json:"property_size"`
	PropertyType    string                  `json:"property_type"`
	OwnerID         uuid.UUID               `json:"owner_id"`
	CategoryID      *uuid.UUID              `json:"category_id,omitempty"`
	Category        *categories.CategoryDTO `json:"category,omitempty"`
	DocumentName    string                  `json:"document_name"`
	DocumentBytes   int64                   `json:"document_bytes"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// CreateRecordRequest carries the multipart form fields accompanying the document.
type CreateRecordRequest struct {
	Title           string     `json:"title" validate:"required,max=255"`
	PropertyAddress string     `json:"property_address" validate:"required,max=500"`
	Description     string     `json:"description" validate:"max=5000"`
	SurveyNumber    string     `json:"survey_number" validate:"max=100"`
	PropertySize    string     `json:"property_size" validate:"max=100"`
	PropertyType    string     `json:"property_type" validate:"max=100"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
}

// UpdateRecordRequest captures the mutable record fields. Nil fields stay untouched.
// ClearCategory detaches the category without assigning a new one.
type UpdateRecordRequest struct {
	Title           *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	PropertyAddress *string    `json:"property_address,omitempty" validate:"omitempty,max=500"`
	Description     *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	SurveyNumber    *string    `json:"survey_number,omitempty" validate:"omitempty,max=100"`
	PropertySize    *string    `json:"property_size,omitempty" validate:"omitempty,max=100"`
	PropertyType    *string    `json:"property_type,omitempty" validate:"omitempty,max=100"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	ClearCategory   bool       `json:"clear_category,omitempty"`
}

// DocumentUpload describes a file arriving with a create or update request.
type DocumentUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

func FromModel(r *models.LandRecord) *RecordDTO {
	if r == nil {
		return nil
	}
	dto := &RecordDTO{
		ID:              r.ID,
		Title:           r.Title,
		PropertyAddress: r.PropertyAddress,
		Description:     r.Description,
		SurveyNumber:    r.SurveyNumber,
		PropertySize:    r.PropertySize,
		PropertyType:    r.PropertyType,
		OwnerID:         r.OwnerID,
		CategoryID:      r.CategoryID,
		DocumentName:    r.DocumentName,
		DocumentBytes:   r.DocumentBytes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Category != nil {
		dto.Category = categories.FromModel(r.Category)
	}
	return dto
}

func fromModelList(items []models.LandRecord) []RecordDTO {
	out := make([]RecordDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
