package records

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateohidalgo/landrecords-backend/pkg/db/models"
	"github.com/mateohidalgo/landrecords-backend/pkg/pagination"
)

// Repository exposes land record persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a records repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new record row.
func (r *Repository) Create(ctx context.Context, record *models.LandRecord) (*models.LandRecord, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindByID loads a record with its category preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.LandRecord, error) {
	var record models.LandRecord
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Update applies column changes and returns the fresh row. owner_id is never
// part of the update set.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.LandRecord, error) {
	delete(updates, "owner_id")
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.LandRecord{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes the record row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LandRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns one page of the owner's records plus the filtered total.
// Search matches any of title, property address, description, or survey number
// case-insensitively; the category filter composes with AND. Ordering is newest
// first with id as a deterministic tie-break.
func (r *Repository) List(ctx context.Context, params ListParams) ([]models.LandRecord, int64, error) {
	params = params.normalized()

	query := r.db.WithContext(ctx).
		Model(&models.LandRecord{}).
		Where("owner_id = ?", params.OwnerID)

	if params.Search != "" {
		needle := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(property_address) LIKE ? OR LOWER(description) LIKE ? OR LOWER(survey_number) LIKE ?",
			needle, needle, needle, needle,
		)
	}
	if params.CategoryID != uuid.Nil {
		query = query.Where("category_id = ?", params.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.LandRecord
	if err := query.
		Preload("Category").
		Order("created_at DESC, id DESC").
		Limit(pagination.PageSize).
		Offset(pagination.Offset(params.Page)).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Recent returns the owner's newest records up to the provided limit.
func (r *Repository) Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.LandRecord, error) {
	var items []models.LandRecord
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Preload("Category").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountByOwner returns the owner's total record count.
func (r *Repository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.LandRecord{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error
	return total, err
}
