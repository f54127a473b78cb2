package records

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateohidalgo/landrecords-backend/internal/categories"
	"github.com/mateohidalgo/landrecords-backend/pkg/db/models"
	pkgerrors "github.com/mateohidalgo/landrecords-backend/pkg/errors"
	"github.com/mateohidalgo/landrecords-backend/pkg/pagination"
)

const dashboardRecentLimit = 5

// Service exposes the land record operations needed by the controllers.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreateRecordRequest, doc DocumentUpload) (*RecordDTO, error)
	Get(ctx context.Context, userID, recordID uuid.UUID) (*RecordDTO, error)
	Update(ctx context.Context, userID, recordID uuid.UUID, req UpdateRecordRequest, doc *DocumentUpload) (*RecordDTO, error)
	Delete(ctx context.Context, userID, recordID uuid.UUID) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardDTO, error)
}

// DashboardDTO summarizes the caller's records for the landing view.
type DashboardDTO struct {
	TotalRecords  int64                    `json:"total_records"`
	RecentRecords []RecordDTO              `json:"recent_records"`
	Categories    []categories.CategoryDTO `json:"categories"`
}

type recordRepository interface {
	Create(ctx context.Context, record *models.LandRecord) (*models.LandRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.LandRecord, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.LandRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) ([]models.LandRecord, int64, error)
	Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.LandRecord, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type categoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

type blobStore interface {
	Save(ctx context.Context, key string, content io.Reader) error
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo       recordRepository
	categories categoryRepository
	blobs      blobStore
}

// ServiceParams bundles the dependencies required to build a records service.
type ServiceParams struct {
	Repo       recordRepository
	Categories categoryRepository
	Blobs      blobStore
}

// NewService constructs a records service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("records repository is required")
	}
	if params.Categories == nil {
		return nil, fmt.Errorf("categories repository is required")
	}
	if params.Blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	return &service{
		repo:       params.Repo,
		categories: params.Categories,
		blobs:      params.Blobs,
	}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateRecordRequest, doc DocumentUpload) (*RecordDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if err := ValidateUpload(doc.Filename, doc.Size); err != nil {
		return nil, err
	}
	if doc.Content == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document content is required")
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	key := newDocumentKey(doc.Filename)
	if err := s.blobs.Save(ctx, key, doc.Content); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store document")
	}

	record := &models.LandRecord{
		Title:           strings.TrimSpace(req.Title),
		PropertyAddress: strings.TrimSpace(req.PropertyAddress),
		Description:     strings.TrimSpace(req.Description),
		SurveyNumber:    strings.TrimSpace(req.SurveyNumber),
		PropertySize:    strings.TrimSpace(req.PropertySize),
		PropertyType:    strings.TrimSpace(req.PropertyType),
		OwnerID:         ownerID,
		CategoryID:      req.CategoryID,
		DocumentName:    doc.Filename,
		DocumentKey:     key,
		DocumentBytes:   doc.Size,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		// The blob has no owning row; remove it so failed creates leave nothing behind.
		_ = s.blobs.Delete(ctx, key)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create record")
	}

	return s.reload(ctx, created.ID)
}

func (s *service) Get(ctx context.Context, userID, recordID uuid.UUID) (*RecordDTO, error) {
	record, err := s.load(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(record, userID, OpRead); err != nil {
		return nil, err
	}
	return FromModel(record), nil
}

func (s *service) Update(ctx context.Context, userID, recordID uuid.UUID, req UpdateRecordRequest, doc *DocumentUpload) (*RecordDTO, error) {
	record, err := s.load(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(record, userID, OpUpdate); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.PropertyAddress != nil {
		updates["property_address"] = strings.TrimSpace(*req.PropertyAddress)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.SurveyNumber != nil {
		updates["survey_number"] = strings.TrimSpace(*req.SurveyNumber)
	}
	if req.PropertySize != nil {
		updates["property_size"] = strings.TrimSpace(*req.PropertySize)
	}
	if req.PropertyType != nil {
		updates["property_type"] = strings.TrimSpace(*req.PropertyType)
	}
	if req.ClearCategory {
		updates["category_id"] = nil
	} else if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *req.CategoryID
	}

	oldKey := ""
	if doc != nil {
		if err := ValidateUpload(doc.Filename, doc.Size); err != nil {
			return nil, err
		}
		if doc.Content == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "document content is required")
		}
		key := newDocumentKey(doc.Filename)
		if err := s.blobs.Save(ctx, key, doc.Content); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store document")
		}
		oldKey = record.DocumentKey
		updates["document_name"] = doc.Filename
		updates["document_key"] = key
		updates["document_bytes"] = doc.Size
	}

	updated, err := s.repo.Update(ctx, recordID, updates)
	if err != nil {
		if newKey, ok := updates["document_key"].(string); ok {
			_ = s.blobs.Delete(ctx, newKey)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update record")
	}

	if oldKey != "" {
		// Replaced document; the old blob is unreferenced now.
		_ = s.blobs.Delete(ctx, oldKey)
	}

	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	record, err := s.load(ctx, recordID)
	if err != nil {
		return err
	}
	if err := Authorize(record, userID, OpDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, recordID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete record")
	}

	// Row is gone; blob removal is best-effort and idempotent.
	_ = s.blobs.Delete(ctx, record.DocumentKey)
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list records")
	}

	return &ListResult{
		Items: fromModelList(items),
		Page:  pagination.Describe(params.Page, total),
	}, nil
}

func (s *service) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	total, err := s.repo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count records")
	}
	recent, err := s.repo.Recent(ctx, userID, dashboardRecentLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load recent records")
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}

	catDTOs := make([]categories.CategoryDTO, 0, len(cats))
	for i := range cats {
		catDTOs = append(catDTOs, *categories.FromModel(&cats[i]))
	}

	return &DashboardDTO{
		TotalRecords:  total,
		RecentRecords: fromModelList(recent),
		Categories:    catDTOs,
	}, nil
}

func (s *service) load(ctx context.Context, recordID uuid.UUID) (*models.LandRecord, error) {
	record, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup record")
	}
	return record, nil
}

func (s *service) reload(ctx context.Context, recordID uuid.UUID) (*RecordDTO, error) {
	record, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload record")
	}
	return FromModel(record), nil
}

func (s *service) checkCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
	}
	return nil
}

func newDocumentKey(filename string) string {
	return "records/" + uuid.NewString() + NormalizedExt(filename)
}
