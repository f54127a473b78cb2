package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateohidalgo/landrecords-backend/internal/records"
	"github.com/mateohidalgo/landrecords-backend/pkg/db/models"
	pkgerrors "github.com/mateohidalgo/landrecords-backend/pkg/errors"
)

// Mode selects how the browser is asked to handle the document.
type Mode string

const (
	ModeAttachment Mode = "attachment"
	ModeInline     Mode = "inline"
)

const fallbackContentType = "application/octet-stream"

// Delivery is an open document stream plus the headers the controller must set.
// Content must be closed by the caller once streamed.
type Delivery struct {
	Content     io.ReadCloser
	ContentType string
	Filename    string
	Size        int64
	Disposition Mode
}

// Service streams stored documents back to their owners.
type Service interface {
	Deliver(ctx context.Context, userID, recordID uuid.UUID, mode Mode) (*Delivery, error)
}

type recordFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.LandRecord, error)
}

type blobOpener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

type service struct {
	records recordFinder
	blobs   blobOpener
}

// NewService constructs a document delivery service.
func NewService(recordRepo recordFinder, blobs blobOpener) (Service, error) {
	if recordRepo == nil {
		return nil, fmt.Errorf("records repository is required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	return &service{records: recordRepo, blobs: blobs}, nil
}

func (s *service) Deliver(ctx context.Context, userID, recordID uuid.UUID, mode Mode) (*Delivery, error) {
	if mode != ModeAttachment && mode != ModeInline {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery mode")
	}

	record, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup record")
	}
	if err := records.Authorize(record, userID, records.OpRead); err != nil {
		return nil, err
	}

	content, err := s.blobs.Open(ctx, record.DocumentKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open document")
	}

	return &Delivery{
		Content:     content,
		ContentType: contentTypeFor(record.DocumentName),
		Filename:    record.DocumentName,
		Size:        record.DocumentBytes,
		Disposition: mode,
	}, nil
}

// contentTypeFor maps the stored filename's extension to a MIME type, falling
// back to a generic binary type for anything the platform table does not know.
func contentTypeFor(filename string) string {
	ext := records.NormalizedExt(filename)
	if ext == "" {
		return fallbackContentType
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return fallbackContentType
}
