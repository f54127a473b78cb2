package documents

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateohidalgo/landrecords-backend/pkg/db/models"
	pkgerrors "github.com/mateohidalgo/landrecords-backend/pkg/errors"
)

type fakeRecordFinder struct {
	record *models.LandRecord
	err    error
}

func (f *fakeRecordFinder) FindByID(_ context.Context, _ uuid.UUID) (*models.LandRecord, error) {
	return f.record, f.err
}

type fakeBlobOpener struct {
	content string
	err     error
	opened  string
}

func (f *fakeBlobOpener) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f.opened = key
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.content)), nil
}

func testRecord(ownerID uuid.UUID, filename string) *models.LandRecord {
	return &models.LandRecord{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		DocumentName:  filename,
		DocumentKey:   "records/" + uuid.NewString(),
		DocumentBytes: 42,
	}
}

func TestDeliverAttachment(t *testing.T) {
	owner := uuid.New()
	finder := &fakeRecordFinder{record: testRecord(owner, "deed.pdf")}
	blobs := &fakeBlobOpener{content: "deed bytes"}

	svc, err := NewService(finder, blobs)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	delivery, err := svc.Deliver(context.Background(), owner, finder.record.ID, ModeAttachment)
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	defer delivery.Content.Close()

	if delivery.ContentType != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", delivery.ContentType)
	}
	if delivery.Filename != "deed.pdf" {
		t.Fatalf("expected original filename, got %q", delivery.Filename)
	}
	if delivery.Disposition != ModeAttachment {
		t.Fatalf("expected attachment disposition, got %q", delivery.Disposition)
	}
	if blobs.opened != finder.record.DocumentKey {
		t.Fatalf("expected blob %q opened, got %q", finder.record.DocumentKey, blobs.opened)
	}

	body, err := io.ReadAll(delivery.Content)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "deed bytes" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestDeliverForbiddenForNonOwner(t *testing.T) {
	finder := &fakeRecordFinder{record: testRecord(uuid.New(), "deed.pdf")}
	svc, err := NewService(finder, &fakeBlobOpener{content: "x"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Deliver(context.Background(), uuid.New(), finder.record.ID, ModeInline)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDeliverMissingRecord(t *testing.T) {
	finder := &fakeRecordFinder{err: gorm.ErrRecordNotFound}
	svc, err := NewService(finder, &fakeBlobOpener{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Deliver(context.Background(), uuid.New(), uuid.New(), ModeAttachment)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeliverRejectsUnknownMode(t *testing.T) {
	finder := &fakeRecordFinder{record: testRecord(uuid.New(), "deed.pdf")}
	svc, err := NewService(finder, &fakeBlobOpener{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Deliver(context.Background(), finder.record.OwnerID, finder.record.ID, Mode("weird"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestContentTypeFallback(t *testing.T) {
	if got := contentTypeFor("scan.unknownext"); got != fallbackContentType {
		t.Fatalf("expected fallback content type, got %q", got)
	}
	if got := contentTypeFor("noext"); got != fallbackContentType {
		t.Fatalf("expected fallback content type, got %q", got)
	}
	if got := contentTypeFor("photo.PNG"); got != "image/png" {
		t.Fatalf("expected image/png, got %q", got)
	}
}
