package categories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateohidalgo/landrecords-backend/pkg/db/models"
)

func TestRepositoryCategoryFlow(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Category{Name: "Sale Deed"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected category id to be generated")
	}

	updated, err := repo.Update(ctx, created.ID, map[string]any{"name": "Title Deed"})
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if updated.Name != "Title Deed" {
		t.Fatalf("expected updated name, got %s", updated.Name)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one category, got %d", len(list))
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found after delete, got %v", err)
	}
}

func TestRepositoryDeleteDetachesRecords(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	owner := &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FirstName:    "Alice",
		LastName:     "Owner",
		IsActive:     true,
	}
	if err := conn.Create(owner).Error; err != nil {
		t.Fatalf("create owner: %v", err)
	}

	category, err := repo.Create(ctx, &models.Category{Name: "Survey Map"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	record := &models.LandRecord{
		Title:           "Plot 12",
		PropertyAddress: "12 Main Rd",
		OwnerID:         owner.ID,
		CategoryID:      &category.ID,
		DocumentName:    "plot12.pdf",
		DocumentKey:     "records/" + uuid.NewString() + ".pdf",
		DocumentBytes:   128,
	}
	if err := conn.Create(record).Error; err != nil {
		t.Fatalf("create record: %v", err)
	}

	if err := repo.Delete(ctx, category.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	var reloaded models.LandRecord
	if err := conn.First(&reloaded, "id = ?", record.ID).Error; err != nil {
		t.Fatalf("reload record: %v", err)
	}
	if reloaded.CategoryID != nil {
		t.Fatalf("expected record category to be cleared, got %v", reloaded.CategoryID)
	}
}

func TestRepositoryDeleteMissingCategory(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)

	err := repo.Delete(context.Background(), uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}
