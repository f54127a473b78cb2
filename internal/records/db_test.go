package records

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mateohidalgo/landrecords-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Category{}, &models.LandRecord{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func mustCreateTestUser(t *testing.T, conn *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "hash",
		FirstName:    "Repo",
		LastName:     "Tester",
		IsActive:     true,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTestCategory(t *testing.T, conn *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	if err := conn.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateTestRecord(t *testing.T, conn *gorm.DB, ownerID uuid.UUID, title string, createdAt time.Time, mutate func(*models.LandRecord)) *models.LandRecord {
	t.Helper()
	record := &models.LandRecord{
		Title:           title,
		PropertyAddress: "1 Test Lane",
		Description:     "test record",
		SurveyNumber:    "SN-0",
		OwnerID:         ownerID,
		DocumentName:    "doc.pdf",
		DocumentKey:     "records/" + uuid.NewString() + ".pdf",
		DocumentBytes:   64,
	}
	if mutate != nil {
		mutate(record)
	}
	if err := conn.Create(record).Error; err != nil {
		t.Fatalf("create record %q: %v", title, err)
	}
	if !createdAt.IsZero() {
		if err := conn.Model(record).UpdateColumn("created_at", createdAt).Error; err != nil {
			t.Fatalf("backdate record %q: %v", title, err)
		}
		record.CreatedAt = createdAt
	}
	return record
}
