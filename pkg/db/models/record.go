package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LandRecord is a single land-ownership document entry: free-text property
// metadata plus one stored file. OwnerID is set at creation and never changes.
type LandRecord struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Title           string     `gorm:"column:title;not null"`
	PropertyAddress string     `gorm:"column:property_address;not null"`
	Description     string     `gorm:"column:description;not null"`
	SurveyNumber    string     `gorm:"column:survey_number"`
	PropertySize    string     `gorm:"column:property_size"`
	PropertyType    string     `gorm:"column:property_type"`
	OwnerID         uuid.UUID  `gorm:"column:owner_id;type:uuid;not null;index"`
	CategoryID      *uuid.UUID `gorm:"column:category_id;type:uuid;index"`

	DocumentName  string `gorm:"column:document_name;not null"`
	DocumentKey   string `gorm:"column:document_key;not null;uniqueIndex"`
	DocumentBytes int64  `gorm:"column:document_bytes;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Owner    *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

func (r *LandRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
