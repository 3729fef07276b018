package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is an admin-uploaded knowledge-base file. The payload is stored
// opaquely in the bucket; only this metadata row lives in the database.
type Document struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	BucketKey   string         `gorm:"uniqueIndex;not null" json:"-"`
	ContentType string         `json:"content_type"`
	SizeBytes   int64          `json:"size_bytes"`
	UploadedBy  uuid.UUID      `gorm:"type:uuid;index;not null" json:"uploaded_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Document) TableName() string { return "document" }
