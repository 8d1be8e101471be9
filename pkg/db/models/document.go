package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentGroup is a user-defined folder for uploaded documents.
type DocumentGroup struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// DocumentFile captures metadata for one uploaded object. The binary lives in
// object storage under StorageKey; the row only exists once both the upload
// and the insert succeeded.
type DocumentFile struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	GroupID    *uuid.UUID `gorm:"column:group_id;type:uuid;index"`
	Name       string     `gorm:"column:name;not null"`
	StorageKey string     `gorm:"column:storage_key;not null;unique"`
	FileURL    string     `gorm:"column:file_url;not null"`
	FileType   string     `gorm:"column:file_type;not null"`
	FileSize   int64      `gorm:"column:file_size;not null"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
