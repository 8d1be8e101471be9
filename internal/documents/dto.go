package documents

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
)

// DocumentGroupDTO is the transport shape for a document folder.
type DocumentGroupDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentFileDTO is the transport shape for an uploaded file's metadata.
type DocumentFileDTO struct {
	ID        uuid.UUID  `json:"id"`
	GroupID   *uuid.UUID `json:"group_id,omitempty"`
	Name      string     `json:"name"`
	FileURL   string     `json:"file_url"`
	FileType  string     `json:"file_type"`
	FileSize  int64      `json:"file_size"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateGroupDTO carries the payload for creating a folder.
type CreateGroupDTO struct {
	Name string `json:"name" validate:"required,max=120"`
}

// UploadInput describes one file in an upload batch. Body is consumed once.
type UploadInput struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
	GroupID     *uuid.UUID
}

// UploadResult reports the outcome for one file of a batch. Exactly one of
// File and Error is set.
type UploadResult struct {
	Name  string           `json:"name"`
	File  *DocumentFileDTO `json:"file,omitempty"`
	Error string           `json:"error,omitempty"`
}

// FileFilter narrows a file listing. GroupID and Ungrouped are mutually
// exclusive; both unset lists everything the user owns.
type FileFilter struct {
	GroupID   *uuid.UUID
	Ungrouped bool
}

// MoveToGroupDTO carries the target folder for a file. A nil group detaches
// the file.
type MoveToGroupDTO struct {
	GroupID *uuid.UUID `json:"group_id"`
}

func groupFromModel(g *models.DocumentGroup) DocumentGroupDTO {
	return DocumentGroupDTO{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func fileFromModel(f *models.DocumentFile) DocumentFileDTO {
	return DocumentFileDTO{
		ID:        f.ID,
		GroupID:   f.GroupID,
		Name:      f.Name,
		FileURL:   f.FileURL,
		FileType:  f.FileType,
		FileSize:  f.FileSize,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
