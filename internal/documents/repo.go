package documents

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
)

// Repository exposes document persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a documents repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateGroup inserts a folder and returns the persisted model.
func (r *Repository) CreateGroup(ctx context.Context, group *models.DocumentGroup) (*models.DocumentGroup, error) {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups returns the user's folders, newest first.
func (r *Repository) ListGroups(ctx context.Context, userID uuid.UUID) ([]models.DocumentGroup, error) {
	var groups []models.DocumentGroup
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// FindGroupByID loads a folder scoped to its owner.
func (r *Repository) FindGroupByID(ctx context.Context, userID, id uuid.UUID) (*models.DocumentGroup, error) {
	var group models.DocumentGroup
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteGroup removes a folder scoped to its owner, reporting rows affected.
func (r *Repository) DeleteGroup(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.DocumentGroup{})
	return result.RowsAffected, result.Error
}

// CreateFile inserts a metadata row and returns the persisted model.
func (r *Repository) CreateFile(ctx context.Context, file *models.DocumentFile) (*models.DocumentFile, error) {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

// ListFiles returns the user's files, newest first, optionally narrowed to
// one folder or to files outside any folder.
func (r *Repository) ListFiles(ctx context.Context, userID uuid.UUID, filter FileFilter) ([]models.DocumentFile, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	} else if filter.Ungrouped {
		query = query.Where("group_id IS NULL")
	}

	var files []models.DocumentFile
	if err := query.Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// FindFileByID loads a file scoped to its owner.
func (r *Repository) FindFileByID(ctx context.Context, userID, id uuid.UUID) (*models.DocumentFile, error) {
	var file models.DocumentFile
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// UpdateFileGroup moves a file into (or out of) a folder, reporting rows
// affected so the caller can distinguish not-found.
func (r *Repository) UpdateFileGroup(ctx context.Context, userID, id uuid.UUID, groupID *uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.DocumentFile{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("group_id", groupID)
	return result.RowsAffected, result.Error
}

// DeleteFile removes a metadata row scoped to its owner, reporting rows
// affected.
func (r *Repository) DeleteFile(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.DocumentFile{})
	return result.RowsAffected, result.Error
}
