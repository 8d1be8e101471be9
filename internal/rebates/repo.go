package rebates

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
)

// Repository exposes saved-rebate persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a rebates repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a bookmark. The unique index on (user_id, rebate_id) makes
// a duplicate insert fail even if two requests race past the pre-check.
func (r *Repository) Create(ctx context.Context, saved *models.SavedRebate) (*models.SavedRebate, error) {
	if err := r.db.WithContext(ctx).Create(saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}

// List returns the user's bookmarks, newest first.
func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]models.SavedRebate, error) {
	var saved []models.SavedRebate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saved).Error
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// FindByRebateID loads the user's bookmark for one catalog program.
func (r *Repository) FindByRebateID(ctx context.Context, userID uuid.UUID, rebateID string) (*models.SavedRebate, error) {
	var saved models.SavedRebate
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND rebate_id = ?", userID, rebateID).
		First(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteByRebateID removes the user's bookmark for one catalog program,
// reporting rows affected.
func (r *Repository) DeleteByRebateID(ctx context.Context, userID uuid.UUID, rebateID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND rebate_id = ?", userID, rebateID).
		Delete(&models.SavedRebate{})
	return result.RowsAffected, result.Error
}
