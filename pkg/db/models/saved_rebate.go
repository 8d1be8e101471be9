package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedRebate bookmarks a catalog rebate program for one user. The program
// fields are denormalized copies of the catalog entry, not a foreign key.
type SavedRebate struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_saved_rebates_user_rebate"`
	RebateID       string    `gorm:"column:rebate_id;not null;uniqueIndex:idx_saved_rebates_user_rebate"`
	RebateName     string    `gorm:"column:rebate_name;not null"`
	RebateProvider string    `gorm:"column:rebate_provider;not null"`
	RebateAmount   string    `gorm:"column:rebate_amount;not null"`
	RebateURL      string    `gorm:"column:rebate_url;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
