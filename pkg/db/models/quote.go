package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcalloway/insuquote-backend/pkg/enums"
)

// Quote is a priced insulation job for one client. Amount is always the
// computed material + labor - rebate total; it is never written directly by
// API callers.
type Quote struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	ClientName    string            `gorm:"column:client_name;not null"`
	ClientEmail   *string           `gorm:"column:client_email"`
	ClientPhone   *string           `gorm:"column:client_phone"`
	Address       *string           `gorm:"column:address"`
	PostalCode    *string           `gorm:"column:postal_code"`
	ProjectName   string            `gorm:"column:project_name;not null"`
	ProjectType   *string           `gorm:"column:project_type"`
	SquareFootage float64           `gorm:"column:square_footage;not null;default:0"`
	MaterialCost  decimal.Decimal   `gorm:"column:material_cost;type:numeric(12,2);not null"`
	LaborCost     decimal.Decimal   `gorm:"column:labor_cost;type:numeric(12,2);not null"`
	RebateAmount  decimal.Decimal   `gorm:"column:rebate_amount;type:numeric(12,2);not null"`
	Amount        decimal.Decimal   `gorm:"column:amount;type:numeric(12,2);not null"`
	Status        enums.QuoteStatus `gorm:"column:status;not null;default:'Pending'"`
	Notes         *string           `gorm:"column:notes"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
