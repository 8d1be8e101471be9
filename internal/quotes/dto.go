package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
	"github.com/jmcalloway/insuquote-backend/pkg/enums"
)

// QuoteDTO is the transport shape for a single quote.
type QuoteDTO struct {
	ID            uuid.UUID         `json:"id"`
	ClientName    string            `json:"client_name"`
	ClientEmail   *string           `json:"client_email,omitempty"`
	ClientPhone   *string           `json:"client_phone,omitempty"`
	Address       *string           `json:"address,omitempty"`
	PostalCode    *string           `json:"postal_code,omitempty"`
	ProjectName   string            `json:"project_name"`
	ProjectType   *string           `json:"project_type,omitempty"`
	SquareFootage float64           `json:"square_footage"`
	MaterialCost  decimal.Decimal   `json:"material_cost"`
	LaborCost     decimal.Decimal   `json:"labor_cost"`
	RebateAmount  decimal.Decimal   `json:"rebate_amount"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        enums.QuoteStatus `json:"status"`
	Notes         *string           `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CreateQuoteDTO holds the client-supplied fields for a new quote.
// Cost fields are intentionally absent: pricing is computed server-side.
type CreateQuoteDTO struct {
	ClientName    string  `json:"client_name" validate:"required"`
	ClientEmail   *string `json:"client_email,omitempty" validate:"omitempty,email"`
	ClientPhone   *string `json:"client_phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	PostalCode    *string `json:"postal_code,omitempty"`
	ProjectName   string  `json:"project_name" validate:"required"`
	ProjectType   *string `json:"project_type,omitempty"`
	SquareFootage float64 `json:"square_footage" validate:"gte=0"`
	Notes         *string `json:"notes,omitempty"`
}

// UpdateQuoteDTO patches quote fields. Nil means "leave unchanged".
type UpdateQuoteDTO struct {
	ClientName    *string  `json:"client_name,omitempty"`
	ClientEmail   *string  `json:"client_email,omitempty" validate:"omitempty,email"`
	ClientPhone   *string  `json:"client_phone,omitempty"`
	Address       *string  `json:"address,omitempty"`
	PostalCode    *string  `json:"postal_code,omitempty"`
	ProjectName   *string  `json:"project_name,omitempty"`
	ProjectType   *string  `json:"project_type,omitempty"`
	SquareFootage *float64 `json:"square_footage,omitempty" validate:"omitempty,gte=0"`
	Notes         *string  `json:"notes,omitempty"`
}

// QuotePageDTO is a cursor page of quotes.
type QuotePageDTO struct {
	Items      []QuoteDTO `json:"items"`
	Total      int64      `json:"total"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// StatsRecord is the minimal projection the aggregators consume.
type StatsRecord struct {
	ID         uuid.UUID
	ClientName string
	Amount     decimal.Decimal
	Status     enums.QuoteStatus
	CreatedAt  time.Time
}

// FromModel maps a persisted quote into its transport shape.
func FromModel(q *models.Quote) QuoteDTO {
	return QuoteDTO{
		ID:            q.ID,
		ClientName:    q.ClientName,
		ClientEmail:   q.ClientEmail,
		ClientPhone:   q.ClientPhone,
		Address:       q.Address,
		PostalCode:    q.PostalCode,
		ProjectName:   q.ProjectName,
		ProjectType:   q.ProjectType,
		SquareFootage: q.SquareFootage,
		MaterialCost:  q.MaterialCost,
		LaborCost:     q.LaborCost,
		RebateAmount:  q.RebateAmount,
		Amount:        q.Amount,
		Status:        q.Status,
		Notes:         q.Notes,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
