package rebates

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
)

// SavedRebateDTO is the transport shape for a bookmarked program.
type SavedRebateDTO struct {
	ID             uuid.UUID `json:"id"`
	RebateID       string    `json:"rebate_id"`
	RebateName     string    `json:"rebate_name"`
	RebateProvider string    `json:"rebate_provider"`
	RebateAmount   string    `json:"rebate_amount"`
	RebateURL      string    `json:"rebate_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToggleResultDTO reports the state a toggle landed in.
type ToggleResultDTO struct {
	RebateID string `json:"rebate_id"`
	Saved    bool   `json:"saved"`
}

func fromModel(r *models.SavedRebate) SavedRebateDTO {
	return SavedRebateDTO{
		ID:             r.ID,
		RebateID:       r.RebateID,
		RebateName:     r.RebateName,
		RebateProvider: r.RebateProvider,
		RebateAmount:   r.RebateAmount,
		RebateURL:      r.RebateURL,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
