package settings

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
)

// ProfileDTO is the transport shape for a user's settings row.
type ProfileDTO struct {
	ID                   uuid.UUID `json:"id"`
	FullName             string    `json:"full_name"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone"`
	City                 string    `json:"city"`
	State                string    `json:"state"`
	BillingAddress       string    `json:"billing_address"`
	BillingCity          string    `json:"billing_city"`
	BillingState         string    `json:"billing_state"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	EmailNotifications   bool      `json:"email_notifications"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// UpdateProfileDTO carries a partial settings update; nil fields are left
// untouched.
type UpdateProfileDTO struct {
	FullName             *string `json:"full_name" validate:"omitempty,max=120"`
	Email                *string `json:"email" validate:"omitempty,email"`
	Phone                *string `json:"phone" validate:"omitempty,max=30"`
	City                 *string `json:"city" validate:"omitempty,max=80"`
	State                *string `json:"state" validate:"omitempty,max=80"`
	BillingAddress       *string `json:"billing_address" validate:"omitempty,max=200"`
	BillingCity          *string `json:"billing_city" validate:"omitempty,max=80"`
	BillingState         *string `json:"billing_state" validate:"omitempty,max=80"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	EmailNotifications   *bool   `json:"email_notifications"`
}

func fromModel(p *models.Profile) ProfileDTO {
	return ProfileDTO{
		ID:                   p.ID,
		FullName:             p.FullName,
		Email:                p.Email,
		Phone:                p.Phone,
		City:                 p.City,
		State:                p.State,
		BillingAddress:       p.BillingAddress,
		BillingCity:          p.BillingCity,
		BillingState:         p.BillingState,
		NotificationsEnabled: p.NotificationsEnabled,
		EmailNotifications:   p.EmailNotifications,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
