package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
	"github.com/jmcalloway/insuquote-backend/pkg/enums"
)

// NotificationDTO is the transport shape for one bell entry.
type NotificationDTO struct {
	ID        uuid.UUID              `json:"id"`
	Type      enums.NotificationType `json:"type"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// PageDTO is one cursor page of notifications plus the unread tally.
type PageDTO struct {
	Items       []NotificationDTO `json:"items"`
	UnreadCount int64             `json:"unread_count"`
	NextCursor  string            `json:"next_cursor,omitempty"`
}

func fromModel(n *models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Body:      n.Body,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
