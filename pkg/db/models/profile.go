package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds per-user contact, billing, and preference fields. The primary
// key is the user id; the row is created lazily on the first settings read and
// never deleted by the application.
type Profile struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName             string    `gorm:"column:full_name;not null;default:''"`
	Email                string    `gorm:"column:email;not null;default:''"`
	Phone                string    `gorm:"column:phone;not null;default:''"`
	City                 string    `gorm:"column:city;not null;default:''"`
	State                string    `gorm:"column:state;not null;default:''"`
	BillingAddress       string    `gorm:"column:billing_address;not null;default:''"`
	BillingCity          string    `gorm:"column:billing_city;not null;default:''"`
	BillingState         string    `gorm:"column:billing_state;not null;default:''"`
	NotificationsEnabled bool      `gorm:"column:notifications_enabled;not null;default:true"`
	EmailNotifications   bool      `gorm:"column:email_notifications;not null;default:true"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
