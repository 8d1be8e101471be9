package enums

import "fmt"

// NotificationType identifies what event produced a notification row.
type NotificationType string

const (
	NotificationTypeQuoteCreated       NotificationType = "quote_created"
	NotificationTypeQuoteStatusChanged NotificationType = "quote_status_changed"
	NotificationTypeDocumentsUploaded  NotificationType = "documents_uploaded"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeQuoteCreated,
	NotificationTypeQuoteStatusChanged,
	NotificationTypeDocumentsUploaded,
}

func (n NotificationType) String() string {
	return string(n)
}

func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw input into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
