package domain

import "errors"

const (
	NotificationTypePackage    = "package"
	NotificationTypeOccurrence = "occurrence"
	NotificationTypeNotice     = "notice"
	NotificationTypeGeneric    = "generic"
)

var (
	ErrInvalidNotificationType = errors.New("invalid notification type")
	ErrNotificationNotFound    = errors.New("notification not found")
)

func IsValidNotificationType(value string) bool {
	switch value {
	case NotificationTypePackage, NotificationTypeOccurrence, NotificationTypeNotice, NotificationTypeGeneric:
		return true
	default:
		return false
	}
}
