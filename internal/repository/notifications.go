package repository

import (
	"context"

	"frontdesk/internal/model"
)

type NotificationStore interface {
	ListNotifications(ctx context.Context, recipientID string) ([]model.Notification, error)
	CreateNotification(ctx context.Context, notification model.Notification) (model.Notification, error)
	DeleteNotification(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
}
