package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/model"
)

func (s *Store) CreateNotification(_ context.Context, notification model.Notification) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	s.notifications = append(s.notifications, notification)
	return notification, nil
}

// ListNotifications returns the recipient's notifications newest first.
func (s *Store) ListNotifications(_ context.Context, recipientID string) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []model.Notification
	for i := len(s.notifications) - 1; i >= 0; i-- {
		record := s.notifications[i]
		if record.RecipientID != recipientID {
			continue
		}
		result = append(result, record)
	}
	return result, nil
}

// DeleteNotification is idempotent: deleting an id that is already gone is
// not an error, which keeps retried optimistic deletes quiet.
func (s *Store) DeleteNotification(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return nil
		}
	}
	return nil
}

func (s *Store) MarkAllRead(_ context.Context, recipientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].RecipientID == recipientID {
			s.notifications[i].Read = true
		}
	}
	return nil
}
