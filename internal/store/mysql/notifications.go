package mysql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"frontdesk/internal/model"
)

func (s *Store) CreateNotification(ctx context.Context, notification model.Notification) (model.Notification, error) {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (id, recipient_id, type, title, message, related_id, image_url, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		notification.ID,
		notification.RecipientID,
		notification.Type,
		notification.Title,
		notification.Message,
		notification.RelatedID,
		notification.ImageURL,
		notification.Read,
		notification.CreatedAt,
	)
	if err != nil {
		s.log.Error("sql create notification failed",
			zap.String("recipient_id", notification.RecipientID),
			zap.String("type", notification.Type),
			zap.Error(err),
		)
		return model.Notification{}, err
	}
	return notification, nil
}

func (s *Store) ListNotifications(ctx context.Context, recipientID string) ([]model.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recipient_id, type, title, message, related_id, image_url, is_read, created_at
		 FROM notifications WHERE recipient_id = ? ORDER BY created_at DESC, id DESC`,
		recipientID,
	)
	if err != nil {
		s.log.Error("sql list notifications failed", zap.String("recipient_id", recipientID), zap.Error(err))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []model.Notification
	for rows.Next() {
		var record model.Notification
		if err := rows.Scan(
			&record.ID,
			&record.RecipientID,
			&record.Type,
			&record.Title,
			&record.Message,
			&record.RelatedID,
			&record.ImageURL,
			&record.Read,
			&record.CreatedAt,
		); err != nil {
			s.log.Error("sql scan notification failed", zap.Error(err))
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func (s *Store) DeleteNotification(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id); err != nil {
		s.log.Error("sql delete notification failed", zap.String("notification_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) MarkRead(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = ?`, id); err != nil {
		s.log.Error("sql mark read failed", zap.String("notification_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, recipientID string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE recipient_id = ?`, recipientID); err != nil {
		s.log.Error("sql mark all read failed", zap.String("recipient_id", recipientID), zap.Error(err))
		return err
	}
	return nil
}
