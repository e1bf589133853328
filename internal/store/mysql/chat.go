package mysql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"frontdesk/internal/model"
)

func (s *Store) ListMessages(ctx context.Context, recipientID string) ([]model.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, sender_role, sent_at, is_read
		 FROM chat_messages WHERE recipient_id = ? ORDER BY sent_at ASC, id ASC`,
		recipientID,
	)
	if err != nil {
		s.log.Error("sql list messages failed", zap.String("recipient_id", recipientID), zap.Error(err))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []model.ChatMessage
	for rows.Next() {
		var record model.ChatMessage
		if err := rows.Scan(&record.ID, &record.Text, &record.SenderRole, &record.Timestamp, &record.Read); err != nil {
			s.log.Error("sql scan message failed", zap.Error(err))
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func (s *Store) AppendMessage(ctx context.Context, recipientID string, message model.ChatMessage) (model.ChatMessage, error) {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, recipient_id, text, sender_role, sent_at, is_read)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		message.ID,
		recipientID,
		message.Text,
		message.SenderRole,
		message.Timestamp,
		message.Read,
	)
	if err != nil {
		s.log.Error("sql append message failed", zap.String("recipient_id", recipientID), zap.Error(err))
		return model.ChatMessage{}, err
	}
	return message, nil
}
