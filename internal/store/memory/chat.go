package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/model"
)

func (s *Store) ListMessages(_ context.Context, recipientID string) ([]model.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.messages[recipientID]
	result := make([]model.ChatMessage, len(stored))
	copy(result, stored)
	return result, nil
}

func (s *Store) AppendMessage(_ context.Context, recipientID string, message model.ChatMessage) (model.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	s.messages[recipientID] = append(s.messages[recipientID], message)
	return message, nil
}
