package repository

import (
	"context"

	"frontdesk/internal/model"
)

// ChatStore is append-only: history is never deleted, the session filter only
// limits what is displayed.
type ChatStore interface {
	ListMessages(ctx context.Context, recipientID string) ([]model.ChatMessage, error)
	AppendMessage(ctx context.Context, recipientID string, message model.ChatMessage) (model.ChatMessage, error)
}
