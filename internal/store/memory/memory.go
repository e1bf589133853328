package memory

import (
	"sync"

	"go.uber.org/zap"

	"frontdesk/internal/model"
)

// Store keeps everything in process. Default backend when no MySQL DSN is
// configured; also what the unit and e2e tests run against.
type Store struct {
	mu            sync.Mutex
	notifications []model.Notification
	messages      map[string][]model.ChatMessage
	reservations  []model.Reservation
	log           *zap.Logger
}

func New(logger *zap.Logger) *Store {
	return &Store{
		messages: make(map[string][]model.ChatMessage),
		log:      logger,
	}
}
