package session

import (
	"sync"
	"time"

	"frontdesk/internal/model"
)

// Session stamps the start of one authenticated session. The stamp limits
// which chat history is shown; the stored history itself is never touched.
type Session struct {
	mu          sync.Mutex
	recipientID string
	startedAt   time.Time
	now         func() time.Time
}

func New(recipientID string) *Session {
	return &Session{recipientID: recipientID, now: time.Now}
}

func (s *Session) RecipientID() string {
	return s.recipientID
}

// Start stamps the session start once. A second call while the session is
// already active is a no-op: first login wins.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startedAt.IsZero() {
		s.startedAt = s.now()
	}
}

// End clears the stamp so the next login re-stamps.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startedAt = time.Time{}
}

func (s *Session) StartedAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt, !s.startedAt.IsZero()
}

// EnsureStarted stamps lazily if the mark step raced with a send, so a
// freshly sent message is always visible to its sender.
func (s *Session) EnsureStarted() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startedAt.IsZero() {
		s.startedAt = s.now()
	}
	return s.startedAt
}

// SetClock replaces the time source. Test hook.
func (s *Session) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Visible returns the subsequence of messages with timestamp at or after
// start. Pure: the input slice is never mutated.
func Visible(messages []model.ChatMessage, start time.Time) []model.ChatMessage {
	var visible []model.ChatMessage
	for _, message := range messages {
		if !message.Timestamp.Before(start) {
			visible = append(visible, message)
		}
	}
	return visible
}
