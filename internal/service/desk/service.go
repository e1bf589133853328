// Package desk ties one signed-in recipient to their reconciler, push
// subscription and session stream filter, and is the only place that opens or
// tears those down.
package desk

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"frontdesk/internal/config"
	"frontdesk/internal/dispatch"
	"frontdesk/internal/model"
	"frontdesk/internal/queue"
	"frontdesk/internal/reconcile"
	"frontdesk/internal/repository"
	"frontdesk/internal/session"
	"frontdesk/internal/sse"
	"frontdesk/internal/suppress"
)

var ErrNoActiveSession = errors.New("no active session for recipient")

type recipientSession struct {
	session    *session.Session
	reconciler *reconcile.Reconciler
	dispatcher *dispatch.Dispatcher
	cancel     context.CancelFunc
}

type Service struct {
	mu            sync.Mutex
	sessions      map[string]*recipientSession
	notifications repository.NotificationStore
	chat          repository.ChatStore
	channel       queue.Channel
	publisher     queue.Publisher
	hub           *sse.Hub
	windowTTL     time.Duration
	log           *zap.Logger
}

func NewService(cfg *config.Config, notifications repository.NotificationStore, chat repository.ChatStore, channel queue.Channel, publisher queue.Publisher, hub *sse.Hub, logger *zap.Logger) *Service {
	return &Service{
		sessions:      make(map[string]*recipientSession),
		notifications: notifications,
		chat:          chat,
		channel:       channel,
		publisher:     publisher,
		hub:           hub,
		windowTTL:     cfg.SuppressWindow,
		log:           logger,
	}
}

// OpenSession authenticates a recipient: stamp the session, resync once from
// the store, then subscribe to push events. A still-open session for the same
// recipient is torn down first so events are never delivered twice.
func (s *Service) OpenSession(ctx context.Context, recipientID string) error {
	s.CloseSession(recipientID)

	sess := session.New(recipientID)
	sess.Start()

	reconciler := reconcile.New(
		recipientID,
		s.notifications,
		suppress.NewWindow(s.windowTTL),
		suppress.NewWindow(s.windowTTL),
		s.hub.Broadcast,
		s.log,
	)
	dispatcher := dispatch.New(s.channel, reconciler, s.log)

	if err := reconciler.Resync(ctx); err != nil {
		return err
	}

	subscribeCtx, cancel := context.WithCancel(context.Background())
	if err := dispatcher.Subscribe(subscribeCtx); err != nil {
		cancel()
		return err
	}

	s.mu.Lock()
	s.sessions[recipientID] = &recipientSession{
		session:    sess,
		reconciler: reconciler,
		dispatcher: dispatcher,
		cancel:     cancel,
	}
	s.mu.Unlock()

	s.log.Info("session opened", zap.String("recipient_id", recipientID))
	return nil
}

// CloseSession is the logout path; the reconciler state is discarded with it.
// Safe to call for a recipient with no session.
func (s *Service) CloseSession(recipientID string) {
	s.mu.Lock()
	active := s.sessions[recipientID]
	delete(s.sessions, recipientID)
	s.mu.Unlock()

	if active == nil {
		return
	}
	active.dispatcher.Unsubscribe()
	active.cancel()
	active.session.End()
	s.log.Info("session closed", zap.String("recipient_id", recipientID))
}

// Shutdown closes every open session.
func (s *Service) Shutdown() {
	s.mu.Lock()
	recipients := make([]string, 0, len(s.sessions))
	for recipientID := range s.sessions {
		recipients = append(recipients, recipientID)
	}
	s.mu.Unlock()
	for _, recipientID := range recipients {
		s.CloseSession(recipientID)
	}
}

func (s *Service) Snapshot(recipientID string) ([]model.Notification, int, error) {
	active, err := s.lookup(recipientID)
	if err != nil {
		return nil, 0, err
	}
	list, unread := active.reconciler.Snapshot()
	return list, unread, nil
}

func (s *Service) DeleteNotification(ctx context.Context, recipientID, id string) error {
	active, err := s.lookup(recipientID)
	if err != nil {
		return err
	}
	if err := active.reconciler.ApplyLocalDelete(ctx, id); err != nil {
		return err
	}
	s.publishEcho(ctx, model.EventOpDelete, model.Notification{ID: id, RecipientID: recipientID})
	return nil
}

func (s *Service) MarkRead(ctx context.Context, recipientID, id string) error {
	active, err := s.lookup(recipientID)
	if err != nil {
		return err
	}
	if err := active.reconciler.ApplyLocalMarkRead(ctx, id); err != nil {
		return err
	}
	s.publishEcho(ctx, model.EventOpUpdate, model.Notification{ID: id, RecipientID: recipientID, Read: true})
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID string) error {
	active, err := s.lookup(recipientID)
	if err != nil {
		return err
	}
	return active.reconciler.ApplyLocalMarkAllRead(ctx)
}

// Resync is the fallback trigger surface: page-becomes-visible, entering a
// fresh-data view, or manual recovery.
func (s *Service) Resync(ctx context.Context, recipientID string) error {
	active, err := s.lookup(recipientID)
	if err != nil {
		return err
	}
	return active.dispatcher.Resync(ctx)
}

func (s *Service) SubscriptionState(recipientID string) (dispatch.State, error) {
	active, err := s.lookup(recipientID)
	if err != nil {
		return "", err
	}
	return active.dispatcher.State(), nil
}

// VisibleMessages returns stored chat history filtered to the current
// session; nothing is ever removed from the store.
func (s *Service) VisibleMessages(ctx context.Context, recipientID string) ([]model.ChatMessage, error) {
	active, err := s.lookup(recipientID)
	if err != nil {
		return nil, err
	}
	messages, err := s.chat.ListMessages(ctx, recipientID)
	if err != nil {
		s.log.Error("store list messages failed", zap.String("recipient_id", recipientID), zap.Error(err))
		return nil, err
	}
	start := active.session.EnsureStarted()
	return session.Visible(messages, start), nil
}

func (s *Service) SendMessage(ctx context.Context, recipientID string, message model.ChatMessage) (model.ChatMessage, error) {
	active, err := s.lookup(recipientID)
	if err != nil {
		return model.ChatMessage{}, err
	}
	// Stamp before appending so the fresh message is visible even if the
	// mark step raced with the send.
	active.session.EnsureStarted()
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	appended, err := s.chat.AppendMessage(ctx, recipientID, message)
	if err != nil {
		s.log.Error("store append message failed", zap.String("recipient_id", recipientID), zap.Error(err))
		return model.ChatMessage{}, err
	}
	return appended, nil
}

// publishEcho pushes the write back out through the broker the way the
// backing store's realtime channel would. Other devices of the same recipient
// merge it; this device's own subscription sees it as an echo and the
// suppression window discards it. Publish failures are logged only: the store
// write already succeeded and resync covers the rest.
func (s *Service) publishEcho(ctx context.Context, op string, notification model.Notification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		s.log.Error("echo payload marshal failed", zap.Error(err))
		return
	}
	routingKey := dispatch.EntityClassNotifications + "." + notification.RecipientID + "." + op
	if err := s.publisher.Publish(ctx, payload, routingKey); err != nil {
		s.log.Error("echo publish failed",
			zap.String("recipient_id", notification.RecipientID),
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (s *Service) lookup(recipientID string) (*recipientSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	active, ok := s.sessions[recipientID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return active, nil
}
