// Package reconcile owns the authoritative in-memory view of one recipient's
// notification list and unread count. Local optimistic mutations and remote
// push events flow through the same merge discipline so the two never
// double-count, whatever order the echoes arrive in.
package reconcile

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"frontdesk/internal/metrics"
	"frontdesk/internal/model"
	"frontdesk/internal/repository"
	"frontdesk/internal/suppress"
)

type Reconciler struct {
	mu          sync.Mutex
	recipientID string
	list        []model.Notification
	unread      int

	// Deletions and read-flips have different contradicting event shapes
	// (DELETE vs UPDATE) and must not cross-suppress.
	deletes *suppress.Window
	reads   *suppress.Window

	store   repository.NotificationStore
	publish func(model.Update)
	log     *zap.Logger
}

func New(recipientID string, store repository.NotificationStore, deletes, reads *suppress.Window, publish func(model.Update), logger *zap.Logger) *Reconciler {
	if publish == nil {
		publish = func(model.Update) {}
	}
	return &Reconciler{
		recipientID: recipientID,
		deletes:     deletes,
		reads:       reads,
		store:       store,
		publish:     publish,
		log:         logger,
	}
}

func (r *Reconciler) RecipientID() string {
	return r.recipientID
}

// Snapshot returns a copy of the list (newest first) and the unread count.
func (r *Reconciler) Snapshot() ([]model.Notification, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]model.Notification, len(r.list))
	copy(list, r.list)
	return list, r.unread
}

// ApplyLocalDelete removes the notification locally, records the id in the
// delete suppression window, then issues the store delete. On store failure
// the error is returned and local state stands: the removal already reflects
// the desired end state, and resubmission is the remedy.
func (r *Reconciler) ApplyLocalDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	if index, ok := r.indexOf(id); ok {
		if !r.list[index].Read {
			r.decrementUnread()
		}
		r.list = append(r.list[:index], r.list[index+1:]...)
	}
	r.deletes.Record(id)
	unread := r.unread
	r.mu.Unlock()

	r.publish(model.Update{Kind: model.UpdateKindDelete, RecipientID: r.recipientID, Unread: unread})

	if err := r.store.DeleteNotification(ctx, id); err != nil {
		r.log.Error("store delete notification failed",
			zap.String("recipient_id", r.recipientID),
			zap.String("notification_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ApplyLocalMarkRead flips the notification to read locally, records the id
// in the read suppression window, then issues the store update. Already-read
// or absent ids are a counter no-op but the write is still issued.
func (r *Reconciler) ApplyLocalMarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	if index, ok := r.indexOf(id); ok && !r.list[index].Read {
		r.list[index].Read = true
		r.decrementUnread()
	}
	r.reads.Record(id)
	unread := r.unread
	r.mu.Unlock()

	r.publish(model.Update{Kind: model.UpdateKindUpdate, RecipientID: r.recipientID, Unread: unread})

	if err := r.store.MarkRead(ctx, id); err != nil {
		r.log.Error("store mark read failed",
			zap.String("recipient_id", r.recipientID),
			zap.String("notification_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ApplyLocalMarkAllRead marks everything read in one bulk store call. No
// per-id suppression entries are taken: a later echo reporting read=true
// merges as a counter no-op anyway, and missed interleavings are covered by
// resync rather than the window.
func (r *Reconciler) ApplyLocalMarkAllRead(ctx context.Context) error {
	r.mu.Lock()
	for index := range r.list {
		r.list[index].Read = true
	}
	r.unread = 0
	r.mu.Unlock()

	r.publish(model.Update{Kind: model.UpdateKindUpdate, RecipientID: r.recipientID, Unread: 0})

	if err := r.store.MarkAllRead(ctx, r.recipientID); err != nil {
		r.log.Error("store mark all read failed",
			zap.String("recipient_id", r.recipientID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// OnRemoteInsert merges a pushed notification. Inserting an id that is
// already present is ignored, which makes duplicate delivery harmless.
func (r *Reconciler) OnRemoteInsert(notification model.Notification) {
	r.mu.Lock()
	if _, ok := r.indexOf(notification.ID); ok {
		r.mu.Unlock()
		metrics.DuplicateInserts.Inc()
		r.log.Debug("duplicate remote insert ignored",
			zap.String("recipient_id", r.recipientID),
			zap.String("notification_id", notification.ID),
		)
		return
	}
	r.list = append([]model.Notification{notification}, r.list...)
	if !notification.Read {
		r.unread++
	}
	unread := r.unread
	r.mu.Unlock()

	metrics.EventsApplied.WithLabelValues(model.EventOpInsert).Inc()
	r.publish(model.Update{Kind: model.UpdateKindInsert, RecipientID: r.recipientID, Notification: &notification, Unread: unread})
}

// OnRemoteUpdate merges a pushed read-state change unless the read window
// says it contradicts a mutation this client just made. Only a false→true
// transition moves the counter; true→false is not produced by this domain
// and is logged, the value applied, the counter left alone.
func (r *Reconciler) OnRemoteUpdate(id string, read bool) {
	if r.reads.ShouldSuppress(id) {
		metrics.EventsSuppressed.WithLabelValues(model.EventOpUpdate).Inc()
		r.log.Debug("remote update suppressed as local echo",
			zap.String("recipient_id", r.recipientID),
			zap.String("notification_id", id),
		)
		return
	}

	r.mu.Lock()
	index, ok := r.indexOf(id)
	if !ok {
		r.mu.Unlock()
		return
	}
	if r.list[index].Read != read {
		if read {
			r.decrementUnread()
		} else {
			r.log.Warn("unexpected remote unread transition",
				zap.String("recipient_id", r.recipientID),
				zap.String("notification_id", id),
			)
		}
		r.list[index].Read = read
	}
	updated := r.list[index]
	unread := r.unread
	r.mu.Unlock()

	metrics.EventsApplied.WithLabelValues(model.EventOpUpdate).Inc()
	r.publish(model.Update{Kind: model.UpdateKindUpdate, RecipientID: r.recipientID, Notification: &updated, Unread: unread})
}

// OnRemoteDelete removes a pushed deletion unless the delete window says it
// is the echo of a local delete already applied.
func (r *Reconciler) OnRemoteDelete(id string) {
	if r.deletes.ShouldSuppress(id) {
		metrics.EventsSuppressed.WithLabelValues(model.EventOpDelete).Inc()
		r.log.Debug("remote delete suppressed as local echo",
			zap.String("recipient_id", r.recipientID),
			zap.String("notification_id", id),
		)
		return
	}

	r.mu.Lock()
	index, ok := r.indexOf(id)
	if !ok {
		r.mu.Unlock()
		return
	}
	if !r.list[index].Read {
		r.decrementUnread()
	}
	r.list = append(r.list[:index], r.list[index+1:]...)
	unread := r.unread
	r.mu.Unlock()

	metrics.EventsApplied.WithLabelValues(model.EventOpDelete).Inc()
	r.publish(model.Update{Kind: model.UpdateKindDelete, RecipientID: r.recipientID, Unread: unread})
}

// Resync replaces list and counter wholesale from an authoritative fetch.
// Never merged incrementally: full replacement recovers from any missed or
// reordered event.
func (r *Reconciler) Resync(ctx context.Context) error {
	fetched, err := r.store.ListNotifications(ctx, r.recipientID)
	if err != nil {
		r.log.Error("resync fetch failed", zap.String("recipient_id", r.recipientID), zap.Error(err))
		return err
	}

	unread := 0
	for _, notification := range fetched {
		if !notification.Read {
			unread++
		}
	}

	r.mu.Lock()
	r.list = fetched
	r.unread = unread
	r.mu.Unlock()

	metrics.Resyncs.Inc()
	r.publish(model.Update{Kind: model.UpdateKindResync, RecipientID: r.recipientID, Unread: unread})
	return nil
}

// callers hold r.mu
func (r *Reconciler) indexOf(id string) (int, bool) {
	for index := range r.list {
		if r.list[index].ID == id {
			return index, true
		}
	}
	return 0, false
}

func (r *Reconciler) decrementUnread() {
	if r.unread > 0 {
		r.unread--
	}
}
