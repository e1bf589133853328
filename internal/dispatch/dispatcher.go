// Package dispatch connects one recipient's push subscription to their
// reconciler. Transport delivers raw payloads; decoding and routing happen
// here, so the reconciler's merge logic stays free of wire concerns.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"frontdesk/internal/metrics"
	"frontdesk/internal/model"
	"frontdesk/internal/queue"
	"frontdesk/internal/reconcile"
)

const EntityClassNotifications = "notifications"

type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateSubscribed State = "subscribed"
	StateError      State = "error"
	StateClosed     State = "closed"
)

var ErrAlreadySubscribed = errors.New("subscription already active")

type Dispatcher struct {
	mu          sync.Mutex
	channel     queue.Channel
	reconciler  *reconcile.Reconciler
	entityClass string
	log         *zap.Logger

	state        State
	subscription queue.Subscription
	done         chan struct{}
}

func New(channel queue.Channel, reconciler *reconcile.Reconciler, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		channel:     channel,
		reconciler:  reconciler,
		entityClass: EntityClassNotifications,
		log:         logger,
		state:       StateIdle,
	}
}

func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Subscribe opens the push subscription and starts the read loop. At most one
// subscription may be active per dispatcher; Unsubscribe must run before a
// subscription for a different recipient is opened, or events would be
// delivered twice.
func (d *Dispatcher) Subscribe(ctx context.Context) error {
	d.mu.Lock()
	if d.subscription != nil {
		d.mu.Unlock()
		return ErrAlreadySubscribed
	}
	d.state = StateConnecting
	d.mu.Unlock()

	subscription, err := d.channel.Open(ctx, d.reconciler.RecipientID(), d.entityClass)
	if err != nil {
		d.mu.Lock()
		d.state = StateError
		d.mu.Unlock()
		d.log.Error("open push subscription failed",
			zap.String("recipient_id", d.reconciler.RecipientID()),
			zap.String("entity_class", d.entityClass),
			zap.Error(err),
		)
		return err
	}

	done := make(chan struct{})
	d.mu.Lock()
	d.subscription = subscription
	d.state = StateSubscribed
	d.done = done
	d.mu.Unlock()

	go d.readLoop(ctx, subscription, done)
	return nil
}

// Unsubscribe tears down the active subscription and waits for the read loop
// to drain. Safe to call with no subscription open.
func (d *Dispatcher) Unsubscribe() {
	d.mu.Lock()
	subscription := d.subscription
	done := d.done
	d.subscription = nil
	d.done = nil
	if d.state == StateSubscribed || d.state == StateConnecting {
		d.state = StateClosed
	}
	d.mu.Unlock()

	if subscription == nil {
		return
	}
	if err := subscription.Close(); err != nil {
		d.log.Warn("close push subscription failed", zap.Error(err))
	}
	if done != nil {
		<-done
	}
}

// Resync is the manual fallback: page-becomes-visible, view refresh, initial
// session load. It bypasses the push channel entirely.
func (d *Dispatcher) Resync(ctx context.Context) error {
	return d.reconciler.Resync(ctx)
}

func (d *Dispatcher) readLoop(ctx context.Context, subscription queue.Subscription, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			d.setTerminalState(StateClosed)
			return
		case delivery, ok := <-subscription.Events():
			if !ok {
				// No auto-retry here: recovery is the resync fallbacks.
				if err := subscription.Err(); err != nil {
					d.setTerminalState(StateError)
					d.log.Error("push subscription ended",
						zap.String("recipient_id", d.reconciler.RecipientID()),
						zap.Error(err),
					)
				} else {
					d.setTerminalState(StateClosed)
				}
				return
			}
			d.handleDelivery(ctx, delivery)
		}
	}
}

func (d *Dispatcher) handleDelivery(ctx context.Context, delivery queue.Delivery) {
	_, span := otel.Tracer("dispatch").Start(ctx, "dispatch.handle_delivery")
	span.SetAttributes(
		attribute.String("frontdesk.recipient_id", d.reconciler.RecipientID()),
		attribute.String("frontdesk.event_op", delivery.Op),
	)
	defer span.End()

	var record model.Notification
	if err := json.Unmarshal(delivery.Body, &record); err != nil {
		metrics.EventsDropped.Inc()
		span.RecordError(err)
		d.log.Error("push event decode failed",
			zap.String("recipient_id", d.reconciler.RecipientID()),
			zap.String("op", delivery.Op),
			zap.Error(err),
		)
		return
	}
	if record.ID == "" {
		metrics.EventsDropped.Inc()
		d.log.Warn("push event missing id",
			zap.String("recipient_id", d.reconciler.RecipientID()),
			zap.String("op", delivery.Op),
		)
		return
	}

	switch delivery.Op {
	case model.EventOpInsert:
		d.reconciler.OnRemoteInsert(record)
	case model.EventOpUpdate:
		d.reconciler.OnRemoteUpdate(record.ID, record.Read)
	case model.EventOpDelete:
		d.reconciler.OnRemoteDelete(record.ID)
	default:
		metrics.EventsDropped.Inc()
		d.log.Warn("push event with unknown op",
			zap.String("recipient_id", d.reconciler.RecipientID()),
			zap.String("op", delivery.Op),
		)
	}
}

func (d *Dispatcher) setTerminalState(state State) {
	d.mu.Lock()
	if d.state == StateSubscribed || d.state == StateConnecting {
		d.state = state
	}
	d.mu.Unlock()
}
