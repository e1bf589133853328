package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"frontdesk/internal/model"
	"frontdesk/internal/queue"
	"frontdesk/internal/reconcile"
	"frontdesk/internal/store/memory"
	"frontdesk/internal/suppress"
)

type fakeSubscription struct {
	events chan queue.Delivery
	err    error

	once sync.Once
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{events: make(chan queue.Delivery, 16)}
}

func (s *fakeSubscription) Events() <-chan queue.Delivery { return s.events }
func (s *fakeSubscription) Err() error                    { return s.err }

func (s *fakeSubscription) Close() error {
	s.once.Do(func() { close(s.events) })
	return nil
}

func (s *fakeSubscription) failWith(err error) {
	s.err = err
	s.once.Do(func() { close(s.events) })
}

type fakeChannel struct {
	subscription *fakeSubscription
	openErr      error
	opened       []string
}

func (c *fakeChannel) Open(ctx context.Context, recipientID, entityClass string) (queue.Subscription, error) {
	if c.openErr != nil {
		return nil, c.openErr
	}
	c.opened = append(c.opened, recipientID+"/"+entityClass)
	return c.subscription, nil
}

func newTestDispatcher(t *testing.T, channel queue.Channel) (*Dispatcher, *reconcile.Reconciler) {
	t.Helper()
	reconciler := reconcile.New(
		"res-1",
		memory.New(zap.NewNop()),
		suppress.NewWindow(time.Second),
		suppress.NewWindow(time.Second),
		nil,
		zap.NewNop(),
	)
	return New(channel, reconciler, zap.NewNop()), reconciler
}

func deliver(t *testing.T, sub *fakeSubscription, op string, n model.Notification) {
	t.Helper()
	body, err := json.Marshal(n)
	require.NoError(t, err)
	sub.events <- queue.Delivery{Op: op, Body: body}
}

func TestSubscribe(t *testing.T) {
	t.Run("routes events to the reconciler", func(t *testing.T) {
		sub := newFakeSubscription()
		dispatcher, reconciler := newTestDispatcher(t, &fakeChannel{subscription: sub})

		require.NoError(t, dispatcher.Subscribe(context.Background()))
		defer dispatcher.Unsubscribe()
		require.Equal(t, StateSubscribed, dispatcher.State())

		deliver(t, sub, model.EventOpInsert, model.Notification{ID: "n-1", Type: "generic"})
		require.Eventually(t, func() bool {
			list, unread := reconciler.Snapshot()
			return len(list) == 1 && unread == 1
		}, time.Second, 5*time.Millisecond)

		deliver(t, sub, model.EventOpUpdate, model.Notification{ID: "n-1", Read: true})
		require.Eventually(t, func() bool {
			_, unread := reconciler.Snapshot()
			return unread == 0
		}, time.Second, 5*time.Millisecond)

		deliver(t, sub, model.EventOpDelete, model.Notification{ID: "n-1"})
		require.Eventually(t, func() bool {
			list, _ := reconciler.Snapshot()
			return len(list) == 0
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("second subscribe is rejected", func(t *testing.T) {
		sub := newFakeSubscription()
		dispatcher, _ := newTestDispatcher(t, &fakeChannel{subscription: sub})

		require.NoError(t, dispatcher.Subscribe(context.Background()))
		defer dispatcher.Unsubscribe()
		require.ErrorIs(t, dispatcher.Subscribe(context.Background()), ErrAlreadySubscribed)
	})

	t.Run("open failure lands in error state", func(t *testing.T) {
		openErr := errors.New("broker unavailable")
		dispatcher, _ := newTestDispatcher(t, &fakeChannel{openErr: openErr})

		require.ErrorIs(t, dispatcher.Subscribe(context.Background()), openErr)
		require.Equal(t, StateError, dispatcher.State())
	})
}

func TestReadLoopTermination(t *testing.T) {
	t.Run("unsubscribe closes cleanly", func(t *testing.T) {
		sub := newFakeSubscription()
		dispatcher, _ := newTestDispatcher(t, &fakeChannel{subscription: sub})

		require.NoError(t, dispatcher.Subscribe(context.Background()))
		dispatcher.Unsubscribe()
		require.Equal(t, StateClosed, dispatcher.State())

		// Idempotent with nothing open.
		dispatcher.Unsubscribe()
		require.Equal(t, StateClosed, dispatcher.State())
	})

	t.Run("stream failure lands in error state without retry", func(t *testing.T) {
		sub := newFakeSubscription()
		channel := &fakeChannel{subscription: sub}
		dispatcher, _ := newTestDispatcher(t, channel)

		require.NoError(t, dispatcher.Subscribe(context.Background()))
		sub.failWith(errors.New("connection reset"))

		require.Eventually(t, func() bool {
			return dispatcher.State() == StateError
		}, time.Second, 5*time.Millisecond)
		require.Len(t, channel.opened, 1)
	})

	t.Run("context cancel stops the loop", func(t *testing.T) {
		sub := newFakeSubscription()
		dispatcher, _ := newTestDispatcher(t, &fakeChannel{subscription: sub})

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, dispatcher.Subscribe(ctx))
		cancel()

		require.Eventually(t, func() bool {
			return dispatcher.State() == StateClosed
		}, time.Second, 5*time.Millisecond)
	})
}

func TestMalformedDeliveries(t *testing.T) {
	sub := newFakeSubscription()
	dispatcher, reconciler := newTestDispatcher(t, &fakeChannel{subscription: sub})

	require.NoError(t, dispatcher.Subscribe(context.Background()))
	defer dispatcher.Unsubscribe()

	// Undecodable body, missing id, unknown op: all dropped.
	sub.events <- queue.Delivery{Op: model.EventOpInsert, Body: []byte("{not json")}
	sub.events <- queue.Delivery{Op: model.EventOpInsert, Body: []byte(`{"title":"no id"}`)}
	deliver(t, sub, "upsert", model.Notification{ID: "n-9"})

	// A good event afterwards proves the loop survived.
	deliver(t, sub, model.EventOpInsert, model.Notification{ID: "n-1"})
	require.Eventually(t, func() bool {
		list, _ := reconciler.Snapshot()
		return len(list) == 1 && list[0].ID == "n-1"
	}, time.Second, 5*time.Millisecond)
}

func TestResyncBypassesPushChannel(t *testing.T) {
	store := memory.New(zap.NewNop())
	created, err := store.CreateNotification(context.Background(), model.Notification{RecipientID: "res-1", Type: "notice", Title: "water outage"})
	require.NoError(t, err)

	reconciler := reconcile.New("res-1", store, suppress.NewWindow(time.Second), suppress.NewWindow(time.Second), nil, zap.NewNop())
	dispatcher := New(&fakeChannel{subscription: newFakeSubscription()}, reconciler, zap.NewNop())

	require.NoError(t, dispatcher.Resync(context.Background()))
	require.Equal(t, StateIdle, dispatcher.State())

	list, unread := reconciler.Snapshot()
	require.Len(t, list, 1)
	require.Equal(t, created.ID, list[0].ID)
	require.Equal(t, 1, unread)
}
