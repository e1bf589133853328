//go:build integration

package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"frontdesk/internal/config"
	"frontdesk/internal/model"
)

func TestChannelIntegration(t *testing.T) {
	ctx := context.Background()
	amqpURL, cleanup := setupRabbitMQContainer(t, ctx)
	defer cleanup()

	cfg := &config.Config{
		RabbitMQURL:       amqpURL,
		RabbitExchange:    "frontdesk.events",
		RabbitConsumerTag: "frontdesk-dispatcher",
	}

	channel := NewChannel(cfg, zap.NewNop())
	publisher := NewPublisher(cfg, zap.NewNop())

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	sub, err := channel.Open(subCtx, "res-1", "notifications")
	require.NoError(t, err)
	defer sub.Close()

	notification := model.Notification{
		ID:          "n-1",
		RecipientID: "res-1",
		Type:        "package",
		Title:       "package at the desk",
		Message:     "pick it up",
	}
	body, err := json.Marshal(notification)
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, body, "notifications.res-1."+model.EventOpInsert))

	select {
	case delivery := <-sub.Events():
		require.Equal(t, model.EventOpInsert, delivery.Op)
		var got model.Notification
		require.NoError(t, json.Unmarshal(delivery.Body, &got))
		require.Equal(t, notification.ID, got.ID)
		require.Equal(t, notification.Title, got.Title)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for push delivery")
	}

	// Events for other recipients must not reach this subscription.
	require.NoError(t, publisher.Publish(ctx, body, "notifications.res-2."+model.EventOpInsert))
	select {
	case delivery := <-sub.Events():
		t.Fatalf("unexpected delivery for another recipient: %+v", delivery)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestChannelIntegrationClose(t *testing.T) {
	ctx := context.Background()
	amqpURL, cleanup := setupRabbitMQContainer(t, ctx)
	defer cleanup()

	cfg := &config.Config{
		RabbitMQURL:       amqpURL,
		RabbitExchange:    "frontdesk.events",
		RabbitConsumerTag: "frontdesk-dispatcher",
	}
	channel := NewChannel(cfg, zap.NewNop())

	sub, err := channel.Open(ctx, "res-1", "notifications")
	require.NoError(t, err)
	require.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.Events():
		require.False(t, ok, "events channel must close with the subscription")
	case <-time.After(5 * time.Second):
		t.Fatal("events channel did not close")
	}
	require.NoError(t, sub.Err())
}
