package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"frontdesk/internal/domain"
	"frontdesk/internal/model"
)

func TestNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("list is newest first and per recipient", func(t *testing.T) {
		store := New(zap.NewNop())
		first, err := store.CreateNotification(ctx, model.Notification{RecipientID: "res-1", Title: "first"})
		require.NoError(t, err)
		require.NotEmpty(t, first.ID)
		require.False(t, first.CreatedAt.IsZero())

		second, err := store.CreateNotification(ctx, model.Notification{RecipientID: "res-1", Title: "second"})
		require.NoError(t, err)
		_, err = store.CreateNotification(ctx, model.Notification{RecipientID: "res-2", Title: "other"})
		require.NoError(t, err)

		list, err := store.ListNotifications(ctx, "res-1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, second.ID, list[0].ID)
		require.Equal(t, first.ID, list[1].ID)
	})

	t.Run("delete and mark read are idempotent", func(t *testing.T) {
		store := New(zap.NewNop())
		created, err := store.CreateNotification(ctx, model.Notification{RecipientID: "res-1"})
		require.NoError(t, err)

		require.NoError(t, store.MarkRead(ctx, created.ID))
		require.NoError(t, store.MarkRead(ctx, created.ID))
		require.NoError(t, store.MarkRead(ctx, "ghost"))

		require.NoError(t, store.DeleteNotification(ctx, created.ID))
		require.NoError(t, store.DeleteNotification(ctx, created.ID))

		list, err := store.ListNotifications(ctx, "res-1")
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("mark all read scoped to recipient", func(t *testing.T) {
		store := New(zap.NewNop())
		_, err := store.CreateNotification(ctx, model.Notification{RecipientID: "res-1"})
		require.NoError(t, err)
		_, err = store.CreateNotification(ctx, model.Notification{RecipientID: "res-1"})
		require.NoError(t, err)
		other, err := store.CreateNotification(ctx, model.Notification{RecipientID: "res-2"})
		require.NoError(t, err)

		require.NoError(t, store.MarkAllRead(ctx, "res-1"))

		list, err := store.ListNotifications(ctx, "res-1")
		require.NoError(t, err)
		for _, n := range list {
			require.True(t, n.Read)
		}
		untouched, err := store.ListNotifications(ctx, "res-2")
		require.NoError(t, err)
		require.Equal(t, other.ID, untouched[0].ID)
		require.False(t, untouched[0].Read)
	})
}

func TestChat(t *testing.T) {
	ctx := context.Background()
	store := New(zap.NewNop())

	sent, err := store.AppendMessage(ctx, "res-1", model.ChatMessage{SenderRole: domain.SenderRoleResident, Text: "hello"})
	require.NoError(t, err)
	require.NotEmpty(t, sent.ID)
	require.False(t, sent.Timestamp.IsZero())

	_, err = store.AppendMessage(ctx, "res-2", model.ChatMessage{SenderRole: domain.SenderRoleStaff, Text: "elsewhere"})
	require.NoError(t, err)

	messages, err := store.ListMessages(ctx, "res-1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, "hello", messages[0].Text)
}

func TestReservations(t *testing.T) {
	ctx := context.Background()

	t.Run("create and filter by area and date", func(t *testing.T) {
		store := New(zap.NewNop())
		created, err := store.CreateReservation(ctx, model.Reservation{
			ResidentID: "res-1", AreaID: "gym", Date: "2024-06-01",
			StartTime: "10:00", EndTime: "11:00", Status: domain.ReservationStatusScheduled,
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		_, err = store.CreateReservation(ctx, model.Reservation{
			ResidentID: "res-2", AreaID: "pool", Date: "2024-06-01",
			StartTime: "10:00", EndTime: "11:00", Status: domain.ReservationStatusScheduled,
		})
		require.NoError(t, err)

		filtered, err := store.ListReservationsForAreaDate(ctx, "gym", "2024-06-01")
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		require.Equal(t, created.ID, filtered[0].ID)

		all, err := store.ListReservations(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("status updates persist", func(t *testing.T) {
		store := New(zap.NewNop())
		created, err := store.CreateReservation(ctx, model.Reservation{
			ResidentID: "res-1", AreaID: "gym", Date: "2024-06-01",
			StartTime: "10:00", EndTime: "11:00", Status: domain.ReservationStatusScheduled,
		})
		require.NoError(t, err)

		require.NoError(t, store.UpdateReservationStatus(ctx, created.ID, domain.ReservationStatusActive))
		got, err := store.GetReservation(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ReservationStatusActive, got.Status)
	})

	t.Run("missing ids", func(t *testing.T) {
		store := New(zap.NewNop())
		_, err := store.GetReservation(ctx, "ghost")
		require.ErrorIs(t, err, domain.ErrReservationNotFound)
		require.ErrorIs(t, store.UpdateReservationStatus(ctx, "ghost", domain.ReservationStatusActive), domain.ErrReservationNotFound)
	})
}
