package e2e

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"frontdesk/internal/http/dto"
	"frontdesk/internal/model"
)

// The producer surface: an external trigger posts an event, the record is
// persisted and the insert is pushed to the recipient's open session.
func TestPublishEventFlow(t *testing.T) {
	s := newStack(t)

	response := postJSON(t, s.server.URL+"/sessions/res-1", nil)
	require.Equal(t, http.StatusCreated, response.StatusCode)
	_ = response.Body.Close()

	response = postJSON(t, s.server.URL+"/events", map[string]string{
		"recipient_id": "res-1",
		"type":         "package",
		"title":        "package at the desk",
		"message":      "pick it up",
		"related_id":   "pkg-42",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	created := decodeBody[model.Notification](t, response)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "pkg-42", created.RelatedID)

	require.Eventually(t, func() bool {
		list := getList(t, s, "res-1")
		return len(list.Items) == 1 && list.Items[0].ID == created.ID && list.Unread == 1
	}, 2*time.Second, 20*time.Millisecond)

	stored, err := s.store.ListNotifications(context.Background(), "res-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestPublishEventValidation(t *testing.T) {
	s := newStack(t)

	t.Run("missing fields", func(t *testing.T) {
		response := postJSON(t, s.server.URL+"/events", map[string]string{
			"recipient_id": "res-1",
			"type":         "package",
		})
		require.Equal(t, http.StatusBadRequest, response.StatusCode)
		body := decodeBody[dto.ErrorResponse](t, response)
		require.Equal(t, "bad_request", body.Code)
	})

	t.Run("unknown type", func(t *testing.T) {
		response := postJSON(t, s.server.URL+"/events", map[string]string{
			"recipient_id": "res-1",
			"type":         "parcel",
			"title":        "t",
			"message":      "m",
		})
		require.Equal(t, http.StatusBadRequest, response.StatusCode)
		_ = response.Body.Close()
	})
}

// Events published while nobody is signed in are not lost: the store has them
// and the next login's initial resync surfaces them.
func TestPublishBeforeLogin(t *testing.T) {
	s := newStack(t)

	response := postJSON(t, s.server.URL+"/events", map[string]string{
		"recipient_id": "res-1",
		"type":         "notice",
		"title":        "garage cleaning",
		"message":      "move your car",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	_ = response.Body.Close()

	response = postJSON(t, s.server.URL+"/sessions/res-1", nil)
	require.Equal(t, http.StatusCreated, response.StatusCode)
	_ = response.Body.Close()

	list := getList(t, s, "res-1")
	require.Len(t, list.Items, 1)
	require.Equal(t, "garage cleaning", list.Items[0].Title)
	require.Equal(t, 1, list.Unread)
}
