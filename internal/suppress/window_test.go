package suppress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	newTestWindow := func(ttl time.Duration) (*Window, *time.Time) {
		now := base
		w := NewWindow(ttl)
		w.SetClock(func() time.Time { return now })
		return w, &now
	}

	t.Run("records and suppresses", func(t *testing.T) {
		w, _ := newTestWindow(5 * time.Second)
		w.Record("n-1")
		require.True(t, w.ShouldSuppress("n-1"))
		require.False(t, w.ShouldSuppress("n-2"))
	})

	t.Run("does not consume on check", func(t *testing.T) {
		w, _ := newTestWindow(5 * time.Second)
		w.Record("n-1")
		require.True(t, w.ShouldSuppress("n-1"))
		require.True(t, w.ShouldSuppress("n-1"))
		require.True(t, w.ShouldSuppress("n-1"))
	})

	t.Run("expires after the window", func(t *testing.T) {
		w, now := newTestWindow(5 * time.Second)
		w.Record("n-1")
		*now = base.Add(4 * time.Second)
		require.True(t, w.ShouldSuppress("n-1"))
		*now = base.Add(5 * time.Second)
		require.False(t, w.ShouldSuppress("n-1"))
	})

	t.Run("record refreshes expiry", func(t *testing.T) {
		w, now := newTestWindow(5 * time.Second)
		w.Record("n-1")
		*now = base.Add(4 * time.Second)
		w.Record("n-1")
		*now = base.Add(8 * time.Second)
		require.True(t, w.ShouldSuppress("n-1"))
		*now = base.Add(9 * time.Second)
		require.False(t, w.ShouldSuppress("n-1"))
	})

	t.Run("sweep evicts expired entries", func(t *testing.T) {
		w, now := newTestWindow(5 * time.Second)
		w.Record("n-1")
		w.Record("n-2")
		*now = base.Add(6 * time.Second)
		w.Record("n-3")
		w.mu.Lock()
		require.Len(t, w.entries, 1)
		w.mu.Unlock()
	})

	t.Run("independent instances never cross-suppress", func(t *testing.T) {
		deletes, _ := newTestWindow(5 * time.Second)
		reads, _ := newTestWindow(5 * time.Second)
		deletes.Record("n-1")
		require.True(t, deletes.ShouldSuppress("n-1"))
		require.False(t, reads.ShouldSuppress("n-1"))
	})

	t.Run("zero ttl falls back to default", func(t *testing.T) {
		w := NewWindow(0)
		require.Equal(t, DefaultTTL, w.ttl)
	})
}
