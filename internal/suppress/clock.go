package suppress

import "time"

// SetClock replaces the window's time source. Test hook.
func (w *Window) SetClock(now func() time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.now = now
}
