package delivery

import (
	"sync"

	"github.com/vaibhav-y/chatter/internal/engine"
)

// Recorder is an engine.Notifier that captures every emission in order.
// Intended for tests that assert on fan-out behavior.
type Recorder struct {
	mu   sync.Mutex
	sent []engine.Notification
}

// Notify records n.
func (r *Recorder) Notify(n engine.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

// Sent returns a copy of every recorded notification in emission order.
func (r *Recorder) Sent() []engine.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]engine.Notification(nil), r.sent...)
}

// Reset discards all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}
