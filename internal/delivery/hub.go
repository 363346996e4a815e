// Package delivery implements the boundary that receives fan-out
// notifications from the engine and pushes them to live client sessions.
//
// The Hub keeps a registry of open subscriptions per recipient, mirroring
// how the gateway tracks one subscription per streaming connection. Delivery
// is fire-and-forget: a recipient with no live subscription, or one whose
// buffer is full, simply misses the notification. The engine is never
// blocked or slowed by a delivery consumer.
package delivery

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vaibhav-y/chatter/internal/engine"
	"github.com/vaibhav-y/chatter/internal/metrics"
)

// DefaultBuffer is the per-subscription channel depth used when the
// configured buffer is zero or negative.
const DefaultBuffer = 64

// Hub routes engine notifications to subscribed sessions. It implements
// engine.Notifier.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int64]map[string]chan engine.Notification
	buffer int
}

// NewHub creates a hub whose subscriptions buffer up to buffer notifications.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[int64]map[string]chan engine.Notification),
		buffer: buffer,
	}
}

// Notify delivers n to every live subscription of the recipient. Sends are
// non-blocking; a full subscription buffer drops the notification for that
// subscription only.
func (h *Hub) Notify(n engine.Notification) {
	metrics.NotificationsEmitted.Inc()

	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := h.subs[n.Recipient]
	if len(conns) == 0 {
		metrics.NotificationsDropped.Inc()
		return
	}
	for _, ch := range conns {
		select {
		case ch <- n:
		default:
			metrics.NotificationsDropped.Inc()
		}
	}
}

// Subscribe registers a new subscription for userID and returns the channel
// it is served on plus a cancel func. Cancel is idempotent and closes the
// channel so a draining consumer terminates.
func (h *Hub) Subscribe(userID int64) (<-chan engine.Notification, func()) {
	ch := make(chan engine.Notification, h.buffer)
	connID := uuid.NewString()

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[string]chan engine.Notification)
	}
	h.subs[userID][connID] = ch
	h.mu.Unlock()
	metrics.StreamConnections.Inc()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], connID)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(ch)
			metrics.StreamConnections.Dec()
		})
	}
	return ch, cancel
}

// SubscriberCount returns the number of open subscriptions for userID.
func (h *Hub) SubscriberCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
