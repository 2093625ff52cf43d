// SPDX-License-Identifier: MIT

package session

import (
	"sync"
	"sync/atomic"
)

// Hub fans redraw events out to subscribers in subscription order.
type Hub struct {
	mu   sync.Mutex
	subs []*Subscription
}

// NewHub returns a hub without subscribers.
func NewHub() *Hub { return &Hub{} }

// Subscription is a registered redraw callback.
type Subscription struct {
	hub    *Hub
	fn     func()
	closed atomic.Bool
	once   sync.Once
}

// Subscribe registers fn to run on every Redraw until the subscription is
// closed.
func (h *Hub) Subscribe(fn func()) *Subscription {
	sub := &Subscription{hub: h, fn: fn}
	h.mu.Lock()
	h.subs = append(h.subs, sub)
	h.mu.Unlock()

	return sub
}

// Close revokes the subscription. Closing twice is a no-op.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.closed.Store(true)
		h := s.hub
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, x := range h.subs {
			if x == s {
				h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
				break
			}
		}
	})
}

// Closed reports whether Close has been called.
func (s *Subscription) Closed() bool { return s.closed.Load() }

// Len returns the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs)
}

// Redraw calls every live subscriber synchronously. A subscription closed
// during the fan-out is not called afterwards.
func (h *Hub) Redraw() {
	h.mu.Lock()
	subs := append([]*Subscription(nil), h.subs...)
	h.mu.Unlock()

	for _, s := range subs {
		if s.closed.Load() {
			continue
		}
		s.fn()
	}
}
