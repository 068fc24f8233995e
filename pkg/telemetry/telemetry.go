// Package telemetry fan-outs animation lifecycle events to any number of
// subscribers and exposes Prometheus counters for the engine's activity.
package telemetry

import (
	"sync"
	"time"
)

// EventType identifies the kind of telemetry event.
type EventType string

const (
	EventAnimationStarted   EventType = "animation.started"
	EventAnimationFrame     EventType = "animation.frame"
	EventAnimationCompleted EventType = "animation.completed"
	EventAnimationCanceled  EventType = "animation.canceled"
	EventSequenceStarted    EventType = "sequence.started"
	EventSequenceCompleted  EventType = "sequence.completed"
	EventCaretShown         EventType = "caret.shown"
	EventCaretHidden        EventType = "caret.hidden"
)

// Event describes engine activity that UIs and tests can consume.
type Event struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AnimationID string    `json:"animationId,omitempty"`
	Reveal      int       `json:"reveal,omitempty"`
	Total       int       `json:"total,omitempty"`
	Message     string    `json:"message,omitempty"`
}

// Hub fan-outs events to any number of subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	closed      bool
}

// NewHub constructs a telemetry hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan Event]struct{})}
}

// Publish notifies all subscribers of an event. Non-blocking; drops if a
// subscriber's buffer is full so a slow consumer never stalls the animation.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel that will receive future events and a cleanup func.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		empty := make(chan Event)
		close(empty)
		return empty, func() {}
	}
	ch := make(chan Event, 64)
	h.subscribers[ch] = struct{}{}
	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
	return ch, unsubscribe
}

// Close unsubscribes all listeners and prevents future publications.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}
