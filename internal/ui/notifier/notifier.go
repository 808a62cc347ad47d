// Package notifier routes values from HTTP handlers to long-lived SSE
// streams.
//
// Listeners subscribe to a topic (a browser tab id for shell events, or the
// empty topic for process-wide pings such as dev reloads). Send waits for
// buffer room until its context ends. Broadcast never blocks: a listener
// whose buffer is full misses the ping.
package notifier

import (
	"context"
	"sync"
)

// DefaultBuffer is the per-listener channel capacity.
const DefaultBuffer = 16

// Hub fans values out to the listeners of a topic.
type Hub[T any] struct {
	mu        sync.RWMutex
	buffer    int
	listeners map[string]map[chan T]struct{}
}

// New creates a hub with DefaultBuffer capacity per listener.
func New[T any]() *Hub[T] {
	return NewWithBuffer[T](DefaultBuffer)
}

// NewWithBuffer creates a hub whose listener channels hold size values.
func NewWithBuffer[T any](size int) *Hub[T] {
	if size < 1 {
		size = 1
	}
	return &Hub[T]{
		buffer:    size,
		listeners: make(map[string]map[chan T]struct{}),
	}
}

// Subscribe returns a channel receiving values published to topic.
// The caller must call Unsubscribe when done.
func (h *Hub[T]) Subscribe(topic string) chan T {
	ch := make(chan T, h.buffer)
	h.mu.Lock()
	set, ok := h.listeners[topic]
	if !ok {
		set = make(map[chan T]struct{})
		h.listeners[topic] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener and closes its channel. Unsubscribing twice
// is a no-op.
func (h *Hub[T]) Unsubscribe(topic string, ch chan T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.listeners[topic]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	if len(set) == 0 {
		delete(h.listeners, topic)
	}
	close(ch)
}

// Send delivers v to every listener of topic, waiting for buffer space until
// ctx is done. It reports how many listeners received v, and ctx's error when
// any of them did not.
func (h *Hub[T]) Send(ctx context.Context, topic string, v T) (int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	var err error
	for ch := range h.listeners[topic] {
		select {
		case ch <- v:
			delivered++
		case <-ctx.Done():
			err = ctx.Err()
		}
	}
	return delivered, err
}

// Broadcast sends v to every listener of every topic.
func (h *Hub[T]) Broadcast(v T) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, set := range h.listeners {
		for ch := range set {
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// Has reports whether topic has at least one listener.
func (h *Hub[T]) Has(topic string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners[topic]) > 0
}
