// Package realtime manages live per-user push channels: the channel
// type carrying server-sent alarm events and the registry mapping each
// user to at most one open channel.
package realtime

import (
	"errors"
	"sync"
)

// ErrChannelClosed is returned by Send when the channel can no longer
// accept events: the stream was closed, or the consumer stopped
// draining and the buffer filled up.
var ErrChannelClosed = errors.New("realtime: channel closed")

const defaultBuffer = 8

// Event is one discrete message pushed over a channel.
type Event struct {
	ID   string
	Name string
	Data string
}

// Channel is a one-directional event stream bound to a single user.
// Producers call Send, the owning HTTP handler drains Events until
// Done is closed or its idle deadline fires.
type Channel struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewChannel creates a channel with the given pending-event buffer.
func NewChannel(buffer int) *Channel {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Channel{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// Send enqueues an event for delivery. It never blocks: a closed
// channel or a full buffer (a consumer that stopped reading) both
// report ErrChannelClosed so the caller can evict the connection.
func (ch *Channel) Send(ev Event) error {
	select {
	case <-ch.done:
		return ErrChannelClosed
	default:
	}
	select {
	case ch.events <- ev:
		return nil
	case <-ch.done:
		return ErrChannelClosed
	default:
		return ErrChannelClosed
	}
}

// Events returns the stream of pending events.
func (ch *Channel) Events() <-chan Event {
	return ch.events
}

// Done is closed when the channel is closed.
func (ch *Channel) Done() <-chan struct{} {
	return ch.done
}

// Close marks the channel closed. Safe to call more than once and
// from multiple goroutines.
func (ch *Channel) Close() {
	ch.closeOnce.Do(func() { close(ch.done) })
}
