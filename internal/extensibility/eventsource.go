package extensibility

import (
	"sync"
	"time"

	"github.com/comalice/fsmx/internal/primitives"
)

// EventSource yields events for a machine. The channel is closed when the source
// is exhausted.
type EventSource interface {
	Events() <-chan primitives.Event
}

// ChannelEventSource is an EventSource implementation backed by a Go channel.
// The producer closes the channel when it is done.
type ChannelEventSource struct {
	ch chan primitives.Event
}

// Events returns the receive-only channel for events.
func (s *ChannelEventSource) Events() <-chan primitives.Event {
	return s.ch
}

// NewChannelEventSource creates a new ChannelEventSource with the given channel.
// The channel should be buffered if backpressure handling is needed.
func NewChannelEventSource(ch chan primitives.Event) *ChannelEventSource {
	return &ChannelEventSource{ch: ch}
}

// TimerEventSource emits the same event every period using time.Ticker.
// Useful for timeout/heartbeat machines. Ticks are dropped while the buffer is full.
type TimerEventSource struct {
	ch     chan primitives.Event
	evt    primitives.Event
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

// NewTimerEventSource creates a TimerEventSource that emits evt every d.
func NewTimerEventSource(evt primitives.Event, d time.Duration) *TimerEventSource {
	t := &TimerEventSource{
		ch:     make(chan primitives.Event, 10),
		evt:    evt,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimerEventSource) run() {
	defer close(t.ch)
	defer t.ticker.Stop()
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- t.evt:
			default:
			}
		case <-t.stop:
			return
		}
	}
}

// Events returns the event channel.
func (t *TimerEventSource) Events() <-chan primitives.Event {
	return t.ch
}

// Stop stops the ticker and closes the channel. It is safe to call more than once.
func (t *TimerEventSource) Stop() {
	t.once.Do(func() { close(t.stop) })
}
