package production

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/comalice/fsmx/internal/core"
)

// Notification is one transition or rejection forwarded by ChannelPublisher.
type Notification struct {
	MachineID  string
	SpecID     string
	Event      string
	From       string
	To         string
	Transition string
	Rejected   bool
	At         time.Time
}

// ChannelPublisher is a core.Observer that forwards notifications to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	mu      sync.RWMutex
	ch      chan<- Notification
	closed  bool
	dropped atomic.Uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- Notification) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Transitioned(rec core.TransitionRecord) {
	p.publish(Notification{
		MachineID:  rec.MachineID,
		SpecID:     rec.SpecID,
		Event:      rec.Event,
		From:       rec.From,
		To:         rec.To,
		Transition: rec.Transition,
		At:         rec.At,
	})
}

func (p *ChannelPublisher) Rejected(rec core.RejectionRecord) {
	p.publish(Notification{
		MachineID: rec.MachineID,
		SpecID:    rec.SpecID,
		Event:     rec.Event,
		From:      rec.State,
		To:        rec.State,
		Rejected:  true,
		At:        rec.At,
	})
}

func (p *ChannelPublisher) publish(n Notification) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.dropped.Add(1)
		return
	}
	select {
	case p.ch <- n:
	default:
		p.dropped.Add(1)
	}
}

// Dropped returns how many notifications were discarded.
func (p *ChannelPublisher) Dropped() uint64 { return p.dropped.Load() }

// Close closes the output channel. Later notifications are dropped.
func (p *ChannelPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	return nil
}
