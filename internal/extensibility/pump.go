package extensibility

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/comalice/fsmx/internal/core"
	"github.com/comalice/fsmx/internal/primitives"
)

// Dispatcher is the machine side of a Pump. *core.SyncMachine satisfies it; a plain
// *core.Machine must not be pumped from more than one source.
type Dispatcher interface {
	Transit(evt primitives.Event) error
}

// Pump feeds events from independent sources into one machine.
type Pump struct {
	d      Dispatcher
	logger *zap.SugaredLogger

	dispatched atomic.Uint64
	rejected   atomic.Uint64
}

// NewPump creates a Pump for d. A nil logger discards output.
func NewPump(d Dispatcher, logger *zap.SugaredLogger) *Pump {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Pump{d: d, logger: logger}
}

// Run reads every source on its own goroutine and submits each event to the
// machine. Invalid events are logged and skipped. Run returns when all sources are
// closed, when ctx is cancelled, or on the first other dispatch error.
func (p *Pump) Run(ctx context.Context, sources ...EventSource) error {
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			return p.drain(ctx, i, src)
		})
	}
	return g.Wait()
}

func (p *Pump) drain(ctx context.Context, source int, src EventSource) error {
	events := src.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-events:
			if !ok {
				p.logger.Debugw("event source closed", "source", source)
				return nil
			}
			if err := p.d.Transit(evt); err != nil {
				if core.IsInvalidEvent(err) {
					p.rejected.Add(1)
					p.logger.Debugw("event skipped", "source", source, "error", err)
					continue
				}
				p.logger.Errorw("dispatch failed", "source", source, "error", err)
				return err
			}
			p.dispatched.Add(1)
		}
	}
}

// Dispatched returns how many events caused a transition.
func (p *Pump) Dispatched() uint64 { return p.dispatched.Load() }

// Rejected returns how many events were skipped as invalid.
func (p *Pump) Rejected() uint64 { return p.rejected.Load() }
