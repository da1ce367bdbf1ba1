package extensibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx/internal/primitives"
)

func TestChannelEventSource(t *testing.T) {
	ch := make(chan primitives.Event, 1)
	s := NewChannelEventSource(ch)
	ch <- primitives.NewEvent(2, "x")

	got := <-s.Events()
	assert.Equal(t, primitives.EventType(2), got.Type)
	assert.Equal(t, "x", got.Payload)
}

func TestTimerEventSource(t *testing.T) {
	s := NewTimerEventSource(primitives.NewEvent(1, "data"), 20*time.Millisecond)
	defer s.Stop()

	for i := 0; i < 2; i++ {
		select {
		case ev := <-s.Events():
			assert.Equal(t, primitives.EventType(1), ev.Type)
			assert.Equal(t, "data", ev.Payload)
		case <-time.After(time.Second):
			t.Fatalf("no event %d received", i)
		}
	}
}

func TestTimerEventSource_Stop(t *testing.T) {
	s := NewTimerEventSource(primitives.NewEvent(0, nil), 5*time.Millisecond)
	s.Stop()
	s.Stop()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-s.Events():
			if !ok {
				return
			}
		case <-deadline:
			require.FailNow(t, "channel not closed after Stop")
		}
	}
}
