package production

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx/internal/core"
	"github.com/comalice/fsmx/internal/primitives"
)

func trafficSpec() primitives.Specification {
	return primitives.Specification{
		ID:      "traffic",
		Events:  []string{"TIMER", "EMERGENCY"},
		Initial: "green",
		States: []primitives.StateSpec{
			{Name: "green", Transitions: []primitives.TransitionSpec{{On: "TIMER", Target: "yellow"}}},
			{Name: "yellow", Transitions: []primitives.TransitionSpec{{On: "TIMER", Target: "red"}}},
			{Name: "red", Transitions: []primitives.TransitionSpec{{On: "TIMER", Target: "green"}}},
		},
	}
}

func TestChannelPublisher_Delivery(t *testing.T) {
	ch := make(chan Notification, 10)
	p := NewChannelPublisher(ch)

	m, err := core.New(trafficSpec(), nil, core.WithObserver(p))
	require.NoError(t, err)

	require.NoError(t, m.TransitName("TIMER", nil))
	require.Error(t, m.TransitName("EMERGENCY", nil))

	select {
	case got := <-ch:
		assert.Equal(t, m.ID(), got.MachineID)
		assert.Equal(t, "traffic", got.SpecID)
		assert.Equal(t, "green", got.From)
		assert.Equal(t, "yellow", got.To)
		assert.Equal(t, "green.TIMER", got.Transition)
		assert.False(t, got.Rejected)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no transition delivered")
	}

	got := <-ch
	assert.True(t, got.Rejected)
	assert.Equal(t, "EMERGENCY", got.Event)
	assert.Equal(t, "yellow", got.From)
	assert.Zero(t, p.Dropped())
}

func TestChannelPublisher_BackpressureDrop(t *testing.T) {
	ch := make(chan Notification, 1)
	p := NewChannelPublisher(ch)
	ch <- Notification{} // fill buffer

	m, err := core.New(trafficSpec(), nil, core.WithObserver(p))
	require.NoError(t, err)

	// Dispatch never blocks on a full channel.
	require.NoError(t, m.TransitName("TIMER", nil))
	require.NoError(t, m.TransitName("TIMER", nil))
	assert.Equal(t, uint64(2), p.Dropped())
	assert.Equal(t, "red", m.CurrentState().Name())
}

func TestChannelPublisher_Close(t *testing.T) {
	ch := make(chan Notification, 1)
	p := NewChannelPublisher(ch)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, open := <-ch
	assert.False(t, open)

	p.Transitioned(core.TransitionRecord{From: "a", To: "b"})
	assert.Equal(t, uint64(1), p.Dropped())
}
