package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventSet(t *testing.T) {
	s, err := NewEventSet("A", "B", "C")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	b, ok := s.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, EventType(1), b)
	assert.Equal(t, "B", s.Name(b))
	assert.True(t, s.Contains(b))

	_, ok = s.Lookup("D")
	assert.False(t, ok)
	assert.False(t, s.Contains(EventType(3)))
	assert.False(t, s.Contains(EventType(-1)))
	assert.Equal(t, "", s.Name(EventType(7)))
	assert.Equal(t, []string{"A", "B", "C"}, s.Names())
}

func TestNewEventSetRejects(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{"empty name", []string{"A", ""}},
		{"blank name", []string{"  "}},
		{"reserved", []string{DefaultTrigger}},
		{"duplicate", []string{"A", "B", "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEventSet(tt.names...)
			require.ErrorIs(t, err, ErrSpecification)
			assert.True(t, IsKind(err, KindInvalidEvents))
		})
	}
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventType(2), 42)
	assert.Equal(t, EventType(2), e.Type)
	assert.Equal(t, 42, e.Payload)

	eCopy := e
	eCopy.Payload = "changed"
	assert.Equal(t, 42, e.Payload, "original payload was mutated")
}
