package access

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGate(t *testing.T) {
	g := NewGate([]string{"111", " 222 ", "", "abc"})
	require.Equal(t, 3, g.Size())
	require.True(t, g.Allowed(111))
	require.True(t, g.Allowed(222))
	require.False(t, g.Allowed(333))
	require.False(t, g.Allowed(0))

	// Repeated checks give the same answer.
	for i := 0; i < 3; i++ {
		require.True(t, g.Allowed(111))
	}
}

func TestGateZeroValue(t *testing.T) {
	var nilGate *Gate
	require.False(t, nilGate.Allowed(1))
	require.False(t, NewGate(nil).Allowed(1))
	require.Zero(t, nilGate.Size())
}
