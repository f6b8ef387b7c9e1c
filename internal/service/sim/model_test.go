package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cahamo/gate-alarm/internal/display"
)

// TestCenterLine verifies frame lines are centered to the display width.
func TestCenterLine(t *testing.T) {
	t.Parallel()

	require.Equal(t, "       OK       ", centerLine("OK"))
	require.Equal(t, "   ** GATE **   ", centerLine("** GATE **"))
	require.Equal(t, "** Gate Alarm **", centerLine("** Gate Alarm **"))
	require.Equal(t, display.Width, len(centerLine("")))

	// Overlong lines are truncated, never widened.
	require.Equal(t, display.Width, len(centerLine("0123456789abcdefXYZ")))
}
