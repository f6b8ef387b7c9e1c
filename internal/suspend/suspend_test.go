package suspend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cahamo/gate-alarm/internal/clock"
	"github.com/cahamo/gate-alarm/internal/domain/gate"
)

// TestCommitTimed verifies that entered digits commit to a timed window of
// the right length.
func TestCommitTimed(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.Digit(1)
	m.Digit(2)

	value, entering := m.Entering()
	require.True(t, entering)
	require.Equal(t, uint32(12), value)

	require.Equal(t, ChangeActivated, m.Commit(1000))
	require.Equal(t, gate.SuspendTimed, m.Mode())
	require.Equal(t, clock.Millis(12*60000), m.Remaining(1000))

	_, entering = m.Entering()
	require.False(t, entering)
}

// TestCommitZeroCancels verifies that committing a zero value turns
// suspension off.
func TestCommitZeroCancels(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.Digit(5)
	m.Commit(0)
	require.True(t, m.Suspended())

	m.Digit(0)
	require.Equal(t, ChangeDeactivated, m.Commit(100))
	require.Equal(t, gate.SuspendOff, m.Mode())
	require.False(t, m.Suspended())
}

// TestCommitWithoutDigits verifies the bare hash key starts an indefinite
// suspension that never expires.
func TestCommitWithoutDigits(t *testing.T) {
	t.Parallel()

	m := NewManager()
	require.Equal(t, ChangeActivated, m.Commit(500))
	require.Equal(t, gate.SuspendIndefinite, m.Mode())
	require.Equal(t, clock.Millis(0), m.Remaining(500))

	// Indefinite windows are immune to the expiry check.
	require.False(t, m.Expire(1 << 31))
	require.Equal(t, gate.SuspendIndefinite, m.Mode())
}

// TestDigitSaturation verifies the accumulator clamps at MaxMinutes instead
// of overflowing.
func TestDigitSaturation(t *testing.T) {
	t.Parallel()

	m := NewManager()
	for i := 0; i < 12; i++ {
		m.Digit(9)
	}

	value, entering := m.Entering()
	require.True(t, entering)
	require.Equal(t, uint32(MaxMinutes), value)
}

// TestExpire verifies the timed window runs out strictly after its duration.
func TestExpire(t *testing.T) {
	t.Parallel()

	const start = clock.Millis(1000)

	m := NewManager()
	m.Digit(1)
	m.Commit(start)

	require.False(t, m.Expire(start+60000))
	require.Equal(t, gate.SuspendTimed, m.Mode())
	require.Equal(t, clock.Millis(0), m.Remaining(start+60000))

	require.True(t, m.Expire(start+60001))
	require.Equal(t, gate.SuspendOff, m.Mode())

	// Only fires once.
	require.False(t, m.Expire(start+70000))
}

// TestClear verifies reset discards both the window and any digit entry.
func TestClear(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.Digit(4)
	m.Digit(2)
	m.Commit(0)
	m.Digit(7)

	m.Clear()

	require.Equal(t, gate.SuspendOff, m.Mode())

	value, entering := m.Entering()
	require.False(t, entering)
	require.Zero(t, value)
}
