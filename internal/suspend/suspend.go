package suspend

import (
	"github.com/cahamo/gate-alarm/internal/clock"
	"github.com/cahamo/gate-alarm/internal/domain/gate"
)

// MaxMinutes caps the digit accumulator. Further digits saturate rather than
// overflow. The cap keeps the longest timed suspension (~6e8 ms) far below
// the counter wraparound period and the entered value within the 16-column
// display.
const MaxMinutes = 9999

// millisPerMinute converts an entered minute count to a counter interval.
const millisPerMinute = clock.Millis(60_000)

// Change reports the suspension transition a commit or expiry caused, so the
// controller can apply the alarm side effects in order.
type Change uint8

const (
	// ChangeNone means the suspension mode did not move.
	ChangeNone Change = iota
	// ChangeActivated means a suspension just became active; a sounding
	// alarm must be silenced.
	ChangeActivated
	// ChangeDeactivated means suspension just turned off; the alarm must be
	// re-armed if the gate is open.
	ChangeDeactivated
)

// Manager owns the suspension window and the digit-entry accumulator.
// All methods are called from the single poll goroutine.
type Manager struct {
	// mode is the active suspension variant.
	mode gate.SuspendMode
	// duration is the window length, valid while mode is SuspendTimed.
	duration clock.Millis
	// start is the reading the window began at, valid while mode is SuspendTimed.
	start clock.Millis
	// entering is true while digits are being accumulated.
	entering bool
	// value is the accumulated minute count, valid while entering.
	value uint32
}

// NewManager returns a manager with suspension off and digit entry idle.
func NewManager() *Manager {
	return &Manager{}
}

// Mode returns the active suspension variant.
func (m *Manager) Mode() gate.SuspendMode {
	return m.mode
}

// Suspended reports whether any suspension is active.
func (m *Manager) Suspended() bool {
	return m.mode != gate.SuspendOff
}

// Entering returns the accumulated minute value and whether digit entry is
// in progress.
func (m *Manager) Entering() (uint32, bool) {
	return m.value, m.entering
}

// Digit feeds one decimal digit into the accumulator, starting a fresh entry
// if none is in progress. The value saturates at MaxMinutes.
func (m *Manager) Digit(d int) {
	if !m.entering {
		m.entering = true
		m.value = uint32(d)

		return
	}

	m.value = m.value*10 + uint32(d)
	if m.value > MaxMinutes {
		m.value = MaxMinutes
	}
}

// Commit applies the hash key. With digits entered, a zero value cancels any
// suspension and a positive value starts a timed window of that many
// minutes. With no digits entered, suspension becomes indefinite. Digit
// entry returns to idle either way.
func (m *Manager) Commit(now clock.Millis) Change {
	if !m.entering {
		m.mode = gate.SuspendIndefinite
		m.duration = 0
		m.start = 0

		return ChangeActivated
	}

	value := m.value
	m.entering = false
	m.value = 0

	if value == 0 {
		m.mode = gate.SuspendOff
		m.duration = 0
		m.start = 0

		return ChangeDeactivated
	}

	m.mode = gate.SuspendTimed
	m.duration = clock.Millis(value) * millisPerMinute
	m.start = now

	return ChangeActivated
}

// Clear unconditionally turns suspension off and discards any digit entry.
// Used by the reset key.
func (m *Manager) Clear() {
	m.mode = gate.SuspendOff
	m.duration = 0
	m.start = 0
	m.entering = false
	m.value = 0
}

// Expire checks a timed window against the clock and reports whether it just
// ran out. Runs after input processing so a commit in the same poll cycle
// takes precedence.
func (m *Manager) Expire(now clock.Millis) bool {
	if m.mode != gate.SuspendTimed {
		return false
	}

	if clock.Elapsed(now, m.start) <= m.duration {
		return false
	}

	m.mode = gate.SuspendOff
	m.duration = 0
	m.start = 0

	return true
}

// Remaining returns the time left on a timed window, clamped to zero.
// It is zero for the off and indefinite modes.
func (m *Manager) Remaining(now clock.Millis) clock.Millis {
	if m.mode != gate.SuspendTimed {
		return 0
	}

	elapsed := clock.Elapsed(now, m.start)
	if elapsed >= m.duration {
		return 0
	}

	return m.duration - elapsed
}
