package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cahamo/gate-alarm/internal/clock"
	"github.com/cahamo/gate-alarm/internal/config"
	"github.com/cahamo/gate-alarm/internal/display"
	"github.com/cahamo/gate-alarm/internal/domain/gate"
	"github.com/cahamo/gate-alarm/internal/keypad"
)

// newTestController builds a controller with default timings and the splash
// screen disabled, so display assertions see the live state immediately.
func newTestController(now clock.Millis) *Controller {
	cfg := config.Default()
	cfg.SplashTime = 0

	return New(cfg, now)
}

// openGate queues a debounced sensor edge.
func openGate(t *testing.T, c *Controller) {
	t.Helper()
	require.True(t, c.Enqueue(gate.Event{Kind: gate.EventGateOpened}))
}

// press queues one keypad character.
func press(t *testing.T, c *Controller, r rune) {
	t.Helper()

	key := keypad.Parse(r)
	require.NotEqual(t, keypad.KindInvalid, key.Kind)
	require.True(t, c.Enqueue(gate.Event{Kind: gate.EventKey, Key: key}))
}

// requireInvariant asserts the core safety property: the alarm only sounds
// while the gate is open and no suspension is active.
func requireInvariant(t *testing.T, c *Controller) {
	t.Helper()

	if c.Alarm() == gate.Sounding {
		require.Equal(t, gate.Open, c.Gate())
		require.Equal(t, gate.SuspendOff, c.Suspension())
	}
}

// TestGateOpenSoundsAlarm covers the opening scenario: sensor edge at T=0
// arms the alarm, starts both pulse cycles and renders the warning frame.
func TestGateOpenSoundsAlarm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestController(0)

	openGate(t, c)
	out := c.Poll(ctx, 0)

	require.Equal(t, gate.Open, c.Gate())
	require.Equal(t, gate.Sounding, c.Alarm())
	require.True(t, out.Buzzer)
	require.True(t, out.AlarmLED)
	require.Equal(t, display.Frame{Line1: "** GATE **", Line2: "** OPEN **"}, out.Frame)
	require.True(t, out.Backlight)
	requireInvariant(t, c)
}

// TestGateOpenIdempotent verifies a repeated sensor edge changes nothing.
func TestGateOpenIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	c := newTestController(0)
	openGate(t, c)
	first := c.Poll(ctx, 0)

	openGate(t, c)
	second := c.Poll(ctx, 0)

	require.Equal(t, first.Buzzer, second.Buzzer)
	require.Equal(t, first.AlarmLED, second.AlarmLED)
	require.Equal(t, first.Frame, second.Frame)
	require.Equal(t, gate.Open, c.Gate())
	require.Equal(t, gate.Sounding, c.Alarm())
}

// TestStarResets covers the reset scenario: star at T=500 closes the gate,
// silences everything and returns the display to the idle frame.
func TestStarResets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestController(0)

	openGate(t, c)
	c.Poll(ctx, 0)

	press(t, c, '*')
	out := c.Poll(ctx, 500)

	require.Equal(t, gate.Closed, c.Gate())
	require.Equal(t, gate.Silent, c.Alarm())
	require.Equal(t, gate.SuspendOff, c.Suspension())
	require.False(t, out.Buzzer)
	require.False(t, out.AlarmLED)
	require.Equal(t, display.Frame{Line1: "OK", Line2: ""}, out.Frame)
	requireInvariant(t, c)
}

// TestTimedSuspensionSilences verifies entering "12#" while the alarm sounds
// silences it, shows the countdown and forces the heartbeat on.
func TestTimedSuspensionSilences(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestController(0)

	openGate(t, c)
	c.Poll(ctx, 0)

	press(t, c, '1')
	press(t, c, '2')
	out := c.Poll(ctx, 300)

	// Digit entry takes over the display.
	require.Equal(t, display.Frame{Line1: "Enter delay:", Line2: "12"}, out.Frame)
	require.Equal(t, gate.Sounding, c.Alarm())

	press(t, c, '#')
	out = c.Poll(ctx, 600)

	require.Equal(t, gate.SuspendTimed, c.Suspension())
	require.Equal(t, gate.Silent, c.Alarm())
	require.False(t, out.Buzzer)
	// Indicator keeps flashing while the gate is open, suspended or not.
	require.True(t, out.AlarmLED)
	// Heartbeat is forced continuously on while suspended.
	require.True(t, out.HeartbeatLED)
	require.Equal(t, display.Frame{Line1: "Alarm paused for", Line2: "12:00"}, out.Frame)
	requireInvariant(t, c)
}

// TestSuspensionExpiryRearms verifies a timed window of one minute expires
// at T+60001 and the alarm resumes on the same poll.
func TestSuspensionExpiryRearms(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestController(0)

	openGate(t, c)
	press(t, c, '1')
	press(t, c, '#')
	c.Poll(ctx, 0)

	require.Equal(t, gate.SuspendTimed, c.Suspension())
	require.Equal(t, gate.Silent, c.Alarm())

	out := c.Poll(ctx, 60000)
	require.Equal(t, gate.SuspendTimed, c.Suspension())
	require.False(t, out.Buzzer)

	out = c.Poll(ctx, 60001)
	require.Equal(t, gate.SuspendOff, c.Suspension())
	require.Equal(t, gate.Sounding, c.Alarm())
	require.True(t, out.Buzzer)
	requireInvariant(t, c)
}

// TestCommitPrecedesExpiry verifies a fresh commit in the same poll tick as
// the old window's expiry wins; no alarm fires.
func TestCommitPrecedesExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestController(0)

	openGate(t, c)
	press(t, c, '1')
	press(t, c, '#')
	c.Poll(ctx, 0)

	// The old window would expire at 60001, but a new one is committed in
	// the same cycle.
	press(t, c, '2')
	press(t, c, '#')
	c.Poll(ctx, 60001)

	require.Equal(t, gate.SuspendTimed, c.Suspension())
	require.Equal(t, gate.Silent, c.Alarm())
	requireInvariant(t, c)
}

// TestIndefiniteSuspension verifies the bare hash key: no expiry ever, the
// suspension frame shows, and a later gate opening stays silent.
func TestIndefiniteSuspension(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestController(0)

	press(t, c, '#')
	out := c.Poll(ctx, 0)

	require.Equal(t, gate.SuspendIndefinite, c.Suspension())
	require.Equal(t, display.Frame{Line1: "Alarm", Line2: "Suspended"}, out.Frame)
	require.True(t, out.HeartbeatLED)

	openGate(t, c)
	out = c.Poll(ctx, 100_000_000)

	require.Equal(t, gate.Open, c.Gate())
	require.Equal(t, gate.Silent, c.Alarm())
	require.False(t, out.Buzzer)
	require.True(t, out.AlarmLED)

	// Cancelling with "0#" re-arms the alarm while the gate is open.
	press(t, c, '0')
	press(t, c, '#')
	c.Poll(ctx, 100_000_500)

	require.Equal(t, gate.SuspendOff, c.Suspension())
	require.Equal(t, gate.Sounding, c.Alarm())
	requireInvariant(t, c)
}

// TestInvariantAcrossScript runs a longer event script and checks the safety
// invariant after every poll.
func TestInvariantAcrossScript(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestController(0)

	script := []struct {
		now  clock.Millis
		keys string
		open bool
	}{
		{now: 10, open: true},
		{now: 500, keys: "5#"},
		{now: 1000, open: true},
		{now: 2000, keys: "*"},
		{now: 3000, keys: "#"},
		{now: 4000, open: true},
		{now: 5000, keys: "0#"},
		{now: 6000, keys: "9x9#"},
		{now: 7000, keys: "*"},
	}

	for _, step := range script {
		if step.open {
			openGate(t, c)
		}

		for _, r := range step.keys {
			key := keypad.Parse(r)
			require.True(t, c.Enqueue(gate.Event{Kind: gate.EventKey, Key: key}))
		}

		c.Poll(ctx, step.now)
		requireInvariant(t, c)
	}

	require.Equal(t, gate.Closed, c.Gate())
	require.Equal(t, gate.Silent, c.Alarm())
	require.Equal(t, gate.SuspendOff, c.Suspension())
}

// TestSplashWindow verifies the welcome screen shows until the configured
// splash time elapses.
func TestSplashWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(config.Default(), 0)

	out := c.Poll(ctx, 0)
	require.Equal(t, display.Frame{Line1: "** Gate Alarm **", Line2: "**   Welcome  **"}, out.Frame)

	out = c.Poll(ctx, 2500)
	require.Equal(t, display.Frame{Line1: "OK", Line2: ""}, out.Frame)
}

// TestEnqueueBounded verifies the inbox drops events instead of blocking.
func TestEnqueueBounded(t *testing.T) {
	t.Parallel()

	c := newTestController(0)

	for i := 0; i < inboxCapacity; i++ {
		require.True(t, c.Enqueue(gate.Event{Kind: gate.EventGateOpened}))
	}

	require.False(t, c.Enqueue(gate.Event{Kind: gate.EventGateOpened}))
}
