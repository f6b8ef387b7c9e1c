package display

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cahamo/gate-alarm/internal/clock"
	"github.com/cahamo/gate-alarm/internal/domain/gate"
)

// TestRenderPriorities verifies the frame chosen for each state, highest
// priority first.
func TestRenderPriorities(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		snap gate.Snapshot
		want Frame
	}{
		{
			name: "splash wins over everything",
			snap: gate.Snapshot{Splash: true, Entering: true, GateOpen: true},
			want: Frame{Line1: "** Gate Alarm **", Line2: "**   Welcome  **"},
		},
		{
			name: "digit entry",
			snap: gate.Snapshot{Entering: true, EntryValue: 42, GateOpen: true},
			want: Frame{Line1: "Enter delay:", Line2: "42"},
		},
		{
			name: "indefinite suspension",
			snap: gate.Snapshot{Suspend: gate.SuspendIndefinite, GateOpen: true},
			want: Frame{Line1: "Alarm", Line2: "Suspended"},
		},
		{
			name: "timed suspension",
			snap: gate.Snapshot{Suspend: gate.SuspendTimed, Remaining: 65000, GateOpen: true},
			want: Frame{Line1: "Alarm paused for", Line2: "1:05"},
		},
		{
			name: "gate open",
			snap: gate.Snapshot{GateOpen: true},
			want: Frame{Line1: "** GATE **", Line2: "** OPEN **"},
		},
		{
			name: "all quiet",
			snap: gate.Snapshot{},
			want: Frame{Line1: "OK", Line2: ""},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Render(tc.snap))
		})
	}
}

// TestFormatRemaining verifies M:SS formatting with zero-padded seconds.
func TestFormatRemaining(t *testing.T) {
	t.Parallel()

	cases := map[clock.Millis]string{
		0:      "0:00",
		999:    "0:00",
		1000:   "0:01",
		59999:  "0:59",
		60000:  "1:00",
		720000: "12:00",
		754321: "12:34",
	}
	for ms, want := range cases {
		require.Equal(t, want, formatRemaining(ms), "remaining %d", ms)
	}
}

// TestUpdateCadenceAndCache verifies frames are recomputed on the refresh
// cadence and identical frames are suppressed.
func TestUpdateCadenceAndCache(t *testing.T) {
	t.Parallel()

	r := NewRenderer(250, 10000, 0)

	frame, changed := r.Update(0, gate.Snapshot{})
	require.True(t, changed)
	require.Equal(t, "OK", frame.Line1)

	// Within the cadence window nothing is recomputed, even if state moved.
	_, changed = r.Update(200, gate.Snapshot{GateOpen: true})
	require.False(t, changed)

	// Past the cadence the new state renders.
	frame, changed = r.Update(251, gate.Snapshot{GateOpen: true})
	require.True(t, changed)
	require.Equal(t, "** GATE **", frame.Line1)

	// Unchanged state past the cadence is suppressed by the frame cache.
	_, changed = r.Update(600, gate.Snapshot{GateOpen: true})
	require.False(t, changed)
}

// TestBacklightRules verifies the auto-off conditions and re-activation on
// frame changes.
func TestBacklightRules(t *testing.T) {
	t.Parallel()

	quiet := gate.Snapshot{}

	r := NewRenderer(250, 10000, 0)
	require.True(t, r.Backlight())

	// Still within the timeout.
	require.True(t, r.EvaluateBacklight(9999, quiet))

	// Timeout elapsed, gate closed, nothing running: off.
	require.False(t, r.EvaluateBacklight(10000, quiet))
	require.False(t, r.Backlight())

	// A frame change re-lights it.
	_, changed := r.Update(20000, gate.Snapshot{GateOpen: true})
	require.True(t, changed)
	require.True(t, r.Backlight())

	// Never off while the gate is open.
	require.True(t, r.EvaluateBacklight(40000, gate.Snapshot{GateOpen: true}))

	// Never off during a timed countdown or digit entry.
	r.PokeBacklight(50000)
	require.True(t, r.EvaluateBacklight(70000, gate.Snapshot{Suspend: gate.SuspendTimed}))
	require.True(t, r.EvaluateBacklight(70000, gate.Snapshot{Entering: true}))

	// Indefinite suspension does not keep it on.
	require.False(t, r.EvaluateBacklight(70000, gate.Snapshot{Suspend: gate.SuspendIndefinite}))
}
