package display

import (
	"fmt"
	"strconv"

	"github.com/cahamo/gate-alarm/internal/clock"
	"github.com/cahamo/gate-alarm/internal/domain/gate"
)

const (
	// Width is the character width of the target display.
	Width = 16
	// Lines is the number of text lines on the target display.
	Lines = 2
)

// Frame is one rendered display state. Lines are at most Width characters;
// centering and padding belong to the display collaborator.
type Frame struct {
	// Line1 is the top line of text.
	Line1 string
	// Line2 is the bottom line of text.
	Line2 string
}

// Renderer maps the combined core state to display frames on a fixed
// cadence, suppresses redundant frames, and owns the backlight activity
// timer.
type Renderer struct {
	// refresh is the minimum interval between re-renders.
	refresh clock.Millis
	// backlightTimeout is how long the backlight stays on after activity.
	backlightTimeout clock.Millis
	// lastRender is when the frame was last recomputed.
	lastRender clock.Millis
	// frame is the last rendered frame, kept to suppress redundant writes.
	frame Frame
	// rendered is false until the first frame exists.
	rendered bool
	// backlightOn is the current backlight directive.
	backlightOn bool
	// backlightStart is when the backlight was last activated.
	backlightStart clock.Millis
}

// NewRenderer returns a renderer with the backlight on, as at power-up.
func NewRenderer(refresh, backlightTimeout, now clock.Millis) *Renderer {
	return &Renderer{
		refresh:          refresh,
		backlightTimeout: backlightTimeout,
		backlightOn:      true,
		backlightStart:   now,
	}
}

// Update re-renders the frame when the refresh cadence has elapsed. It
// returns the current frame and whether it changed this call. A changed
// frame counts as activity and re-lights the backlight.
func (r *Renderer) Update(now clock.Millis, snap gate.Snapshot) (Frame, bool) {
	if r.rendered && clock.Elapsed(now, r.lastRender) <= r.refresh {
		return r.frame, false
	}

	r.lastRender = now

	next := Render(snap)
	if r.rendered && next == r.frame {
		return r.frame, false
	}

	r.frame = next
	r.rendered = true
	r.PokeBacklight(now)

	return r.frame, true
}

// PokeBacklight switches the backlight on and restarts its activity timer.
func (r *Renderer) PokeBacklight(now clock.Millis) {
	r.backlightOn = true
	r.backlightStart = now
}

// EvaluateBacklight applies the auto-off rule and returns the backlight
// directive. The backlight only switches off once the activity timer has
// elapsed while the gate is closed, no timed countdown is running, and no
// digits are being entered.
func (r *Renderer) EvaluateBacklight(now clock.Millis, snap gate.Snapshot) bool {
	if !r.backlightOn {
		return false
	}

	if clock.Elapsed(now, r.backlightStart) >= r.backlightTimeout &&
		!snap.GateOpen &&
		snap.Suspend != gate.SuspendTimed &&
		!snap.Entering {
		r.backlightOn = false
	}

	return r.backlightOn
}

// Backlight returns the current backlight directive without re-evaluation.
func (r *Renderer) Backlight() bool {
	return r.backlightOn
}

// Render is the pure mapping from a state snapshot to a frame. Priorities,
// highest first: splash screen, digit entry, indefinite suspension, timed
// countdown, open gate, all quiet.
func Render(snap gate.Snapshot) Frame {
	switch {
	case snap.Splash:
		return Frame{Line1: "** Gate Alarm **", Line2: "**   Welcome  **"}
	case snap.Entering:
		return Frame{Line1: "Enter delay:", Line2: strconv.FormatUint(uint64(snap.EntryValue), 10)}
	case snap.Suspend == gate.SuspendIndefinite:
		return Frame{Line1: "Alarm", Line2: "Suspended"}
	case snap.Suspend == gate.SuspendTimed:
		return Frame{Line1: "Alarm paused for", Line2: formatRemaining(snap.Remaining)}
	case snap.GateOpen:
		return Frame{Line1: "** GATE **", Line2: "** OPEN **"}
	default:
		return Frame{Line1: "OK", Line2: ""}
	}
}

// formatRemaining renders a countdown as M:SS with seconds zero-padded.
func formatRemaining(ms clock.Millis) string {
	totalSeconds := ms / 1000

	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}
