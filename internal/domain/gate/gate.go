package gate

import (
	"github.com/cahamo/gate-alarm/internal/clock"
	"github.com/cahamo/gate-alarm/internal/keypad"
)

// State is the position of the gate as tracked by the controller.
// The sensor only ever signals "opened"; the controller returns to Closed
// solely on an explicit reset, acknowledging the gate was physically shut.
type State uint8

const (
	// Closed is the reset/initial position.
	Closed State = iota
	// Open means the sensor reported the gate opening since the last reset.
	Open
)

// String returns a human-readable gate position for logs.
func (s State) String() string {
	if s == Open {
		return "open"
	}

	return "closed"
}

// AlarmState tells whether the buzzer cycle is running.
// Sounding is only reachable while the gate is Open and no suspension is
// active.
type AlarmState uint8

const (
	// Silent means the buzzer is stopped.
	Silent AlarmState = iota
	// Sounding means the buzzer duty cycle is running.
	Sounding
)

// String returns a human-readable alarm status for logs.
func (s AlarmState) String() string {
	if s == Sounding {
		return "sounding"
	}

	return "silent"
}

// SuspendMode is the discriminant of the suspension variant. Exactly one
// mode holds at a time.
type SuspendMode uint8

const (
	// SuspendOff means the alarm is armed normally.
	SuspendOff SuspendMode = iota
	// SuspendTimed means the alarm is paused for a fixed duration.
	SuspendTimed
	// SuspendIndefinite means the alarm is paused until cancelled; it never
	// expires on its own.
	SuspendIndefinite
)

// String returns a human-readable suspension mode for logs.
func (m SuspendMode) String() string {
	switch m {
	case SuspendTimed:
		return "timed"
	case SuspendIndefinite:
		return "indefinite"
	default:
		return "off"
	}
}

// EventKind discriminates the inputs the core consumes.
type EventKind uint8

const (
	// EventGateOpened is a debounced gate-sensor edge.
	EventGateOpened EventKind = iota
	// EventKey is a classified keypad press.
	EventKey
)

// Event is one discrete input, queued by a collaborator and drained at the
// start of a poll cycle.
type Event struct {
	// Kind selects which input this is.
	Kind EventKind
	// Key carries the press, valid only when Kind is EventKey.
	Key keypad.Key
}

// Snapshot is the read-only view of the combined state handed to the
// display renderer each cycle.
type Snapshot struct {
	// Splash is true while the startup welcome screen should show.
	Splash bool
	// Entering is true while the user is typing a suspension duration.
	Entering bool
	// EntryValue is the accumulated duration in minutes, valid while Entering.
	EntryValue uint32
	// Suspend is the current suspension mode.
	Suspend SuspendMode
	// Remaining is the time left on a timed suspension, clamped to zero.
	Remaining clock.Millis
	// GateOpen is true when the gate position is Open.
	GateOpen bool
}
