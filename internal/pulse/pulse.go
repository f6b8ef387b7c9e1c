package pulse

import "github.com/cahamo/gate-alarm/internal/clock"

// Timer describes one repeating on/off duty cycle applied to an output
// signal. The zero value is inactive: its output is forced low until Start
// is called. Timers are superseded (restarted or stopped), never cancelled.
type Timer struct {
	// onTime is how long the output stays high each cycle.
	onTime clock.Millis
	// offTime is how long the output stays low each cycle.
	offTime clock.Millis
	// start is the reading at which the current cycle began.
	start clock.Millis
	// active gates the whole cycle; inactive timers report off.
	active bool
}

// NewTimer returns an inactive timer with the given on/off durations.
func NewTimer(onTime, offTime clock.Millis) Timer {
	return Timer{onTime: onTime, offTime: offTime}
}

// Start begins a fresh cycle at now. The output is high immediately.
func (t *Timer) Start(now clock.Millis) {
	t.start = now
	t.active = true
}

// Stop deactivates the timer, forcing the output low.
func (t *Timer) Stop() {
	t.active = false
	t.start = 0
}

// Active reports whether the timer is running a cycle.
func (t *Timer) Active() bool {
	return t.active
}

// IsOn reports the current phase of the duty cycle.
//
// Rather than reducing the elapsed time modulo the cycle length, a timer
// that has run past a full cycle re-synchronizes: the cycle restarts at now
// and that tick reports on. Arbitrarily long gaps between polls therefore
// cost at most one cycle of drift instead of accumulating.
func (t *Timer) IsOn(now clock.Millis) bool {
	if !t.active {
		return false
	}

	elapsed := clock.Elapsed(now, t.start)
	if elapsed >= t.onTime+t.offTime {
		t.start = now

		return true
	}

	return elapsed < t.onTime
}
