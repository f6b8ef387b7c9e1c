package clock

import "time"

// Millis is a monotonic millisecond counter reading. The counter wraps at
// the uint32 boundary; elapsed intervals are taken with unsigned subtraction,
// which stays correct as long as the interval itself is shorter than the
// wraparound period (~49.7 days).
type Millis uint32

// Elapsed returns the interval between start and now.
// Safe across counter wraparound: never compare absolute readings directly.
func Elapsed(now, start Millis) Millis {
	return now - start
}

// FromDuration converts a time.Duration to a Millis interval.
// Negative durations convert to zero.
func FromDuration(d time.Duration) Millis {
	if d < 0 {
		return 0
	}

	return Millis(d.Milliseconds())
}

// Clock supplies monotonic millisecond readings.
type Clock interface {
	Now() Millis
}

// System is a Clock backed by the runtime's monotonic clock,
// counted from the moment of construction.
type System struct {
	// epoch anchors the counter so readings start near zero.
	epoch time.Time
}

// NewSystem returns a System clock starting at zero.
func NewSystem() *System {
	return &System{epoch: time.Now()}
}

// Now returns the milliseconds elapsed since construction, truncated to the
// counter width.
func (s *System) Now() Millis {
	return Millis(time.Since(s.epoch).Milliseconds())
}

// Manual is a hand-advanced Clock for tests and simulations.
type Manual struct {
	now Millis
}

// NewManual returns a Manual clock positioned at start.
func NewManual(start Millis) *Manual {
	return &Manual{now: start}
}

// Now returns the current reading.
func (m *Manual) Now() Millis {
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d Millis) {
	m.now += d
}

// Set positions the clock at an absolute reading.
func (m *Manual) Set(now Millis) {
	m.now = now
}
