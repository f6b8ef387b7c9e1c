// Package clock provides the monotonic millisecond counter used for all
// timing decisions in the gate alarm core, together with wraparound-safe
// elapsed-interval arithmetic.
//
// Millis deliberately wraps like a fixed-width hardware tick counter; the
// Elapsed helper is the only sanctioned way to compare two readings.
package clock
