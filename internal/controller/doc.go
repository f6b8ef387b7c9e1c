// Package controller implements the central gate alarm state machine: gate
// position and alarm tracking, keypad-driven suspension, display refresh and
// the per-poll computation of every output level.
//
// The controller is strictly non-blocking. One goroutine calls Poll at a
// high cadence; inputs from other goroutines enter through a bounded queue
// drained at the start of each cycle.
package controller
