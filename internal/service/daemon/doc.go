// Package daemon runs the gate alarm against real Raspberry Pi GPIO
// hardware: it ticks the core state machine, feeds it debounced sensor and
// keypad events from the hal package and mirrors the computed output levels
// onto the buzzer and LED pins. Display frames are logged, as the reference
// build's character display is not attached here.
package daemon
