// Package hal wraps the Raspberry Pi GPIO peripherals of the reference gate
// alarm build: the debounced reed-switch sensor, the 4x3 matrix keypad
// scanner and the buzzer/LED outputs. Everything is sampled synchronously
// from the poll loop; no interrupts are used.
package hal
