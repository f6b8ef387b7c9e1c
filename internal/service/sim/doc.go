// Package sim is an interactive terminal simulator for the gate alarm: a
// bubbletea program that renders the 16x2 display, backlight and indicator
// LEDs with lipgloss and maps keyboard input onto the keypad and the gate
// sensor. It exercises exactly the same core as the hardware daemon.
package sim
