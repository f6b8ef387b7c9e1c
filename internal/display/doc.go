// Package display renders the combined gate alarm state into the two text
// lines of a 16x2 character display and manages the backlight activity
// timer. Frames are recomputed on a fixed cadence and only reported when
// they differ from the previous frame, keeping bus traffic and flicker down.
package display
