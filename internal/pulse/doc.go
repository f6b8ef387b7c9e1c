// Package pulse implements the repeating on/off duty cycles that make the
// buzzer beep and the indicator LEDs flash. One Timer type serves every
// output; only the duration pair differs between instances.
package pulse
