package hal

import (
	"fmt"

	rpio "github.com/stianeikeland/go-rpio/v4"

	"github.com/cahamo/gate-alarm/internal/clock"
	"github.com/cahamo/gate-alarm/internal/config"
)

// Board bundles the wired peripherals of the reference build. NewBoard maps
// the GPIO memory; Close forces every output low and releases it.
type Board struct {
	// Sensor is the debounced gate reed switch.
	Sensor *Sensor
	// Keys is the 4x3 membrane keypad scanner.
	Keys *Keypad
	// Buzzer is the alarm buzzer output.
	Buzzer Output
	// AlarmLED is the alarm indicator output.
	AlarmLED Output
	// HeartbeatLED is the heartbeat indicator output.
	HeartbeatLED Output
}

// NewBoard opens the GPIO memory and configures every pin of the reference
// build. All outputs start low.
func NewBoard(pins config.Pins, debounce, now clock.Millis) (*Board, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio memory: %w", err)
	}

	return &Board{
		Sensor:       NewSensor(pins.Sensor, debounce, now),
		Keys:         NewKeypad(pins.KeypadRows, pins.KeypadCols, debounce),
		Buzzer:       NewOutput(pins.Buzzer),
		AlarmLED:     NewOutput(pins.AlarmLED),
		HeartbeatLED: NewOutput(pins.HeartbeatLED),
	}, nil
}

// Close forces every output low and unmaps the GPIO memory.
func (b *Board) Close() error {
	b.Buzzer.Set(false)
	b.AlarmLED.Set(false)
	b.HeartbeatLED.Set(false)

	return rpio.Close()
}

// Output drives one active-high device pin.
type Output struct {
	pin rpio.Pin
}

// NewOutput configures the pin for output and forces it low.
func NewOutput(bcm uint8) Output {
	pin := rpio.Pin(bcm)
	pin.Output()
	pin.Low()

	return Output{pin: pin}
}

// Set drives the pin high or low.
func (o Output) Set(level bool) {
	if level {
		o.pin.High()
	} else {
		o.pin.Low()
	}
}

// Sensor debounces the gate reed switch. The switch shorts the pin to
// ground when the gate leaves the magnet, so the opened edge is high to low.
type Sensor struct {
	pin      rpio.Pin
	debounce clock.Millis
	// raw is the last sampled level.
	raw rpio.State
	// lastFlip is when raw last changed.
	lastFlip clock.Millis
	// stable is the debounced level.
	stable rpio.State
}

// NewSensor configures the pin as a pulled-up input and seeds the debounce
// state from the current level.
func NewSensor(bcm uint8, debounce, now clock.Millis) *Sensor {
	pin := rpio.Pin(bcm)
	pin.Input()
	pin.PullUp()

	level := pin.Read()

	return &Sensor{
		pin:      pin,
		debounce: debounce,
		raw:      level,
		lastFlip: now,
		stable:   level,
	}
}

// Opened samples the pin and reports a debounced gate-opened edge. Call once
// per poll cycle.
func (s *Sensor) Opened(now clock.Millis) bool {
	level := s.pin.Read()
	if level != s.raw {
		s.raw = level
		s.lastFlip = now
	}

	if level == s.stable || clock.Elapsed(now, s.lastFlip) < s.debounce {
		return false
	}

	previous := s.stable
	s.stable = level

	return previous == rpio.High && level == rpio.Low
}

// keymap is the legend of the 4x3 membrane keypad.
var keymap = [config.KeypadRowCount][config.KeypadColCount]rune{
	{'1', '2', '3'},
	{'4', '5', '6'},
	{'7', '8', '9'},
	{'*', '0', '#'},
}

// Keypad scans a 4x3 matrix: rows are driven low one at a time, a pressed
// key pulls its column low. At most one new press is reported per scan.
type Keypad struct {
	rows     [config.KeypadRowCount]rpio.Pin
	cols     [config.KeypadColCount]rpio.Pin
	debounce clock.Millis
	// held tracks which keys are currently down, for edge detection.
	held [config.KeypadRowCount][config.KeypadColCount]bool
	// lastEdge is when each key last changed, for debounce.
	lastEdge [config.KeypadRowCount][config.KeypadColCount]clock.Millis
}

// NewKeypad configures the matrix pins: rows as idle-high outputs, columns
// as pulled-up inputs.
func NewKeypad(rowPins, colPins []uint8, debounce clock.Millis) *Keypad {
	k := &Keypad{debounce: debounce}

	for i, bcm := range rowPins {
		pin := rpio.Pin(bcm)
		pin.Output()
		pin.High()
		k.rows[i] = pin
	}

	for j, bcm := range colPins {
		pin := rpio.Pin(bcm)
		pin.Input()
		pin.PullUp()
		k.cols[j] = pin
	}

	return k
}

// Scan runs one matrix sweep and returns a newly pressed key, if any.
// Call once per poll cycle.
func (k *Keypad) Scan(now clock.Millis) (rune, bool) {
	for i := range k.rows {
		k.rows[i].Low()

		for j := range k.cols {
			down := k.cols[j].Read() == rpio.Low

			switch {
			case down && !k.held[i][j] && clock.Elapsed(now, k.lastEdge[i][j]) >= k.debounce:
				k.held[i][j] = true
				k.lastEdge[i][j] = now
				k.rows[i].High()

				return keymap[i][j], true
			case !down && k.held[i][j]:
				k.held[i][j] = false
				k.lastEdge[i][j] = now
			}
		}

		k.rows[i].High()
	}

	return 0, false
}
