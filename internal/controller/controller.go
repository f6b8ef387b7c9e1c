package controller

import (
	"context"

	"github.com/cahamo/gate-alarm/internal/clock"
	"github.com/cahamo/gate-alarm/internal/config"
	"github.com/cahamo/gate-alarm/internal/display"
	"github.com/cahamo/gate-alarm/internal/domain/gate"
	"github.com/cahamo/gate-alarm/internal/keypad"
	"github.com/cahamo/gate-alarm/internal/logger"
	"github.com/cahamo/gate-alarm/internal/pulse"
	"github.com/cahamo/gate-alarm/internal/suspend"
)

// inboxCapacity bounds the event queue. Events are produced at human speed;
// a handful of slots absorbs any realistic burst between polls.
const inboxCapacity = 32

// Outputs is the full set of device directives computed by one poll cycle.
type Outputs struct {
	// Buzzer is the alarm buzzer level.
	Buzzer bool
	// AlarmLED is the alarm indicator level.
	AlarmLED bool
	// HeartbeatLED is the heartbeat indicator level.
	HeartbeatLED bool
	// Frame is the current display content.
	Frame display.Frame
	// FrameChanged is true when Frame differs from the previous poll,
	// signalling the display collaborator to rewrite.
	FrameChanged bool
	// Backlight is the display backlight directive.
	Backlight bool
}

// Controller is the central gate alarm state machine. It owns the gate and
// alarm states, delegates suspension and digit entry to a suspend.Manager,
// and drives the pulse timers and display renderer.
//
// All state belongs to the single goroutine calling Poll. Collaborators on
// other goroutines feed inputs through Enqueue; the queue is drained at the
// start of each poll, so no other locking exists.
type Controller struct {
	// sus owns suspension state and the digit-entry accumulator.
	sus *suspend.Manager
	// renderer owns the display frame cache and backlight timer.
	renderer *display.Renderer
	// buzzer beeps while the alarm sounds.
	buzzer pulse.Timer
	// alarmLED flashes while the gate is open, suspended or not.
	alarmLED pulse.Timer
	// heartbeat blinks briefly every few seconds while idle.
	heartbeat pulse.Timer
	// inbox receives discrete input events between polls.
	inbox chan gate.Event
	// gatePos is the tracked gate position.
	gatePos gate.State
	// alarm is the buzzer cycle state.
	alarm gate.AlarmState
	// boot anchors the splash screen window.
	boot clock.Millis
	// splash is how long the welcome screen shows after boot.
	splash clock.Millis
}

// New returns a controller in the power-up state: gate closed, alarm silent,
// suspension off, heartbeat running and backlight on.
func New(cfg *config.Config, now clock.Millis) *Controller {
	c := &Controller{
		sus: suspend.NewManager(),
		renderer: display.NewRenderer(
			clock.FromDuration(cfg.DisplayRefresh),
			clock.FromDuration(cfg.BacklightTimeout),
			now,
		),
		buzzer: pulse.NewTimer(
			clock.FromDuration(cfg.BuzzerOnTime),
			clock.FromDuration(cfg.BuzzerOffTime),
		),
		alarmLED: pulse.NewTimer(
			clock.FromDuration(cfg.AlarmLEDOnTime),
			clock.FromDuration(cfg.AlarmLEDOffTime),
		),
		heartbeat: pulse.NewTimer(
			clock.FromDuration(cfg.HeartbeatOnTime),
			clock.FromDuration(cfg.HeartbeatOffTime),
		),
		inbox:  make(chan gate.Event, inboxCapacity),
		boot:   now,
		splash: clock.FromDuration(cfg.SplashTime),
	}

	c.heartbeat.Start(now)

	return c
}

// Gate returns the tracked gate position.
func (c *Controller) Gate() gate.State {
	return c.gatePos
}

// Alarm returns the buzzer cycle state.
func (c *Controller) Alarm() gate.AlarmState {
	return c.alarm
}

// Suspension returns the active suspension mode.
func (c *Controller) Suspension() gate.SuspendMode {
	return c.sus.Mode()
}

// Enqueue adds an input event without blocking. It reports false when the
// inbox is full and the event was dropped.
func (c *Controller) Enqueue(ev gate.Event) bool {
	select {
	case c.inbox <- ev:
		return true
	default:
		return false
	}
}

// Poll runs one cycle of the state machine: drains queued inputs, checks
// suspension expiry, refreshes the display and recomputes every output
// level. It never blocks and tolerates arbitrary gaps between invocations.
func (c *Controller) Poll(ctx context.Context, now clock.Millis) Outputs {
	c.drainInbox(ctx, now)

	// Expiry runs after input processing: a commit in the same cycle
	// supersedes the old window before it can fire.
	if c.sus.Expire(now) {
		logger.Debug(ctx, "Suspension timed out")
		c.activateAlarm(ctx, now)
	}

	snap := c.snapshot(now)
	frame, changed := c.renderer.Update(now, snap)

	return Outputs{
		Buzzer:       c.buzzer.IsOn(now),
		AlarmLED:     c.alarmLED.IsOn(now),
		HeartbeatLED: c.heartbeatLevel(now),
		Frame:        frame,
		FrameChanged: changed,
		Backlight:    c.renderer.EvaluateBacklight(now, snap),
	}
}

// drainInbox applies every queued event in arrival order.
func (c *Controller) drainInbox(ctx context.Context, now clock.Millis) {
	for {
		select {
		case ev := <-c.inbox:
			c.handleEvent(ctx, now, ev)
		default:
			return
		}
	}
}

func (c *Controller) handleEvent(ctx context.Context, now clock.Millis, ev gate.Event) {
	switch ev.Kind {
	case gate.EventGateOpened:
		c.onGateOpened(ctx, now)
	case gate.EventKey:
		c.handleKey(ctx, now, ev.Key)
	}
}

// onGateOpened marks the gate open, starts the indicator flashing and arms
// the alarm unless a suspension is active. Idempotent while already open.
func (c *Controller) onGateOpened(ctx context.Context, now clock.Millis) {
	if c.gatePos == gate.Open {
		return
	}

	logger.Debug(ctx, "Gate opened")

	c.gatePos = gate.Open
	c.alarmLED.Start(now)

	if !c.sus.Suspended() {
		c.activateAlarm(ctx, now)
	}
}

func (c *Controller) handleKey(ctx context.Context, now clock.Millis, key keypad.Key) {
	switch key.Kind {
	case keypad.KindDigit:
		c.sus.Digit(key.Digit)

		value, _ := c.sus.Entering()
		logger.DebugKV(ctx, "Suspension digit entered", "digit", key.Digit, "value", value)
	case keypad.KindCommit:
		c.commit(ctx, now)
	case keypad.KindReset:
		c.reset(ctx)
	case keypad.KindInvalid:
		// Unmapped keys are ignored, not an error.
	}
}

// commit applies the hash key and the resulting alarm side effects: a newly
// active suspension silences a sounding alarm, a cancelled one re-arms it
// while the gate is open.
func (c *Controller) commit(ctx context.Context, now clock.Millis) {
	_, wasEntering := c.sus.Entering()

	switch c.sus.Commit(now) {
	case suspend.ChangeActivated:
		logger.DebugKV(ctx, "Suspension active",
			"mode", c.sus.Mode().String(),
			"remaining_ms", uint32(c.sus.Remaining(now)),
		)
		c.silenceAlarm(ctx)

		// A bare hash press re-lights the backlight even when the rendered
		// frame does not change, e.g. hash pressed twice in a row.
		if !wasEntering {
			c.renderer.PokeBacklight(now)
		}
	case suspend.ChangeDeactivated:
		logger.Debug(ctx, "Suspension cancelled")
		c.activateAlarm(ctx, now)
	case suspend.ChangeNone:
	}
}

// activateAlarm starts the buzzer cycle. It does nothing while the gate is
// closed or the alarm already sounds.
func (c *Controller) activateAlarm(ctx context.Context, now clock.Millis) {
	if c.gatePos != gate.Open || c.alarm == gate.Sounding {
		return
	}

	logger.Debug(ctx, "Alarm activated")

	c.buzzer.Start(now)
	c.alarm = gate.Sounding
}

// silenceAlarm stops the buzzer cycle. It does nothing while already silent.
func (c *Controller) silenceAlarm(ctx context.Context) {
	if c.alarm == gate.Silent {
		return
	}

	logger.Debug(ctx, "Alarm silenced")

	c.buzzer.Stop()
	c.alarm = gate.Silent
}

// reset is the star key: the only way the gate returns to Closed. The
// operator presses it after physically shutting the gate.
func (c *Controller) reset(ctx context.Context) {
	logger.Debug(ctx, "Reset")

	c.gatePos = gate.Closed
	c.sus.Clear()
	c.silenceAlarm(ctx)
	c.alarmLED.Stop()
}

// heartbeatLevel forces the heartbeat LED continuously on while any
// suspension is active, a visible reminder that the alarm is masked.
func (c *Controller) heartbeatLevel(now clock.Millis) bool {
	if c.sus.Suspended() {
		return true
	}

	return c.heartbeat.IsOn(now)
}

// snapshot assembles the read-only view the renderer consumes.
func (c *Controller) snapshot(now clock.Millis) gate.Snapshot {
	value, entering := c.sus.Entering()

	return gate.Snapshot{
		Splash:     clock.Elapsed(now, c.boot) < c.splash,
		Entering:   entering,
		EntryValue: value,
		Suspend:    c.sus.Mode(),
		Remaining:  c.sus.Remaining(now),
		GateOpen:   c.gatePos == gate.Open,
	}
}
