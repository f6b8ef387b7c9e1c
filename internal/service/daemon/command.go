package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/cahamo/gate-alarm/internal/clock"
	"github.com/cahamo/gate-alarm/internal/config"
	"github.com/cahamo/gate-alarm/internal/controller"
	"github.com/cahamo/gate-alarm/internal/domain/gate"
	"github.com/cahamo/gate-alarm/internal/hal"
	"github.com/cahamo/gate-alarm/internal/keypad"
	"github.com/cahamo/gate-alarm/internal/logger"
)

// Options controls the hardware daemon process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// LogLevel overrides the configured log level when non-empty.
	LogLevel string
}

// Run drives the gate alarm on real GPIO hardware until the context is
// canceled. Each tick samples the sensor and keypad, polls the core once and
// writes every output pin.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "gate-alarmd")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	applyLogLevel(cfg.LogLevel, opts.LogLevel)

	clk := clock.NewSystem()
	now := clk.Now()

	board, err := hal.NewBoard(cfg.Pins, clock.FromDuration(cfg.DebounceTime), now)
	if err != nil {
		return fmt.Errorf("initialise board: %w", err)
	}

	defer func() {
		if cerr := board.Close(); cerr != nil {
			logger.ErrorKV(ctx, "Failed to release GPIO", "error", cerr)
		}
	}()

	ctrl := controller.New(cfg, now)

	logger.InfoKV(ctx, "Gate alarm running",
		"poll_interval", cfg.PollInterval.String(),
		"sensor_pin", cfg.Pins.Sensor,
	)

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, outputs off, exiting")

			return nil
		case <-ticker.C:
			tick(ctx, clk, board, ctrl)
		}
	}
}

// tick runs one poll cycle against the hardware.
func tick(ctx context.Context, clk clock.Clock, board *hal.Board, ctrl *controller.Controller) {
	now := clk.Now()

	if board.Sensor.Opened(now) {
		if !ctrl.Enqueue(gate.Event{Kind: gate.EventGateOpened}) {
			logger.Warn(ctx, "Input queue full, sensor edge dropped")
		}
	}

	if r, ok := board.Keys.Scan(now); ok {
		if key := keypad.Parse(r); key.Kind != keypad.KindInvalid {
			if !ctrl.Enqueue(gate.Event{Kind: gate.EventKey, Key: key}) {
				logger.Warn(ctx, "Input queue full, key dropped")
			}
		}
	}

	out := ctrl.Poll(ctx, now)

	board.Buzzer.Set(out.Buzzer)
	board.AlarmLED.Set(out.AlarmLED)
	board.HeartbeatLED.Set(out.HeartbeatLED)

	// No character display is attached to this build; frame changes go to
	// the log instead.
	if out.FrameChanged {
		logger.InfoKV(ctx, "Display updated",
			"line1", out.Frame.Line1,
			"line2", out.Frame.Line2,
			"backlight", out.Backlight,
		)
	}
}

// applyLogLevel sets the global level from the override or the settings.
func applyLogLevel(configured, override string) {
	level := configured
	if override != "" {
		level = override
	}

	if parsed, ok := logger.ParseLogLevel(level); ok {
		logger.SetLevel(parsed)
	}
}
