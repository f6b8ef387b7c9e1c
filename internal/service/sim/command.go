package sim

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cahamo/gate-alarm/internal/clock"
	"github.com/cahamo/gate-alarm/internal/config"
	"github.com/cahamo/gate-alarm/internal/controller"
	"github.com/cahamo/gate-alarm/internal/logger"
)

// Options controls the simulator process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// LogLevel overrides the configured log level when non-empty.
	LogLevel string
}

// Run starts the interactive terminal simulator and blocks until the user
// quits or the context is canceled.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "gate-alarm-sim")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	if parsed, ok := logger.ParseLogLevel(level); ok {
		logger.SetLevel(parsed)
	}

	clk := clock.NewSystem()
	ctrl := controller.New(cfg, clk.Now())

	program := tea.NewProgram(
		newModel(ctx, cfg, clk, ctrl),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run simulator: %w", err)
	}

	return nil
}
