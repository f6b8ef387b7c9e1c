package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cahamo/gate-alarm/internal/config"
	"github.com/cahamo/gate-alarm/internal/service/sim"
	"github.com/cahamo/gate-alarm/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command for running the terminal simulator.
	rootCmd = &cobra.Command{
		Use:   "gate-alarm-sim",
		Short: "Run the gate alarm in an interactive terminal simulator.",
		Long: `Runs the gate alarm core with a simulated display, keypad and indicators
in the terminal.

Keys 0-9, # and * act as the keypad; o (or g) opens the gate. The 16x2
display, backlight, buzzer and LED states update live. All timing constants
come from the settings file; without one, the reference hardware defaults
apply.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &sim.Options{
				ConfigPath: configPath,
				LogLevel:   logLevel,
			}

			return sim.Run(ctx, options)
		},
	}
)

// Execute runs the gate-alarm-sim CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	config.AttachInitConfigCommand(rootCmd, &configPath)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level override (debug, info, warn, error)")
}
