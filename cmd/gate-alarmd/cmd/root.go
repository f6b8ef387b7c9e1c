package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cahamo/gate-alarm/internal/config"
	"github.com/cahamo/gate-alarm/internal/service/daemon"
	"github.com/cahamo/gate-alarm/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command for running the hardware daemon.
	rootCmd = &cobra.Command{
		Use:   "gate-alarmd",
		Short: "Run the gate alarm on Raspberry Pi GPIO hardware.",
		Long: `Runs the gate alarm against real hardware: a reed switch on the gate, a
4x3 membrane keypad, a buzzer and two indicator LEDs.

Pin assignments and timing constants come from the settings file; without
one, the reference hardware defaults apply. Display frames are written to
the log. Requires access to the GPIO memory (run as root or in the gpio
group).`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &daemon.Options{
				ConfigPath: configPath,
				LogLevel:   logLevel,
			}

			return daemon.Run(ctx, options)
		},
	}
)

// Execute runs the gate-alarmd CLI and exits with non-zero status on error.
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
