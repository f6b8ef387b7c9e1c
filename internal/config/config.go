package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the timing constants and hardware assignments shared by the
// gate alarm binaries. Zero values are replaced with the documented defaults
// by Validate.
type Config struct {
	// BuzzerOnTime is how long the buzzer sounds each alarm cycle.
	BuzzerOnTime time.Duration `yaml:"buzzer_on_time"`
	// BuzzerOffTime is how long the buzzer rests each alarm cycle.
	BuzzerOffTime time.Duration `yaml:"buzzer_off_time"`
	// AlarmLEDOnTime is how long the alarm indicator lights each cycle.
	AlarmLEDOnTime time.Duration `yaml:"alarm_led_on_time"`
	// AlarmLEDOffTime is how long the alarm indicator is dark each cycle.
	AlarmLEDOffTime time.Duration `yaml:"alarm_led_off_time"`
	// HeartbeatOnTime is the length of the periodic heartbeat blink.
	HeartbeatOnTime time.Duration `yaml:"heartbeat_on_time"`
	// HeartbeatOffTime is the gap between heartbeat blinks.
	HeartbeatOffTime time.Duration `yaml:"heartbeat_off_time"`
	// BacklightTimeout is how long the display backlight stays on after
	// activity.
	BacklightTimeout time.Duration `yaml:"backlight_timeout"`
	// DisplayRefresh is the minimum interval between display re-renders.
	DisplayRefresh time.Duration `yaml:"display_refresh"`
	// SplashTime is how long the welcome screen shows after power-up.
	SplashTime time.Duration `yaml:"splash_time"`
	// PollInterval is the driver loop cadence. The core itself tolerates any
	// polling rate.
	PollInterval time.Duration `yaml:"poll_interval"`
	// DebounceTime filters the raw gate sensor in the hardware driver.
	DebounceTime time.Duration `yaml:"debounce_time"`
	// LogLevel selects the minimum level for log output.
	LogLevel string `yaml:"log_level"`
	// Pins assigns GPIO pins for the hardware daemon.
	Pins Pins `yaml:"pins"`
}

// Pins assigns BCM pin numbers for the hardware daemon. The keypad is a 4x3
// matrix: rows are driven, columns are read.
type Pins struct {
	// Sensor is the reed-switch input, active low with pull-up.
	Sensor uint8 `yaml:"sensor"`
	// Buzzer is the alarm buzzer output.
	Buzzer uint8 `yaml:"buzzer"`
	// AlarmLED is the alarm indicator output.
	AlarmLED uint8 `yaml:"alarm_led"`
	// HeartbeatLED is the heartbeat indicator output.
	HeartbeatLED uint8 `yaml:"heartbeat_led"`
	// KeypadRows are the four row-drive outputs.
	KeypadRows []uint8 `yaml:"keypad_rows"`
	// KeypadCols are the three column-read inputs.
	KeypadCols []uint8 `yaml:"keypad_cols"`
}

const (
	// DefaultConfigFilename is the default filename for gate alarm settings.
	DefaultConfigFilename = "gate-alarm-settings.yaml"

	// DefaultFilePermissions is the file permission used when saving settings.
	DefaultFilePermissions = 0o600

	// KeypadRowCount is the required number of keypad row pins.
	KeypadRowCount = 4
	// KeypadColCount is the required number of keypad column pins.
	KeypadColCount = 3
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errKeypadPins is returned when the keypad matrix dimensions are wrong.
	errKeypadPins = fmt.Errorf(
		"keypad needs %d row pins and %d column pins",
		KeypadRowCount, KeypadColCount,
	)
)

// Default returns the settings matching the reference hardware build.
func Default() *Config {
	return &Config{
		BuzzerOnTime:     1500 * time.Millisecond,
		BuzzerOffTime:    1000 * time.Millisecond,
		AlarmLEDOnTime:   250 * time.Millisecond,
		AlarmLEDOffTime:  250 * time.Millisecond,
		HeartbeatOnTime:  100 * time.Millisecond,
		HeartbeatOffTime: 8000 * time.Millisecond,
		BacklightTimeout: 10 * time.Second,
		DisplayRefresh:   250 * time.Millisecond,
		SplashTime:       2 * time.Second,
		PollInterval:     10 * time.Millisecond,
		DebounceTime:     50 * time.Millisecond,
		LogLevel:         "info",
		Pins: Pins{
			Sensor:       17,
			Buzzer:       22,
			AlarmLED:     23,
			HeartbeatLED: 24,
			KeypadRows:   []uint8{5, 6, 13, 19},
			KeypadCols:   []uint8{12, 16, 20},
		},
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file yields the defaults so the binaries run unconfigured.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate replaces unset fields with defaults and checks the keypad matrix
// dimensions.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	defaults := Default()

	fillDuration(&cfg.BuzzerOnTime, defaults.BuzzerOnTime)
	fillDuration(&cfg.BuzzerOffTime, defaults.BuzzerOffTime)
	fillDuration(&cfg.AlarmLEDOnTime, defaults.AlarmLEDOnTime)
	fillDuration(&cfg.AlarmLEDOffTime, defaults.AlarmLEDOffTime)
	fillDuration(&cfg.HeartbeatOnTime, defaults.HeartbeatOnTime)
	fillDuration(&cfg.HeartbeatOffTime, defaults.HeartbeatOffTime)
	fillDuration(&cfg.BacklightTimeout, defaults.BacklightTimeout)
	fillDuration(&cfg.DisplayRefresh, defaults.DisplayRefresh)
	fillDuration(&cfg.PollInterval, defaults.PollInterval)
	fillDuration(&cfg.DebounceTime, defaults.DebounceTime)

	// SplashTime may legitimately be zero to skip the welcome screen.
	if cfg.SplashTime < 0 {
		cfg.SplashTime = defaults.SplashTime
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}

	if cfg.Pins.Sensor == 0 && cfg.Pins.Buzzer == 0 {
		cfg.Pins = defaults.Pins
	}

	if len(cfg.Pins.KeypadRows) != KeypadRowCount || len(cfg.Pins.KeypadCols) != KeypadColCount {
		return errKeypadPins
	}

	return nil
}

// fillDuration replaces non-positive durations with the default.
func fillDuration(d *time.Duration, def time.Duration) {
	if *d <= 0 {
		*d = def
	}
}
