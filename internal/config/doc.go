// Package config defines the timing constants and pin assignments used by
// the gate alarm binaries and provides helpers to load, validate and save
// them in YAML format. Every field has a documented default matching the
// reference hardware build, so the binaries run without a settings file.
package config
