// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

// Package config holds wadctl's bound configuration.
package config

// Config holds the settings shared across wadctl subcommands, bound
// through viper from flags, WADCTL_-prefixed environment variables, and
// an optional TOML config file.
type Config struct {
	LogLevel     string `mapstructure:"log_level"`
	LogOutputDir string `mapstructure:"log_output_dir"`

	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`

	SingleThreaded bool `mapstructure:"single_threaded"`
}
