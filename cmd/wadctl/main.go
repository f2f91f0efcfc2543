// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

// Command wadctl inspects, extracts from, and mutates WAD archives, and
// can mount one as a FUSE filesystem.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tindalos/wadfs/internal/config"
	"github.com/tindalos/wadfs/internal/logging"
)

var cfg = &config.Config{}

var rootCmd = &cobra.Command{
	Use:   "wadctl",
	Short: "Inspect, extract from, and mount WAD archives",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(cfg); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return logging.Setup(cfg.LogLevel, cfg.LogOutputDir)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-output-dir", "", "directory to also write JSON log files to")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_output_dir", rootCmd.PersistentFlags().Lookup("log-output-dir"))

	rootCmd.AddCommand(lsCmd, catCmd, extractCmd, mkdirCmd, touchCmd, mountCmd)
}

func initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "wadctl"))
	}
	viper.AddConfigPath("/etc/wadctl")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.SetEnvPrefix("WADCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "using config file: %s\n", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
