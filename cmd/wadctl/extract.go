// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/woozymasta/pathrules"

	wad "github.com/tindalos/wadfs"
)

var (
	extractInclude []string
	extractExclude []string
)

var extractCmd = &cobra.Command{
	Use:   "extract <wad> <dest-dir>",
	Short: "Extract an archive's lumps to a directory tree",
	Args:  cobra.ExactArgs(2),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringArrayVar(&extractInclude, "include", nil, "glob pattern to include (repeatable)")
	extractCmd.Flags().StringArrayVar(&extractExclude, "exclude", nil, "glob pattern to exclude (repeatable)")
}

// buildExtractMatcher compiles --include/--exclude into a pathrules
// matcher. With no rules at all, everything is extracted.
func buildExtractMatcher(include, exclude []string) (*pathrules.Matcher, error) {
	var rules []pathrules.Rule
	for _, p := range include {
		rules = append(rules, pathrules.Rule{Action: pathrules.ActionInclude, Pattern: p})
	}
	for _, p := range exclude {
		rules = append(rules, pathrules.Rule{Action: pathrules.ActionExclude, Pattern: p})
	}
	if len(rules) == 0 {
		return nil, nil
	}

	defaultAction := pathrules.ActionInclude
	if len(include) > 0 {
		defaultAction = pathrules.ActionExclude
	}

	return pathrules.NewMatcher(rules, pathrules.MatcherOptions{DefaultAction: defaultAction})
}

func runExtract(cmd *cobra.Command, args []string) error {
	a, err := wad.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}
	defer a.Close()

	destDir := args[1]
	matcher, err := buildExtractMatcher(extractInclude, extractExclude)
	if err != nil {
		return fmt.Errorf("compiling include/exclude rules: %w", err)
	}

	entries := walkContents(a, "/")

	extracted := 0
	for _, entry := range entries {
		if matcher != nil && !matcher.Included(entry.path, false) {
			continue
		}

		relative, ok := sanitizeRelative(entry.path)
		if !ok {
			slog.Warn("skipping entry with unsafe path", "path", entry.path)
			continue
		}

		dest := filepath.Join(destDir, relative)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
		}

		buf := make([]byte, entry.size)
		if n := a.GetContents(entry.path, buf, entry.size, 0); n >= 0 {
			buf = buf[:n]
		}

		if err := os.WriteFile(dest, buf, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		extracted++
	}

	slog.Info("extraction complete", "count", extracted, "dest", destDir)
	return nil
}
