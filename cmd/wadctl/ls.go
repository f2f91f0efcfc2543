// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	wad "github.com/tindalos/wadfs"
)

var lsCmd = &cobra.Command{
	Use:   "ls <wad> [path]",
	Short: "List a directory's contents, or a single entry's metadata",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runLs,
}

func runLs(cmd *cobra.Command, args []string) error {
	path := "/"
	if len(args) == 2 {
		path = args[1]
	}

	a, err := wad.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}
	defer a.Close()

	switch {
	case a.IsDirectory(path):
		var names []string
		a.GetDirectory(path, &names)
		for _, name := range names {
			fmt.Println(name)
		}

	case a.IsContent(path):
		fmt.Printf("%s\t%d bytes\n", path, a.GetSize(path))

	default:
		slog.Error("no such entry", "path", path)
		return fmt.Errorf("no such entry: %s", path)
	}

	return nil
}
