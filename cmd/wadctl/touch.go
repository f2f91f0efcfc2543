// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	wad "github.com/tindalos/wadfs"
)

var touchCmd = &cobra.Command{
	Use:   "touch <wad> <path>",
	Short: "Create an empty content lump in an archive",
	Args:  cobra.ExactArgs(2),
	RunE:  runTouch,
}

func runTouch(cmd *cobra.Command, args []string) error {
	if err := backupBeforeWrite(args[0]); err != nil {
		return err
	}

	a, err := wad.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}

	a.CreateFile(args[1])
	created := a.IsContent(args[1])

	if err := a.Close(); err != nil {
		return fmt.Errorf("saving %s: %w", args[0], err)
	}

	if !created {
		return fmt.Errorf("touch %s: rejected (name too long, missing parent, parent is a map directory, or a sibling already has that name)", args[1])
	}

	return nil
}
