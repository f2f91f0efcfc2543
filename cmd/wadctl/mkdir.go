// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	wad "github.com/tindalos/wadfs"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <wad> <path>",
	Short: "Create a namespace directory in an archive",
	Args:  cobra.ExactArgs(2),
	RunE:  runMkdir,
}

func runMkdir(cmd *cobra.Command, args []string) error {
	if err := backupBeforeWrite(args[0]); err != nil {
		return err
	}

	a, err := wad.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}

	a.CreateDirectory(args[1])
	created := a.IsDirectory(args[1])

	if err := a.Close(); err != nil {
		return fmt.Errorf("saving %s: %w", args[0], err)
	}

	if !created {
		return fmt.Errorf("mkdir %s: rejected (name too long, missing parent, or parent is a map directory)", args[1])
	}

	return nil
}
