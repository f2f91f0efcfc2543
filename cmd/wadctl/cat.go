// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wad "github.com/tindalos/wadfs"
)

var catCmd = &cobra.Command{
	Use:   "cat <wad> <path>",
	Short: "Stream a lump's contents to stdout",
	Args:  cobra.ExactArgs(2),
	RunE:  runCat,
}

func runCat(cmd *cobra.Command, args []string) error {
	a, err := wad.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}
	defer a.Close()

	path := args[1]
	if !a.IsContent(path) {
		return fmt.Errorf("no such lump: %s", path)
	}

	size := a.GetSize(path)
	buf := make([]byte, size)
	n := a.GetContents(path, buf, size, 0)
	if n < 0 {
		return fmt.Errorf("reading %s", path)
	}

	_, err = os.Stdout.Write(buf[:n])
	return err
}
