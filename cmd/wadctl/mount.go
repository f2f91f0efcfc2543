// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	wad "github.com/tindalos/wadfs"
	"github.com/tindalos/wadfs/internal/fsadapter"
)

var mountSingleThreaded bool

var mountCmd = &cobra.Command{
	Use:   "mount <wad> <mountpoint>",
	Short: "Mount an archive as a FUSE filesystem",
	Args:  cobra.ExactArgs(2),
	RunE:  runMount,
}

func init() {
	mountCmd.Flags().BoolVarP(&mountSingleThreaded, "single-thread", "s", false, "run FUSE dispatch single-threaded")
}

func runMount(cmd *cobra.Command, args []string) error {
	wadPath, mountpoint := args[0], args[1]

	if err := backupBeforeWrite(wadPath); err != nil {
		return err
	}

	a, err := wad.Load(wadPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", wadPath, err)
	}

	server, err := fsadapter.Mount(fsadapter.Options{
		Mountpoint:     mountpoint,
		Archive:        a,
		SingleThreaded: mountSingleThreaded,
		Logger:         slog.Default(),
	})
	if err != nil {
		_ = a.Close()
		return fmt.Errorf("mounting %s: %w", wadPath, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("unmounting", "mountpoint", mountpoint)
		_ = server.Unmount()
	}()

	server.Wait()

	if err := a.Close(); err != nil {
		return fmt.Errorf("saving %s: %w", wadPath, err)
	}

	return nil
}
