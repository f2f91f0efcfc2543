// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package main

import (
	"fmt"
	"io"
	"os"
)

// backupBeforeWrite copies path to path+".bak" before a mutating
// subcommand opens it read-write, giving an operator a recovery path
// since saving an archive unconditionally truncates and rewrites it.
func backupBeforeWrite(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s for backup: %w", path, err)
	}
	defer src.Close()

	dst, err := os.Create(path + ".bak")
	if err != nil {
		return fmt.Errorf("creating backup for %s: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("writing backup for %s: %w", path, err)
	}

	return nil
}
