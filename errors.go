// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package wad

import "errors"

// ErrNilArchive means a method was called on a nil *Archive.
var ErrNilArchive = errors.New("archive is nil")

// ErrClosed means the archive was already closed.
var ErrClosed = errors.New("archive already closed")
