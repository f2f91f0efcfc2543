// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

// Package fsadapter presents a wad.Archive as a FUSE filesystem.
//
// It is a thin translator from path-based host callbacks to the
// library's public surface: there is exactly one resident node type,
// and every lookup, readdir, read, and write re-queries the archive by
// full path rather than mirroring its own copy of the tree. The archive
// itself is the only source of truth, matching the contract that the
// library's package never gains a FUSE dependency.
package fsadapter
