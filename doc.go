// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

/*
Package wad parses, mutates, and re-serializes WAD archives: flat
descriptor-table containers whose directory structure is inferred rather
than stored explicitly.

A WAD file is a header, a blob of lump (content) bytes, and a descriptor
table of (offset, length, 8-byte name) records. There is no tree encoded
anywhere in the file; directory boundaries are recovered from two naming
idioms while the descriptors are scanned in order:

  - a pair of zero-length markers named "NAME_START" / "NAME_END" brackets
    an explicit namespace directory;
  - a descriptor named "E<digit>M<digit>" (a "map marker") opens an implicit
    directory whose children are the contiguous run of descriptors that
    immediately follow it, with no closing marker.

# Loading

	a, err := wad.Load("doom.wad")
	if err != nil {
	    return err
	}
	defer a.Close()

	if a.IsContent("/E1M1/THINGS") {
	    size := a.GetSize("/E1M1/THINGS")
	    buf := make([]byte, size)
	    a.GetContents("/E1M1/THINGS", buf, size, 0)
	}

# Mutating

Archives accept new, empty directories and files, and a single first write
per file; lumps are never rewritten once they carry content:

	a.CreateDirectory("/XX")
	a.CreateFile("/XX/LUMP")
	a.WriteToFile("/XX/LUMP", []byte("hello"), 5, 0)

# Saving

Close serializes the current tree back to the archive's original path,
truncating and replacing whatever was there. There is no implicit
periodic flush and no destructor in Go, so Close (typically deferred
immediately after Load succeeds) is the only point at which the save
runs; see Archive.Close.
*/
package wad
