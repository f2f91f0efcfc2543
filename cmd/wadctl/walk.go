// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package main

import (
	"strings"

	wad "github.com/tindalos/wadfs"
)

// walkEntry is one content lump discovered while walking an archive tree.
type walkEntry struct {
	path string
	size int
}

// walkContents visits every content lump reachable from root, in
// directory order, via repeated getDirectory calls.
func walkContents(a *wad.Archive, root string) []walkEntry {
	var out []walkEntry
	walk(a, root, &out)
	return out
}

func walk(a *wad.Archive, path string, out *[]walkEntry) {
	var names []string
	if a.GetDirectory(path, &names) < 0 {
		return
	}

	for _, name := range names {
		// The archive normalizes "." and ".." away, so such a child would
		// resolve back to an ancestor and the walk would never end.
		if name == "." || name == ".." {
			continue
		}
		child := joinPath(path, name)
		switch {
		case a.IsDirectory(child):
			walk(a, child, out)
		case a.IsContent(child):
			*out = append(*out, walkEntry{path: child, size: a.GetSize(child)})
		}
	}
}

func joinPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

// sanitizeRelative strips the leading slash and rejects any component
// that could escape the extraction root. Names come from an 8-byte field,
// but a lump name may itself contain '/' (for example "../x"), so every
// component is checked here rather than trusted implicitly.
func sanitizeRelative(path string) (string, bool) {
	trimmed := strings.TrimPrefix(path, "/")
	for _, part := range strings.Split(trimmed, "/") {
		if part == "" || part == "." || part == ".." {
			return "", false
		}
	}
	return trimmed, true
}
