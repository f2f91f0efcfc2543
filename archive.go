// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package wad

import (
	"fmt"
	"os"
	"sync"
)

// Archive is a loaded, mutable WAD file. The in-memory tree is the sole
// source of truth between Load and Close; the open file handle is kept
// only to re-read untouched lump data when Close serializes (§5).
type Archive struct {
	path string
	file *os.File
	size int64

	magic string
	root  *Node
	index map[string]*Node

	mu     sync.Mutex
	closed bool
}

// Load opens the archive at path, parses its header and descriptor table,
// builds the in-memory tree, and eagerly reads resident content data.
// It reports absence (nil, error) if the file cannot be opened (§6.1).
func Load(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load wad: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("load wad: stat: %w", err)
	}

	a := &Archive{path: path, file: f, size: fi.Size()}
	a.parse()

	return a, nil
}

// parse reads the header and descriptor table and builds the tree. Any
// I/O failure at this stage is absorbed: the archive ends up with as much
// structure as could be recovered, per §7's "best effort" load policy.
func (a *Archive) parse() {
	header := make([]byte, headerSize)
	n, err := a.file.ReadAt(header, 0)
	if n < headerSize || (err != nil && n < headerSize) {
		a.root, a.index = buildTree(nil)
		return
	}

	a.magic = string(header[0:magicSize])
	descriptorCount := getUint32(header[4:8])
	descriptorOffset := getUint32(header[8:12])

	descriptors := readDescriptors(a.file, int64(descriptorOffset), descriptorCount)
	a.root, a.index = buildTree(descriptors)
	a.loadResidentData()
}

// loadResidentData reads every content node's bytes from the source
// archive into its resident buffer. A read failure clears the buffer but
// leaves the node and its recorded length intact (§4.3 "resident data
// loading"); the serializer zero-fills on emit in that case.
func (a *Archive) loadResidentData() {
	for _, n := range a.index {
		if n.kind != nodeContent || n.sourceLength == 0 {
			continue
		}

		buf := make([]byte, n.sourceLength)
		read, err := a.file.ReadAt(buf, int64(n.sourceOffset))
		if err != nil && read < len(buf) {
			n.data = nil
			continue
		}

		n.data = buf
	}
}

// Magic returns the archive's 4-byte identifier, or "" if unset (§6.1).
func (a *Archive) Magic() string {
	if a == nil {
		return ""
	}
	return a.magic
}

// lookup resolves path to its node, or nil if absent.
func (a *Archive) lookup(path string) *Node {
	if a == nil || a.index == nil {
		return nil
	}
	return a.index[normalizePath(path)]
}

// IsContent reports whether path names a content (lump) node.
func (a *Archive) IsContent(path string) bool {
	n := a.lookup(path)
	return n != nil && n.kind == nodeContent
}

// IsDirectory reports whether path names a directory node. An empty path
// is never a directory, matching the explicit spec carve-out (§6.1).
func (a *Archive) IsDirectory(path string) bool {
	if path == "" {
		return false
	}
	n := a.lookup(path)
	return n != nil && n.kind == nodeDirectory
}

// GetSize returns path's content length, or -1 if absent or a directory (§6.1).
func (a *Archive) GetSize(path string) int {
	n := a.lookup(path)
	if n == nil || n.kind != nodeContent {
		return -1
	}
	return int(n.length)
}

// GetContents copies up to length bytes of path's content into buffer
// starting at offset, returning the number of bytes copied. It returns -1
// for a nil buffer, a non-positive length, an absent path, or a directory;
// it returns 0 if offset is at or past the content's size (§6.1).
func (a *Archive) GetContents(path string, buffer []byte, length int, offset int) int {
	if buffer == nil || length <= 0 {
		return -1
	}

	n := a.lookup(path)
	if n == nil || n.kind != nodeContent {
		return -1
	}

	if offset < 0 || offset >= len(n.data) {
		return 0
	}

	available := len(n.data) - offset
	toCopy := length
	if available < toCopy {
		toCopy = available
	}
	if toCopy > len(buffer) {
		toCopy = len(buffer)
	}
	if toCopy <= 0 {
		return 0
	}

	copy(buffer[:toCopy], n.data[offset:offset+toCopy])
	return toCopy
}

// GetDirectory fills directory with path's children's clean names in
// insertion order, returning the count. It returns -1 for a nil
// directory, an empty path, an absent path, or a non-directory (§6.1).
func (a *Archive) GetDirectory(path string, directory *[]string) int {
	if directory == nil || path == "" {
		return -1
	}

	n := a.lookup(path)
	if n == nil || n.kind != nodeDirectory {
		return -1
	}

	names := make([]string, 0, len(n.children))
	for _, c := range n.children {
		names = append(names, c.CleanName())
	}

	*directory = names
	return len(names)
}

// Close serializes the current tree back to the archive's original path
// and releases the open file handle. This is the explicit stand-in for
// the save-on-destroy contract: Go has no deterministic destructor, so
// callers must call Close (typically deferred right after a successful
// Load) for mutations to be persisted (§5, §9).
func (a *Archive) Close() error {
	if a == nil {
		return ErrNilArchive
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	a.closed = true

	serializeErr := a.save()

	closeErr := a.file.Close()
	if serializeErr != nil {
		return serializeErr
	}
	return closeErr
}
