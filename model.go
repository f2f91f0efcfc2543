// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package wad

import "strings"

// Internal binary layout constants.
const (
	headerSize     = 12 // magic(4) + descriptor count(4) + descriptor table offset(4)
	descriptorSize = 16 // offset(4) + length(4) + name(8)
	nameFieldSize  = 8
	magicSize      = 4
	namespaceStart = "_START"
	namespaceEnd   = "_END"
	maxDirNameLen  = 2 // createDirectory's last component length limit
	maxFileNameLen = 8 // createFile's filename length limit
)

// nodeKind distinguishes a directory node from a content (lump) node.
type nodeKind uint8

const (
	nodeDirectory nodeKind = iota
	nodeContent
)

// dirKind records which naming idiom produced a directory node, so the
// serializer knows whether to close it with an "_END" marker, a bare map
// marker with no closer, or (for root) nothing at all.
type dirKind uint8

const (
	dirRoot dirKind = iota
	dirNamespace
	dirMap
)

// Node is one entry in the in-memory archive tree. Every node but root has
// exactly one parent, and appears in the owning Archive's path index under
// its clean absolute path (invariants 1-2 in the spec's data model).
type Node struct {
	// name is the stored form: "_START" suffix retained for namespace
	// directories, the map marker retained verbatim for map directories,
	// the lump name verbatim for content nodes, "" for root.
	name string

	kind nodeKind
	dir  dirKind // meaningful only when kind == nodeDirectory

	parent   *Node
	children []*Node

	// sourceOffset/sourceLength are the descriptor's original values as
	// loaded from the archive. They remain valid even after data has been
	// paged out of the resident buffer; the serializer falls back to them
	// to re-read untouched content.
	sourceOffset uint32
	sourceLength uint32

	// length is the node's current logical size. For directories this is
	// always zero. For content nodes it equals len(data) once the node
	// has been loaded or written to (invariant 3).
	length uint32

	// data is the resident buffer: populated from the source archive at
	// load time for non-empty lumps, or grown in place by WriteToFile.
	data []byte

	// trailingSlash records whether this name's on-disk encoding carried
	// a trailing '/' byte (a historical WAD variant). Preserved for
	// round-trip inspection; the serializer never re-emits it (§9 design
	// note (b) / DESIGN.md).
	trailingSlash bool
}

// IsDirectory reports whether n is a directory node.
func (n *Node) IsDirectory() bool { return n.kind == nodeDirectory }

// CleanName returns n's user-visible name: "_START"/"_END" suffixes
// stripped, map markers and content names verbatim.
func (n *Node) CleanName() string { return cleanName(n.name) }

// cleanName strips a namespace marker suffix from name, if present.
func cleanName(name string) string {
	if isNamespaceStartName(name) {
		return name[:len(name)-len(namespaceStart)]
	}
	if isNamespaceEndName(name) {
		return name[:len(name)-len(namespaceEnd)]
	}
	return name
}

// isNamespaceStartName reports whether name is a namespace-start marker:
// suffix "_START", and non-empty before the suffix (len > 6).
func isNamespaceStartName(name string) bool {
	return len(name) > len(namespaceStart) && strings.HasSuffix(name, namespaceStart)
}

// isNamespaceEndName reports whether name is a namespace-end marker:
// suffix "_END", and non-empty before the suffix (len > 4).
func isNamespaceEndName(name string) bool {
	return len(name) > len(namespaceEnd) && strings.HasSuffix(name, namespaceEnd)
}

// isMapMarkerName reports whether name has the four-character "E<digit>M<digit>" shape.
func isMapMarkerName(name string) bool {
	if len(name) != 4 {
		return false
	}
	return name[0] == 'E' && isASCIIDigit(name[1]) && name[2] == 'M' && isASCIIDigit(name[3])
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }
