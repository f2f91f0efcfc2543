// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package wad

import (
	"bytes"
	"io"
	"os"
)

// emittedDescriptor is a descriptor record staged for the table, with its
// data-blob offset already resolved.
type emittedDescriptor struct {
	offset uint32
	length uint32
	name   string
}

// save serializes the current tree to a's original path: header, then data
// blob, then descriptor table, in that order (§4.6). The destination file
// is truncated before writing.
func (a *Archive) save() error {
	var blob bytes.Buffer
	var descriptors []emittedDescriptor

	for _, child := range a.root.children {
		a.emitNode(child, &blob, &descriptors)
	}

	out, err := os.Create(a.path)
	if err != nil {
		return err
	}
	defer out.Close()

	header := make([]byte, headerSize)
	copy(header[0:magicSize], a.magic)
	putUint32(header[4:8], uint32(len(descriptors)))
	putUint32(header[8:12], uint32(headerSize+blob.Len()))

	if _, err := out.Write(header); err != nil {
		return err
	}
	if _, err := out.Write(blob.Bytes()); err != nil {
		return err
	}

	table := make([]byte, 0, len(descriptors)*descriptorSize)
	for _, d := range descriptors {
		var rec [descriptorSize]byte
		putUint32(rec[0:4], d.offset)
		putUint32(rec[4:8], d.length)
		nameField := encodeName(d.name, false)
		copy(rec[8:16], nameField[:])
		table = append(table, rec[:]...)
	}

	if _, err := out.Write(table); err != nil {
		return err
	}

	return nil
}

// emitNode appends n (and, for directories, its subtree) to blob and
// descriptors, following the per-node emission rules of §4.6.
func (a *Archive) emitNode(n *Node, blob *bytes.Buffer, descriptors *[]emittedDescriptor) {
	cursor := func() uint32 { return uint32(headerSize + blob.Len()) }

	switch {
	case n.kind == nodeDirectory && n.dir == dirNamespace:
		*descriptors = append(*descriptors, emittedDescriptor{offset: cursor(), length: 0, name: n.name})
		for _, c := range n.children {
			a.emitNode(c, blob, descriptors)
		}
		*descriptors = append(*descriptors, emittedDescriptor{offset: cursor(), length: 0, name: n.CleanName() + namespaceEnd})

	case n.kind == nodeDirectory && n.dir == dirMap:
		*descriptors = append(*descriptors, emittedDescriptor{offset: cursor(), length: 0, name: n.name})
		for _, c := range n.children {
			a.emitNode(c, blob, descriptors)
		}

	default:
		offset := cursor()
		*descriptors = append(*descriptors, emittedDescriptor{offset: offset, length: n.length, name: n.name})
		blob.Write(a.contentBytes(n))
	}
}

// contentBytes returns exactly n.length bytes for n's data blob slot:
// the resident buffer if it already matches n.length; otherwise a
// positioned re-read from the original archive at n's recorded source
// offset, zero-filling any shortfall (§4.6).
func (a *Archive) contentBytes(n *Node) []byte {
	if uint32(len(n.data)) == n.length {
		return n.data
	}

	out := make([]byte, n.length)
	if n.sourceLength == 0 || a.file == nil {
		return out
	}

	read, err := a.file.ReadAt(out, int64(n.sourceOffset))
	if err != nil && err != io.EOF && read < len(out) {
		return out
	}

	return out
}
