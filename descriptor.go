// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package wad

import "io"

// descriptor is the raw, un-interpreted form of one descriptor-table record.
type descriptor struct {
	offset        uint32
	length        uint32
	name          string
	trailingSlash bool
}

// readDescriptors reads up to count fixed-size descriptor records starting
// at absolute offset tableOffset. A short read (truncated archive) is not
// an error: whatever descriptors parsed fully are returned, and the rest
// are silently dropped (§4.2, §7 "malformed archive is tolerated").
func readDescriptors(ra io.ReaderAt, tableOffset int64, count uint32) []descriptor {
	if count == 0 {
		return nil
	}

	out := make([]descriptor, 0, count)
	buf := make([]byte, descriptorSize)

	for i := uint32(0); i < count; i++ {
		off := tableOffset + int64(i)*descriptorSize
		n, err := ra.ReadAt(buf, off)
		if n < descriptorSize {
			break
		}

		name, trailingSlash := decodeName(buf[8:16])
		out = append(out, descriptor{
			offset:        getUint32(buf[0:4]),
			length:        getUint32(buf[4:8]),
			name:          name,
			trailingSlash: trailingSlash,
		})

		if err != nil {
			break
		}
	}

	return out
}
