// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Tindalos Authors

package wad

import "encoding/binary"

// putUint32 writes v little-endian into dst[0:4].
func putUint32(dst []byte, v uint32) {
	binary.LittleEndian.PutUint32(dst, v)
}

// getUint32 reads a little-endian uint32 from src[0:4].
func getUint32(src []byte) uint32 {
	return binary.LittleEndian.Uint32(src)
}

// encodeName renders name into a fixed 8-byte field: left-justified,
// NUL-padded, truncated to nameFieldSize if longer. If trailingSlash is
// set and the name still fits with the slash appended, the slash is
// written; otherwise it is dropped (§4.1).
func encodeName(name string, trailingSlash bool) [nameFieldSize]byte {
	var out [nameFieldSize]byte

	encoded := name
	if trailingSlash && len(encoded)+1 <= nameFieldSize {
		encoded += "/"
	}
	if len(encoded) > nameFieldSize {
		encoded = encoded[:nameFieldSize]
	}
	copy(out[:], encoded)

	return out
}

// decodeName extracts a logical name and trailing-slash flag from an
// 8-byte descriptor name field: trailing NUL and space bytes are trimmed,
// and a surviving trailing '/' is stripped and reported separately (§4.1).
func decodeName(field []byte) (name string, trailingSlash bool) {
	n := len(field)
	for n > 0 && (field[n-1] == 0 || field[n-1] == ' ') {
		n--
	}

	if n > 0 && field[n-1] == '/' {
		return string(field[:n-1]), true
	}

	return string(field[:n]), false
}
