// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

import "encoding/binary"

// buildHeader returns a headerLen-byte buffer populated the way a real
// file's fixed header would be, for tests that need a byteReader over a
// synthetic file.
func buildHeader(columns, rows uint32) []byte {
	buf := make([]byte, headerLen)
	copy(buf[0:4], fileMagic[:])
	binary.LittleEndian.PutUint32(buf[headerVerOffset:], (4<<16)|6) // v4.6
	binary.LittleEndian.PutUint32(buf[headerColumnsOffset:], columns)
	binary.LittleEndian.PutUint32(buf[headerRowsOffset:], rows)
	return buf
}

// appendDirectory appends a "SECd" directory trailer describing entries
// (whose Offset fields the caller must already have set relative to the
// buffer being built) and returns the extended buffer, which ends with the
// 4-byte trailing pointer a reader would consume first.
func appendDirectory(buf []byte, entries []DirectoryEntry) []byte {
	dirOffset := uint32(len(buf))

	buf = append(buf, dirMagic[:]...)
	buf = appendU32(buf, 1) // version

	buf = appendU32(buf, uint32(len(entries)))
	for _, e := range entries {
		buf = appendU32(buf, e.Offset)
		buf = appendU32(buf, e.Length)
		buf = appendU32(buf, uint32(e.Type))
	}

	buf = appendU32(buf, dirOffset)
	return buf
}

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendU16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

// encodeUTF16LE encodes an ASCII string as UTF-16LE, optionally NUL
// terminated, for building synthetic property/array-name string pools.
func encodeUTF16LE(s string, terminate bool) []byte {
	out := make([]byte, 0, len(s)*2+2)
	for _, r := range s {
		out = appendU16(out, uint16(r))
	}
	if terminate {
		out = appendU16(out, 0)
	}
	return out
}
