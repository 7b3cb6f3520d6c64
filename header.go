// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

import (
	"encoding/binary"
	"fmt"
)

var fileMagic = [4]byte{0x46, 0x4F, 0x56, 0x62} // "FOVb"

const (
	headerVerOffset           = 4
	headerIDOffset            = 8
	headerMarkOffset          = 24
	headerColumnsOffset       = 28
	headerRowsOffset          = 32
	headerRotationOffset      = 36
	headerWhiteBalanceOffset  = 40
	headerExtendedTypeOffset  = 104
	headerExtendedValueOffset = 136

	numExtendedAttribs = 32

	// headerLen is the number of bytes this implementation reads for the
	// header block. The format's own field layout (extended values start
	// at byte 136 and run for 32 4-byte words) needs 264 bytes, two more
	// words than the nominal 256-byte "full header" the original C source
	// declares its read buffer as — that source indexes past the end of
	// its own 256-byte array for the last few extended-value slots. We
	// read the size the layout actually requires instead of reproducing
	// the out-of-bounds read.
	headerLen = headerExtendedValueOffset + numExtendedAttribs*4
)

// ExtendedAttrib names one of the 32 adjustment slots in the header.
type ExtendedAttrib struct {
	Type  uint8
	Value uint32
}

// Header holds the fixed-layout fields read from the start of an X3F file.
type Header struct {
	VerMajor uint16
	VerMinor uint16

	ID [16]byte

	Mark     uint32
	Columns  uint32
	Rows     uint32
	Rotation uint32

	WhiteBalance [32]byte

	Extended [numExtendedAttribs]ExtendedAttrib
}

func (h *Header) String() string {
	return fmt.Sprintf("X3F v%d.%d %dx%d rotation=%d", h.VerMajor, h.VerMinor, h.Columns, h.Rows, h.Rotation)
}

func readHeader(r *byteReader) (*Header, error) {
	if err := r.seek(0, SeekStart); err != nil {
		return nil, err
	}
	buf, err := r.read(headerLen)
	if err != nil {
		return nil, err
	}

	if [4]byte(buf[0:4]) != fileMagic {
		return nil, newErrf(KindNotX3F, "bad magic %x, expected %x", buf[0:4], fileMagic[:])
	}

	ver := binary.LittleEndian.Uint32(buf[headerVerOffset:])

	h := &Header{
		VerMajor: uint16(ver >> 16),
		VerMinor: uint16(ver & 0xffff),
		Mark:     binary.LittleEndian.Uint32(buf[headerMarkOffset:]),
		Columns:  binary.LittleEndian.Uint32(buf[headerColumnsOffset:]),
		Rows:     binary.LittleEndian.Uint32(buf[headerRowsOffset:]),
		Rotation: binary.LittleEndian.Uint32(buf[headerRotationOffset:]),
	}
	copy(h.ID[:], buf[headerIDOffset:headerIDOffset+16])
	copy(h.WhiteBalance[:], buf[headerWhiteBalanceOffset:headerWhiteBalanceOffset+32])

	for i := 0; i < numExtendedAttribs; i++ {
		h.Extended[i].Type = buf[headerExtendedTypeOffset+i]
		h.Extended[i].Value = binary.LittleEndian.Uint32(buf[headerExtendedValueOffset+i*4:])
	}

	return h, nil
}
