// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

import (
	"bytes"
	"encoding/binary"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestReadHeader(t *testing.T) {
	c := qt.New(t)

	buf := buildHeader(3264, 2176)
	buf[headerExtendedTypeOffset+5] = 7
	binary.LittleEndian.PutUint32(buf[headerExtendedValueOffset+5*4:], 0xcafef00d)

	r := newByteReader(bytes.NewReader(buf))
	h, err := readHeader(r)
	c.Assert(err, qt.IsNil)

	c.Assert(h.VerMajor, qt.Equals, uint16(4))
	c.Assert(h.VerMinor, qt.Equals, uint16(6))
	c.Assert(h.Columns, qt.Equals, uint32(3264))
	c.Assert(h.Rows, qt.Equals, uint32(2176))
	c.Assert(h.Extended[5].Type, qt.Equals, uint8(7))
	c.Assert(h.Extended[5].Value, qt.Equals, uint32(0xcafef00d))
}

func TestReadHeaderBadMagic(t *testing.T) {
	c := qt.New(t)

	buf := buildHeader(100, 100)
	buf[0] = 'X'

	r := newByteReader(bytes.NewReader(buf))
	_, err := readHeader(r)
	c.Assert(err, qt.Not(qt.IsNil))
	c.Assert(IsKind(err, KindNotX3F), qt.IsTrue)
}
