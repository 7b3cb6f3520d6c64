// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

import (
	"encoding/binary"
	"io"
)

// Whence selects the reference point for Seek, mirroring io.Seeker's
// constants under X3F-flavored names.
type Whence int

const (
	// SeekStart seeks relative to the start of the file.
	SeekStart Whence = iota
	// SeekCurrent seeks relative to the current offset.
	SeekCurrent
	// SeekEnd seeks relative to the end of the file.
	SeekEnd
)

// byteReader wraps an io.ReadSeeker and exposes the seek/read/tell surface
// an X3F reader needs. All multi-byte fields in the format are little-endian
// and read without any alignment assumption.
type byteReader struct {
	r   io.ReadSeeker
	buf []byte
}

func newByteReader(r io.ReadSeeker) *byteReader {
	return &byteReader{r: r}
}

func (b *byteReader) seek(offset int64, whence Whence) error {
	var w int
	switch whence {
	case SeekStart:
		w = io.SeekStart
	case SeekCurrent:
		w = io.SeekCurrent
	case SeekEnd:
		w = io.SeekEnd
	default:
		return newErrf(KindBadArg, "invalid whence %d", whence)
	}
	if _, err := b.r.Seek(offset, w); err != nil {
		return newErr(KindCantSeek, err)
	}
	return nil
}

func (b *byteReader) tell() (uint64, error) {
	off, err := b.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, newErr(KindCantSeek, err)
	}
	return uint64(off), nil
}

// size returns the total length of the underlying stream, restoring the
// current offset afterwards.
func (b *byteReader) size() (int64, error) {
	cur, err := b.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, newErr(KindCantSeek, err)
	}
	end, err := b.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, newErr(KindCantSeek, err)
	}
	if _, err := b.r.Seek(cur, io.SeekStart); err != nil {
		return 0, newErr(KindCantSeek, err)
	}
	return end, nil
}

// read reads exactly n bytes, returning a *Error with KindCantSeek on any
// short read or underlying I/O failure.
func (b *byteReader) read(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return nil, newErr(KindCantSeek, err)
	}
	return buf, nil
}

// readInto reads exactly len(buf) bytes into buf.
func (b *byteReader) readInto(buf []byte) error {
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return newErr(KindCantSeek, err)
	}
	return nil
}

func (b *byteReader) readU8() (uint8, error) {
	buf, err := b.read(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (b *byteReader) readU16LE() (uint16, error) {
	buf, err := b.read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

func (b *byteReader) readU32LE() (uint32, error) {
	buf, err := b.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}
