// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

import (
	"bytes"
	"testing"

	qt "github.com/frankban/quicktest"
)

// buildCAMFSection assembles a full CAMF section: the 28-byte header
// followed by payload, for the given type/key/predictor/blockSize/blockCnt.
func buildCAMFSection(typ, key, predictor, blockSize, blockCnt uint32, payload []byte) []byte {
	// Types 2/3 keep the cipher key in the shared slot; every other type
	// keeps the block size there, as readCAMF interprets it.
	shared := key
	if typ != 2 && typ != 3 {
		shared = blockSize
	}

	var buf []byte
	buf = appendU32(buf, 0x464d4143) // "CAMF", unused by the reader
	buf = appendU32(buf, 0)          // +4, unused by the reader
	buf = appendU32(buf, typ)        // +8
	buf = appendU32(buf, 0)          // +12, unused by the reader
	buf = appendU32(buf, predictor)  // +16
	buf = appendU32(buf, blockCnt)   // +20
	buf = appendU32(buf, shared)     // +24, shared block-size/key slot
	buf = append(buf, payload...)
	return buf
}

func TestReadCAMFOldCipher(t *testing.T) {
	c := qt.New(t)

	plain := buildCMbMRecord("SERIAL", []uint32{7})
	cipher := append([]byte(nil), plain...)
	oldCAMFDecrypt(0xabcd1234, cipher)

	section := buildCAMFSection(2, 0xabcd1234, 0, 0, 0, cipher)
	r := newByteReader(bytes.NewReader(section))

	camf, err := readCAMF(r, DirectoryEntry{Offset: 0, Length: uint32(len(section))}, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(camf.Type, qt.Equals, uint32(2))

	rec, ok := camf.GetArray("SERIAL")
	c.Assert(ok, qt.IsTrue)
	c.Assert(rec.Uint32s(), qt.DeepEquals, []uint32{7})
}

func TestReadCAMFType4(t *testing.T) {
	c := qt.New(t)

	tree := newTestTree()
	_ = tree

	// An always-zero-residual table, matching the one built in image_test.go,
	// so block_size=2, block_count=2 samples decode to the predictor (5).
	table := []byte{1, 0x00, 0, 0}
	var payload []byte
	payload = append(payload, table...)
	payload = append(payload, 0, 0, 0, 0) // 4-byte pad after the table
	payload = append(payload, bitsToBytes("000000000000")...)

	section := buildCAMFSection(4, 0, 5, 2, 2, payload)
	r := newByteReader(bytes.NewReader(section))

	camf, err := readCAMF(r, DirectoryEntry{Offset: 0, Length: uint32(len(section))}, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(camf.Type, qt.Equals, uint32(4))
}

func TestReadCAMFHeaderTooShortIsError(t *testing.T) {
	c := qt.New(t)

	section := make([]byte, camfHeaderLen-1)
	r := newByteReader(bytes.NewReader(section))
	_, err := readCAMF(r, DirectoryEntry{Offset: 0, Length: uint32(len(section))}, 0)
	c.Assert(err, qt.Not(qt.IsNil))
}
