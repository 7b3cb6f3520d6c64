// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

import "encoding/binary"

const (
	camfHeaderLen       = 28
	camfHeaderType      = 8
	camfHeaderPredictor = 16
	camfHeaderBlockCnt  = 20
	camfHeaderBlockSize = 24 // shared offset: block size for type 4, cipher key for types 2/3
)

// CAMF holds the decrypted, record-parsed camera adjustment/calibration
// data carried by a file's CAMF section.
type CAMF struct {
	Type      uint32
	Key       uint32
	Predictor uint32
	BlockSize uint32
	BlockCnt  uint32

	records *recordSet
}

// GetArray looks up a named array record and reports whether it was
// found.
func (c *CAMF) GetArray(name string) (*ArrayRecord, bool) {
	if c == nil || c.records == nil {
		return nil, false
	}
	return c.records.get(name)
}

// readCAMF reads the 28-byte CAMF section header, decrypts its payload
// using the scheme its type selects, and scans the result for CMbM array
// records.
func readCAMF(r *byteReader, entry DirectoryEntry, maxRecordBytes int) (*CAMF, error) {
	if err := r.seek(int64(entry.Offset), SeekStart); err != nil {
		return nil, err
	}
	hdr, err := r.read(camfHeaderLen)
	if err != nil {
		return nil, err
	}

	c := &CAMF{
		Type:      binary.LittleEndian.Uint32(hdr[camfHeaderType:]),
		Predictor: binary.LittleEndian.Uint32(hdr[camfHeaderPredictor:]),
		BlockCnt:  binary.LittleEndian.Uint32(hdr[camfHeaderBlockCnt:]),
	}
	// Types 2/3 read this word as the cipher key; type 4 reads it as the
	// per-block sample count. Both fields share the same on-disk slot.
	shared := binary.LittleEndian.Uint32(hdr[camfHeaderBlockSize:])
	c.Key = shared
	c.BlockSize = shared

	if entry.Length < camfHeaderLen {
		return nil, newErrf(KindRange, "camf section shorter than its own header")
	}
	rawSize := entry.Length - camfHeaderLen

	data, err := r.read(int(rawSize))
	if err != nil {
		return nil, err
	}

	var decoded []byte
	switch c.Type {
	case 2, 3:
		oldCAMFDecrypt(c.Key, data)
		decoded = data
	default: // type 4 and any other value, matching the original's default case
		decoded, err = decodeCAMFType4(c, data)
		if err != nil {
			return nil, err
		}
	}

	records, err := scanRecords(decoded, maxRecordBytes)
	if err != nil {
		return nil, err
	}
	c.records = records

	return c, nil
}
