// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

import "encoding/binary"

// huffmanModeType is the format identifier for the special 1024-entry
// Huffman-compressed mode.
const huffmanModeType = 30

// huffmanImageState is the per-image state computed by huffmanImageMode's
// Setup: the four predictor seeds, the shared decode tree, and where the
// three encoded planes begin.
type huffmanImageState struct {
	predictor [4]uint16
	tree      *huffTree
	planeSize [3]uint32
	startOff  int64
}

// huffmanImageMode implements ImageMode for format 30, the Foveon X3
// direct-sensor mode: three planes of 2x2-predicted, Huffman-coded 16-bit
// samples, described by a single in-band code table.
type huffmanImageMode struct{}

func (huffmanImageMode) Type() uint32 { return huffmanModeType }
func (huffmanImageMode) Name() string { return "Special Huffman compression (1024-entry)" }

func (huffmanImageMode) Setup(r *byteReader, img *Image) error {
	if err := r.seek(int64(img.dataOffset), SeekStart); err != nil {
		return err
	}

	hdr, err := r.read(8)
	if err != nil {
		return err
	}

	st := &huffmanImageState{}
	for i := 0; i < 4; i++ {
		st.predictor[i] = binary.LittleEndian.Uint16(hdr[i*2:])
	}

	tree, err := readHuffTable(r)
	if err != nil {
		return err
	}
	st.tree = tree

	for i := 0; i < 3; i++ {
		sz, err := r.readU32LE()
		if err != nil {
			return err
		}
		st.planeSize[i] = sz
	}

	off, err := r.tell()
	if err != nil {
		return err
	}
	st.startOff = int64(off)

	img.modeInfo = st
	return nil
}

func (huffmanImageMode) checkRead(img *Image, x, y, w, h uint32) error {
	if x != 0 || y != 0 {
		return newErrf(KindRange, "huffman mode only supports full-frame reads")
	}
	if w != img.Columns || h != img.Rows {
		return newErrf(KindRange, "huffman mode only supports full-frame reads: got %dx%d, want %dx%d", w, h, img.Columns, img.Rows)
	}
	return nil
}

func (m huffmanImageMode) ReadImage(r *byteReader, img *Image, x, y, w, h uint32, buf []byte) error {
	if err := m.checkRead(img, x, y, w, h); err != nil {
		return err
	}

	st, ok := img.modeInfo.(*huffmanImageState)
	if !ok || st == nil {
		return ErrNotInitialized
	}

	needed := int(img.Rows) * int(img.Columns) * 3 * 2
	if len(buf) < needed {
		return newErrf(KindBadArg, "buffer too small: have %d bytes, need %d", len(buf), needed)
	}

	if err := r.seek(st.startOff, SeekStart); err != nil {
		return err
	}

	for plane := 0; plane < 3; plane++ {
		// Encoded plane data is padded up to a 16-byte boundary.
		paddedSize := ((st.planeSize[plane] + 15) / 16) * 16

		encoded, err := r.read(int(paddedSize))
		if err != nil {
			return err
		}

		planeBuf := buf[plane*int(img.Rows)*int(img.Columns)*2:]
		emit := func(row, col int, val int32) error {
			v := uint16(val)
			// Byte-swap the running 16-bit value into the output stream.
			swapped := (v >> 8) | (v << 8)
			idx := (row*int(img.Columns) + col) * 2
			binary.LittleEndian.PutUint16(planeBuf[idx:], swapped)
			return nil
		}

		if err := decodePredictiveRows(st.tree, int32(st.predictor[plane]), encoded, int(img.Rows), int(img.Columns), emit); err != nil {
			return err
		}
	}

	return nil
}

func (huffmanImageMode) MinReadBlock(img *Image) (cols, rows uint32, err error) {
	return img.Columns, img.Rows, nil
}
