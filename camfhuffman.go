// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

// decodeCAMFType4 unpacks a type-4 CAMF payload: an in-band Huffman table
// at the start of data, a 4-byte pad, then BlockSize rows of BlockCnt
// 2x2-predicted residuals packed 12 bits to a sample. The output buffer
// size (block_size*block_count*3)/2 bytes follows from the packing: two
// 12-bit samples pack into 3 bytes.
func decodeCAMFType4(c *CAMF, data []byte) ([]byte, error) {
	tree, consumed, err := readHuffTableFromBytes(data)
	if err != nil {
		return nil, err
	}

	encoded := data[consumed+4:]

	outSize := (int(c.BlockSize) * int(c.BlockCnt) * 3) / 2
	decoded := make([]byte, outSize)

	outPos := 0
	flip := false
	emit := func(row, col int, val int32) error {
		if outPos+1 >= len(decoded) {
			return newErrf(KindRange, "camf type4 decode overran output buffer")
		}
		if !flip {
			decoded[outPos] = byte((val >> 4) & 0xff)
			outPos++
			decoded[outPos] = byte((val << 4) & 0xf0)
		} else {
			decoded[outPos] |= byte((val >> 8) & 0x0f)
			outPos++
			decoded[outPos] = byte(val & 0xff)
			outPos++
		}
		flip = !flip
		return nil
	}

	// The predictor-decode's (rows, cols) shape here is (block_size,
	// block_count), not image geometry, matching the original's
	// x3f_decode_camf_type4(..., camf->block_size, camf->block_count) call.
	if err := decodePredictiveRows(tree, int32(c.Predictor), encoded, int(c.BlockSize), int(c.BlockCnt), emit); err != nil {
		return nil, err
	}

	return decoded, nil
}
