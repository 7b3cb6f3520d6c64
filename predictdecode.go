// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

// decodePredictiveRows runs the 2x2-predictor Huffman decode shared by the
// mode-30 image planes and the type-4 CAMF payload. It walks
// rows*cols samples in row-major order, seeding the first two columns of
// each row-parity class from predictor, and otherwise carrying the last
// value written for the same column parity. emit is called with the
// running (not residual) value for every sample, in order.
func decodePredictiveRows(tree *huffTree, predictor int32, encoded []byte, rows, cols int, emit func(row, col int, val int32) error) error {
	it := newBitIterator(encoded)

	var rowBegin [2][2]int32
	for i := range rowBegin {
		for j := range rowBegin[i] {
			rowBegin[i][j] = predictor
		}
	}

	var val [2]int32

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			var old int32
			if col < 2 {
				old = rowBegin[row&1][col&1]
			} else {
				old = val[col&1]
			}

			res, err := tree.decodeSymbol(it)
			if err != nil {
				return err
			}

			old += res
			val[col&1] = old

			if col < 2 {
				rowBegin[row&1][col&1] = val[col&1]
			}

			if err := emit(row, col, val[col&1]); err != nil {
				return err
			}
		}
	}

	return nil
}
