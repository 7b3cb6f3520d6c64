// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

import (
	"golang.org/x/text/encoding/unicode"
)

var utf16LEDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// utf16LEToUTF8 decodes a NUL-terminated UTF-16LE string starting at the
// given byte offset within buf, stopping at the first zero code unit (or
// the end of buf). An empty result is returned, not an error, when the
// string is zero-length.
func utf16LEToUTF8(buf []byte, offset uint32) (string, error) {
	if int(offset) >= len(buf) {
		return "", newErrf(KindRange, "utf-16 offset %d out of range (buf len %d)", offset, len(buf))
	}

	raw := buf[offset:]
	end := 0
	for end+1 < len(raw) {
		if raw[end] == 0 && raw[end+1] == 0 {
			break
		}
		end += 2
	}

	if end == 0 {
		return "", nil
	}

	out, err := utf16LEDecoder.Bytes(raw[:end])
	if err != nil {
		return "", newErr(KindRange, err)
	}
	return string(out), nil
}
