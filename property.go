// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

import "encoding/binary"

const (
	propHeaderLen      = 24
	propHeaderCount    = 8
	propHeaderLength   = 20
	propEntrySize      = 8
	propEntryValueOff  = 4
)

// Property is a single name/value pair from a property table section.
type Property struct {
	Name  string
	Value string
}

// PropertyTable holds the decoded name/value pairs of one PROP section, in
// on-disk order.
type PropertyTable struct {
	Entries []Property
}

// Get returns the value of the first property with the given name, and
// whether it was found.
func (t *PropertyTable) Get(name string) (string, bool) {
	for _, e := range t.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// readPropertyTable parses the property section located at entry: a 24-byte
// header giving an entry count and a string-pool length, followed by count
// (name_offset, value_offset) byte-offset pairs, followed by the UTF-16LE
// string pool those offsets index into.
func readPropertyTable(r *byteReader, entry DirectoryEntry) (*PropertyTable, error) {
	if err := r.seek(int64(entry.Offset), SeekStart); err != nil {
		return nil, err
	}

	hdr, err := r.read(propHeaderLen)
	if err != nil {
		return nil, err
	}

	poolLen := binary.LittleEndian.Uint32(hdr[propHeaderLength:])
	if poolLen == 0 {
		return nil, newErrf(KindRange, "property table declares zero-length string pool")
	}
	count := binary.LittleEndian.Uint32(hdr[propHeaderCount:])

	offsets, err := r.read(int(count) * propEntrySize)
	if err != nil {
		return nil, err
	}
	pool, err := r.read(int(poolLen))
	if err != nil {
		return nil, err
	}

	table := &PropertyTable{Entries: make([]Property, count)}
	for i := range table.Entries {
		off := i * propEntrySize
		nameOff := binary.LittleEndian.Uint32(offsets[off:])
		valOff := binary.LittleEndian.Uint32(offsets[off+propEntryValueOff:])

		name, err := utf16LEToUTF8(pool, nameOff)
		if err != nil {
			return nil, err
		}
		value, err := utf16LEToUTF8(pool, valOff)
		if err != nil {
			return nil, err
		}

		table.Entries[i] = Property{Name: name, Value: value}
	}

	return table, nil
}
