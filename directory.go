// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

import "encoding/binary"

var dirMagic = [4]byte{0x53, 0x45, 0x43, 0x64} // "SECd"

// SectionType identifies the payload format of a DirectoryEntry.
type SectionType uint32

const (
	// SectionImage is the "IMAG" raw/thumbnail image section type.
	SectionImage SectionType = 0x47414d49 // "IMAG" little-endian read as u32
	// SectionImage2 is the "IMA2" variant some bodies emit for the same payload.
	SectionImage2 SectionType = 0x32414d49 // "IMA2"
	// SectionCAMF carries camera adjustment/calibration data.
	SectionCAMF SectionType = 0x464d4143 // "CAMF"
	// SectionProperty carries the UTF-16 name/value property table.
	SectionProperty SectionType = 0x504f5250 // "PROP"
)

// DirectoryEntry locates one section's payload within the file and names
// its type.
type DirectoryEntry struct {
	Offset uint32
	Length uint32
	Type   SectionType
}

// Directory is the trailer-indexed table of section entries a file carries.
// Entries preserve on-disk order.
type Directory struct {
	Version uint32
	entries []DirectoryEntry
}

// Entries returns the directory's entries in on-disk order.
func (d *Directory) Entries() []DirectoryEntry {
	return d.entries
}

// readDirectory locates and parses the directory trailer: a u32 file offset
// stored in the last 4 bytes of the file, pointing at a "SECd" section with
// a version word and an entry count followed by that many (offset, length,
// type) triples.
func readDirectory(r *byteReader, maxEntries int) (*Directory, error) {
	fileLen, err := r.size()
	if err != nil {
		return nil, err
	}
	if fileLen < 4 {
		return nil, newErrf(KindNotX3F, "file too small to hold a directory pointer")
	}

	if err := r.seek(-4, SeekEnd); err != nil {
		return nil, err
	}
	dirOffset, err := r.readU32LE()
	if err != nil {
		return nil, err
	}

	if err := r.seek(int64(dirOffset), SeekStart); err != nil {
		return nil, err
	}

	magic, err := r.read(4)
	if err != nil {
		return nil, err
	}
	if [4]byte(magic) != dirMagic {
		return nil, newErrf(KindNotX3F, "bad directory magic %x, expected %x", magic, dirMagic[:])
	}

	version, err := r.readU32LE()
	if err != nil {
		return nil, err
	}

	count, err := r.readU32LE()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, newErrf(KindRange, "directory declares zero entries")
	}
	if maxEntries > 0 && int(count) > maxEntries {
		return nil, newErrf(KindRange, "directory entry count %d exceeds limit %d", count, maxEntries)
	}

	d := &Directory{Version: version}
	buf, err := r.read(int(count) * 12)
	if err != nil {
		return nil, err
	}
	d.entries = make([]DirectoryEntry, count)
	for i := range d.entries {
		off := i * 12
		e := DirectoryEntry{
			Offset: binary.LittleEndian.Uint32(buf[off:]),
			Length: binary.LittleEndian.Uint32(buf[off+4:]),
			Type:   SectionType(binary.LittleEndian.Uint32(buf[off+8:])),
		}
		if uint64(e.Offset)+uint64(e.Length) > uint64(fileLen) {
			return nil, newErrf(KindRange, "directory entry %d at offset %d, length %d lies outside file bounds (%d bytes)", i, e.Offset, e.Length, fileLen)
		}
		d.entries[i] = e
	}

	return d, nil
}
