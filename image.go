// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

import "encoding/binary"

const (
	imagHeaderLen      = 28
	imagHeaderVersion  = 4
	imagHeaderType     = 8
	imagHeaderFormat   = 12
	imagHeaderColumns  = 16
	imagHeaderRows     = 20
	imagHeaderRowBytes = 24
)

var imageSectionMagic = [4]byte{0x53, 0x45, 0x43, 0x69} // "SECi", shared by IMAG and IMA2 bodies

// ImageMode decodes the pixel data of one image section format. Modes are
// registered on a ModeRegistry and looked up by Image.Format.
type ImageMode interface {
	// Type is the numeric format identifier this mode handles (the value
	// an IMAG/IMA2 section's header reports in its format field).
	Type() uint32
	// Name is a human-readable label for diagnostics.
	Name() string
	// Setup reads whatever per-image state the mode needs (tables,
	// offsets) and attaches it to img, ahead of any ReadImage call.
	Setup(r *byteReader, img *Image) error
	// ReadImage decodes the requested full-frame region into buf, which
	// must be sized for 3 planes of img.Rows*img.Columns 16-bit samples.
	ReadImage(r *byteReader, img *Image, x, y, w, h uint32, buf []byte) error
	// MinReadBlock reports the smallest region this mode can decode,
	// which for every mode implemented here is the full frame.
	MinReadBlock(img *Image) (cols, rows uint32, err error)
}

// ModeRegistry maps image format identifiers to the ImageMode that decodes
// them. Keeping this as an ordinary value rather than package-level global
// state lets a File's mode set be customized per Options.
type ModeRegistry struct {
	modes map[uint32]ImageMode
}

// NewModeRegistry returns an empty registry.
func NewModeRegistry() *ModeRegistry {
	return &ModeRegistry{modes: make(map[uint32]ImageMode)}
}

// DefaultModeRegistry returns a registry pre-populated with the modes this
// package implements (currently mode 30, the special 1024-entry Huffman
// compression).
func DefaultModeRegistry() *ModeRegistry {
	r := NewModeRegistry()
	r.Register(&huffmanImageMode{})
	return r
}

// Register adds or replaces the mode handling its own Type().
func (m *ModeRegistry) Register(mode ImageMode) {
	m.modes[mode.Type()] = mode
}

func (m *ModeRegistry) find(format uint32) (ImageMode, error) {
	mode, ok := m.modes[format]
	if !ok {
		return nil, newErrf(KindUnsupportedMode, "no image mode registered for format %d", format)
	}
	return mode, nil
}

// Image describes one IMAG/IMA2 directory entry: its declared geometry and
// the mode responsible for decoding its pixel data.
type Image struct {
	VerMajor uint16
	VerMinor uint16

	ImageType uint32 // the section's own "type" field, distinct from Format
	Format    uint32 // selects the ImageMode via a ModeRegistry

	Columns  uint32
	Rows     uint32
	RowBytes uint32

	dataOffset uint32 // start of pixel payload, just past the 28-byte header

	mode     ImageMode
	modeInfo any // mode-specific setup state, opaque to this package
}

// readImageSection parses the 28-byte header common to IMAG and IMA2
// sections. Both directory entry types carry the same body and the same
// embedded "SECi" marker, so a single reader serves both.
func readImageSection(r *byteReader, entry DirectoryEntry) (*Image, error) {
	if err := r.seek(int64(entry.Offset), SeekStart); err != nil {
		return nil, err
	}
	hdr, err := r.read(imagHeaderLen)
	if err != nil {
		return nil, err
	}
	if [4]byte(hdr[0:4]) != imageSectionMagic {
		return nil, newErrf(KindNotX3F, "image section at offset %d has bad marker %x", entry.Offset, hdr[0:4])
	}

	version := binary.LittleEndian.Uint32(hdr[imagHeaderVersion:])

	img := &Image{
		VerMajor:   uint16(version >> 16),
		VerMinor:   uint16(version & 0xffff),
		ImageType:  binary.LittleEndian.Uint32(hdr[imagHeaderType:]),
		Format:     binary.LittleEndian.Uint32(hdr[imagHeaderFormat:]),
		Columns:    binary.LittleEndian.Uint32(hdr[imagHeaderColumns:]),
		Rows:       binary.LittleEndian.Uint32(hdr[imagHeaderRows:]),
		RowBytes:   binary.LittleEndian.Uint32(hdr[imagHeaderRowBytes:]),
		dataOffset: entry.Offset + imagHeaderLen,
	}
	return img, nil
}

func (img *Image) setup(r *byteReader, modes *ModeRegistry) error {
	if img.mode != nil {
		return nil
	}
	mode, err := modes.find(img.Format)
	if err != nil {
		return err
	}
	img.mode = mode
	return mode.Setup(r, img)
}

// readImageData decodes the full frame (x, y must be 0 and w, h must match
// the image's declared geometry; this mode only supports full-frame reads).
func (img *Image) readImageData(r *byteReader, modes *ModeRegistry, x, y, w, h uint32, buf []byte) error {
	if err := img.setup(r, modes); err != nil {
		return err
	}
	return img.mode.ReadImage(r, img, x, y, w, h, buf)
}

func (img *Image) minReadBlock(r *byteReader, modes *ModeRegistry) (cols, rows uint32, err error) {
	if err := img.setup(r, modes); err != nil {
		return 0, 0, err
	}
	return img.mode.MinReadBlock(img)
}
