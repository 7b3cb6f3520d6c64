// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package x3f reads the Sigma/Foveon X3F camera raw container format: its
// fixed header, trailer-indexed section directory, UTF-16 property tables,
// Huffman-coded image planes, and encrypted camera calibration (CAMF) data.
package x3f

import (
	"fmt"
	"io"
	"sync"
)

// Options configures how a File is opened and decoded.
type Options struct {
	// Warnf is called for recoverable problems (an unknown directory
	// entry type, for instance) instead of failing the whole decode. A
	// nil Warnf is a no-op.
	Warnf func(format string, args ...any)

	// Modes selects which image formats can be decoded. A nil Modes uses
	// DefaultModeRegistry().
	Modes *ModeRegistry

	// MaxDirectoryEntries caps how many directory entries a file may
	// declare before Open refuses it. Zero means no limit.
	MaxDirectoryEntries int

	// MaxCAMFRecordBytes caps the length a single CMb* record inside a
	// CAMF section may declare before it is treated as corrupt. Zero
	// means no limit. Guards against a hostile or corrupt record length
	// driving a large allocation in parseArrayRecord.
	MaxCAMFRecordBytes int
}

func (o Options) warnf(format string, args ...any) {
	if o.Warnf != nil {
		o.Warnf(format, args...)
	}
}

func (o Options) modes() *ModeRegistry {
	if o.Modes != nil {
		return o.Modes
	}
	return DefaultModeRegistry()
}

// File is an opened X3F container: its header, directory, and the parsed
// image/property/CAMF sections those directory entries describe.
type File struct {
	mu sync.Mutex

	r    *byteReader
	opts Options

	header *Header
	dir    *Directory

	images     []*Image
	properties []*PropertyTable
	camf       *CAMF
}

// Open parses r as an X3F file: the fixed header, the trailer-indexed
// directory, and every section the directory names. It returns a *Error
// with KindNotX3F if r does not look like an X3F file.
func Open(r io.ReadSeeker, opts Options) (*File, error) {
	f := &File{
		r:    newByteReader(r),
		opts: opts,
	}

	header, err := readHeader(f.r)
	if err != nil {
		return nil, err
	}
	f.header = header

	dir, err := readDirectory(f.r, opts.MaxDirectoryEntries)
	if err != nil {
		return nil, err
	}
	f.dir = dir

	for _, entry := range dir.Entries() {
		if err := f.readSection(entry, opts.MaxCAMFRecordBytes); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Close releases any resources the File holds. The underlying reader,
// since it was supplied by the caller, is not closed.
func (f *File) Close() error {
	return nil
}

// GetVersion returns the file format's major and minor version numbers.
func (f *File) GetVersion() (major, minor uint16) {
	return f.header.VerMajor, f.header.VerMinor
}

// GetDims returns the sensor's declared columns, rows, and rotation.
func (f *File) GetDims() (columns, rows, rotation uint32) {
	return f.header.Columns, f.header.Rows, f.header.Rotation
}

// GetID returns the file's 16-byte camera identifier and mark value.
func (f *File) GetID() (id [16]byte, mark uint32) {
	return f.header.ID, f.header.Mark
}

// GetWhiteBalance returns the raw 32-byte white balance descriptor from
// the header.
func (f *File) GetWhiteBalance() [32]byte {
	return f.header.WhiteBalance
}

// GetExtendedAttrib returns the type and value of one of the header's 32
// extended attribute slots. num must be in [0, 32); otherwise ErrRange is
// returned.
func (f *File) GetExtendedAttrib(num int) (ExtendedAttrib, error) {
	if num < 0 || num >= numExtendedAttribs {
		return ExtendedAttrib{}, newErrf(KindRange, "extended attribute index %d out of range", num)
	}
	return f.header.Extended[num], nil
}

// GetSubimageCount returns the number of image sections the file carries.
func (f *File) GetSubimageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.images)
}

// GetSubimageDims returns the declared geometry of one image section.
func (f *File) GetSubimageDims(subimage int) (cols, rows uint32, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	img, err := f.imageByID(subimage)
	if err != nil {
		return 0, 0, err
	}
	return img.Columns, img.Rows, nil
}

// GetMinReadBlock returns the smallest region ReadImageData can decode for
// the given image section; for every mode this package implements, that is
// the full frame.
func (f *File) GetMinReadBlock(subimage int) (cols, rows uint32, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	img, err := f.imageByID(subimage)
	if err != nil {
		return 0, 0, err
	}
	return img.minReadBlock(f.r, f.opts.modes())
}

// ReadImageData decodes the region (x, y, w, h) of the given image section
// into buf, which must be large enough to hold 3 planes of w*h 16-bit
// samples. Every mode this package implements only supports a full-frame
// read: x == 0, y == 0, w == columns, h == rows.
func (f *File) ReadImageData(subimage int, x, y, w, h uint32, buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	img, err := f.imageByID(subimage)
	if err != nil {
		return err
	}
	return img.readImageData(f.r, f.opts.modes(), x, y, w, h, buf)
}

func (f *File) imageByID(id int) (*Image, error) {
	if id < 0 || id >= len(f.images) {
		return nil, newErrf(KindRange, "image id %d out of range (have %d images)", id, len(f.images))
	}
	return f.images[id], nil
}

// GetArray returns a copy of the raw element bytes of a named CAMF array
// record.
func (f *File) GetArray(name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.camf == nil {
		return nil, ErrNotInitialized
	}
	rec, ok := f.camf.GetArray(name)
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), rec.Bytes()...), nil
}

// QueryArrayAttribs returns the dimensions and element type of a named
// CAMF array record without copying its data.
func (f *File) QueryArrayAttribs(name string) (dims []uint32, elemType uint32, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.camf == nil {
		return nil, 0, ErrNotInitialized
	}
	rec, ok := f.camf.GetArray(name)
	if !ok {
		return nil, 0, ErrNotFound
	}
	return rec.Dims, rec.Type, nil
}

// Properties returns the file's property tables in directory order. Most
// files carry exactly one.
func (f *File) Properties() []*PropertyTable {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.properties
}

func (f *File) String() string {
	return fmt.Sprintf("x3f.File(%s, %d images, %d properties)", f.header, len(f.images), len(f.properties))
}
