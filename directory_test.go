// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

import (
	"bytes"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"
)

func TestReadDirectory(t *testing.T) {
	c := qt.New(t)

	buf := buildHeader(100, 100)
	entries := []DirectoryEntry{
		{Offset: uint32(len(buf)), Length: 10, Type: SectionProperty},
	}
	buf = appendDirectory(buf, entries)

	r := newByteReader(bytes.NewReader(buf))
	dir, err := readDirectory(r, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(dir.Version, qt.Equals, uint32(1))
	c.Assert(dir.Entries(), qt.DeepEquals, entries)
}

func TestReadDirectoryMultipleEntriesRoundTrip(t *testing.T) {
	c := qt.New(t)

	buf := buildHeader(100, 100)
	want := []DirectoryEntry{
		{Offset: 0, Length: 10, Type: SectionProperty},
		{Offset: 10, Length: 20, Type: SectionImage},
		{Offset: 30, Length: 30, Type: SectionCAMF},
	}
	buf = appendDirectory(buf, want)

	r := newByteReader(bytes.NewReader(buf))
	dir, err := readDirectory(r, 0)
	c.Assert(err, qt.IsNil)

	if diff := cmp.Diff(want, dir.Entries()); diff != "" {
		t.Fatalf("directory entries mismatch (-want +got):\n%s", diff)
	}
}

func TestReadDirectoryZeroEntriesIsError(t *testing.T) {
	c := qt.New(t)

	buf := buildHeader(100, 100)
	buf = appendDirectory(buf, nil)

	r := newByteReader(bytes.NewReader(buf))
	_, err := readDirectory(r, 0)
	c.Assert(err, qt.Not(qt.IsNil))
	c.Assert(IsKind(err, KindRange), qt.IsTrue)
}

func TestReadDirectoryExceedsLimit(t *testing.T) {
	c := qt.New(t)

	buf := buildHeader(100, 100)
	entries := []DirectoryEntry{
		{Offset: 0, Length: 1, Type: SectionProperty},
		{Offset: 1, Length: 1, Type: SectionProperty},
	}
	buf = appendDirectory(buf, entries)

	r := newByteReader(bytes.NewReader(buf))
	_, err := readDirectory(r, 1)
	c.Assert(err, qt.Not(qt.IsNil))
	c.Assert(IsKind(err, KindRange), qt.IsTrue)
}

func TestReadDirectoryEntryOutOfBoundsIsError(t *testing.T) {
	c := qt.New(t)

	buf := buildHeader(100, 100)
	entries := []DirectoryEntry{
		{Offset: uint32(len(buf)), Length: 1_000_000, Type: SectionProperty},
	}
	buf = appendDirectory(buf, entries)

	r := newByteReader(bytes.NewReader(buf))
	_, err := readDirectory(r, 0)
	c.Assert(err, qt.Not(qt.IsNil))
	c.Assert(IsKind(err, KindRange), qt.IsTrue)
}

func TestReadDirectoryBadMagic(t *testing.T) {
	c := qt.New(t)

	buf := buildHeader(100, 100)
	buf = appendDirectory(buf, []DirectoryEntry{{Offset: 0, Length: 1, Type: SectionProperty}})
	// Corrupt the "SECd" marker written at the directory offset.
	dirStart := len(buf) - 4 - 12 - 4 - 4 - 4
	buf[dirStart] = 'x'

	r := newByteReader(bytes.NewReader(buf))
	_, err := readDirectory(r, 0)
	c.Assert(err, qt.Not(qt.IsNil))
	c.Assert(IsKind(err, KindNotX3F), qt.IsTrue)
}
