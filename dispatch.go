// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package x3f

// readSection parses one directory entry according to its declared
// section type, attaching the result to f. Unknown section types are
// logged through Options.Warnf and skipped rather than failing the whole
// decode.
func (f *File) readSection(entry DirectoryEntry, maxCAMFRecordBytes int) error {
	switch entry.Type {
	case SectionImage, SectionImage2:
		img, err := readImageSection(f.r, entry)
		if err != nil {
			return err
		}
		f.images = append(f.images, img)
	case SectionCAMF:
		camf, err := readCAMF(f.r, entry, maxCAMFRecordBytes)
		if err != nil {
			return err
		}
		f.camf = camf
	case SectionProperty:
		table, err := readPropertyTable(f.r, entry)
		if err != nil {
			return err
		}
		f.properties = append(f.properties, table)
	default:
		f.opts.warnf("skipping unknown directory entry type %08x at offset %d", uint32(entry.Type), entry.Offset)
	}
	return nil
}
