// seehuhn.de/go/sbix2cbdt - convert sbix color bitmaps to CBDT/CBLC tables
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package table reads the table directory of sfnt font files.
// https://learn.microsoft.com/en-us/typography/opentype/spec/otff#table-directory
package table

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
)

// Scaler types found at the start of sfnt files.
const (
	ScalerTypeTrueType = 0x00010000
	ScalerTypeCFF      = 0x4F54544F
	ScalerTypeApple    = 0x74727565
)

// Header is the table directory of an sfnt file.
type Header struct {
	ScalerType uint32
	Toc        map[string]Record
}

// Record gives the location of a table inside the font file.
type Record struct {
	Offset uint32
	Length uint32
}

// ReadHeader reads the table directory of an sfnt font file.
// All tables are listed, including tables unknown to this package.
func ReadHeader(r io.ReaderAt) (*Header, error) {
	var buf [16]byte
	_, err := r.ReadAt(buf[:6], 0)
	if err != nil {
		return nil, err
	}
	scalerType := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	numTables := int(buf[4])<<8 | int(buf[5])

	if scalerType != ScalerTypeTrueType &&
		scalerType != ScalerTypeCFF &&
		scalerType != ScalerTypeApple {
		return nil, fmt.Errorf("sfnt/table: unsupported scaler type 0x%08x", scalerType)
	}
	if numTables > 280 {
		return nil, errors.New("sfnt/table: too many tables")
	}

	h := &Header{
		ScalerType: scalerType,
		Toc:        make(map[string]Record),
	}
	type alloc struct {
		Start uint32
		End   uint32
	}
	var coverage []alloc
	for i := 0; i < numTables; i++ {
		_, err := r.ReadAt(buf[:], int64(12+i*16))
		if err != nil {
			return nil, err
		}
		name := string(buf[:4])
		offset := uint32(buf[8])<<24 + uint32(buf[9])<<16 + uint32(buf[10])<<8 + uint32(buf[11])
		length := uint32(buf[12])<<24 + uint32(buf[13])<<16 + uint32(buf[14])<<8 + uint32(buf[15])
		if uint64(offset)+uint64(length) > 0xFFFF_FFFF {
			return nil, errors.New("sfnt/table: invalid table length")
		}
		h.Toc[name] = Record{
			Offset: offset,
			Length: length,
		}
		if length > 0 {
			coverage = append(coverage, alloc{
				Start: offset,
				End:   offset + length,
			})
		}
	}
	if len(coverage) == 0 {
		return nil, errors.New("sfnt/table: no tables found")
	}

	sort.Slice(coverage, func(i, j int) bool {
		if coverage[i].Start != coverage[j].Start {
			return coverage[i].Start < coverage[j].Start
		}
		return coverage[i].End < coverage[j].End
	})
	if coverage[0].Start < 12 {
		return nil, errors.New("sfnt/table: invalid table offset")
	}
	for i := 1; i < len(coverage); i++ {
		if coverage[i-1].End > coverage[i].Start {
			return nil, errors.New("sfnt/table: overlapping tables")
		}
	}
	_, err = r.ReadAt(buf[:1], int64(coverage[len(coverage)-1].End)-1)
	if err == io.EOF {
		return nil, errors.New("sfnt/table: table extends beyond EOF")
	} else if err != nil {
		return nil, err
	}

	return h, nil
}

// Has returns true if all the given tables are present.
func (h *Header) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := h.Toc[name]; !ok {
			return false
		}
	}
	return true
}

// Find returns the location of a table.
func (h *Header) Find(tableName string) (Record, error) {
	rec, ok := h.Toc[tableName]
	if !ok {
		return rec, &ErrNoTable{Name: tableName}
	}
	return rec, nil
}

// Names returns the names of all tables, in alphabetical order.
func (h *Header) Names() []string {
	names := make([]string, 0, len(h.Toc))
	for name := range h.Toc {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ReadTableBytes reads the data of the given table.
func (h *Header) ReadTableBytes(r io.ReaderAt, tableName string) ([]byte, error) {
	rec, err := h.Find(tableName)
	if err != nil {
		return nil, err
	}
	res := make([]byte, rec.Length)
	n, err := r.ReadAt(res, int64(rec.Offset))
	if n < len(res) && err != nil {
		return nil, err
	}
	return res[:n], nil
}

// ErrNoTable indicates that a required table is missing from the font.
type ErrNoTable struct {
	Name string
}

func (err *ErrNoTable) Error() string {
	return "sfnt: missing " + err.Name + " table"
}

// IsMissing returns true if err indicates a missing sfnt table.
func IsMissing(err error) bool {
	var noTable *ErrNoTable
	return errors.As(err, &noTable)
}
