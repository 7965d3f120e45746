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

package cblc

import (
	"encoding/binary"
	"errors"
	"fmt"

	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/sbix2cbdt/sbit"
)

// Table is a decoded CBLC table.
type Table struct {
	Version uint32
	Strikes []*Strike
}

// Strike is the location information for one bitmap strike.
type Strike struct {
	IndexSubTableArrayOffset uint32
	IndexTablesSize          uint32
	ColorRef                 uint32

	Hori, Vert *sbit.LineMetrics

	StartGlyph, EndGlyph glyph.ID
	PPEMX, PPEMY         uint8
	BitDepth             uint8
	Flags                int8

	Subtables []*IndexSubtable
}

// IndexSubtable describes where the glyphs First, ..., Last are stored.
// Only index format 1 is supported.
type IndexSubtable struct {
	First, Last     glyph.ID
	IndexFormat     uint16
	ImageFormat     uint16
	ImageDataOffset uint32

	// Offsets has Last-First+2 entries, relative to ImageDataOffset.
	Offsets []uint32
}

// Lookup returns the location of the data for the given glyph in the CBDT
// table.
func (s *Strike) Lookup(gid glyph.ID) (start, end uint32, imageFormat uint16, ok bool) {
	for _, sub := range s.Subtables {
		if gid < sub.First || gid > sub.Last {
			continue
		}
		k := int(gid - sub.First)
		start = sub.ImageDataOffset + sub.Offsets[k]
		end = sub.ImageDataOffset + sub.Offsets[k+1]
		if end <= start {
			// an empty entry means the glyph has no bitmap
			return 0, 0, 0, false
		}
		return start, end, sub.ImageFormat, true
	}
	return 0, 0, 0, false
}

// Decode decodes a CBLC table.
func Decode(data []byte) (*Table, error) {
	if len(data) < headerLength {
		return nil, errMalformed
	}
	version := binary.BigEndian.Uint32(data)
	if version != sbit.Version2 && version != sbit.Version3 {
		return nil, &sbit.NotSupportedError{
			SubSystem: "sfnt/cblc",
			Feature:   fmt.Sprintf("CBLC version 0x%08x", version),
		}
	}
	numSizes := binary.BigEndian.Uint32(data[4:])
	if uint64(headerLength)+uint64(numSizes)*BitmapSizeLength > uint64(len(data)) {
		return nil, errMalformed
	}

	res := &Table{Version: version}
	for i := range int(numSizes) {
		rec := data[headerLength+i*BitmapSizeLength:]
		s, err := decodeStrike(data, rec[:BitmapSizeLength])
		if err != nil {
			return nil, err
		}
		res.Strikes = append(res.Strikes, s)
	}
	return res, nil
}

func decodeStrike(data, rec []byte) (*Strike, error) {
	s := &Strike{
		IndexSubTableArrayOffset: binary.BigEndian.Uint32(rec[0:]),
		IndexTablesSize:          binary.BigEndian.Uint32(rec[4:]),
		ColorRef:                 binary.BigEndian.Uint32(rec[12:]),
		StartGlyph:               glyph.ID(binary.BigEndian.Uint16(rec[40:])),
		EndGlyph:                 glyph.ID(binary.BigEndian.Uint16(rec[42:])),
		PPEMX:                    rec[44],
		PPEMY:                    rec[45],
		BitDepth:                 rec[46],
		Flags:                    int8(rec[47]),
	}
	var err error
	s.Hori, err = sbit.DecodeLineMetrics(rec[16:28])
	if err != nil {
		return nil, err
	}
	s.Vert, err = sbit.DecodeLineMetrics(rec[28:40])
	if err != nil {
		return nil, err
	}
	numSubtables := binary.BigEndian.Uint32(rec[8:])

	arrayStart := uint64(s.IndexSubTableArrayOffset)
	if arrayStart+uint64(numSubtables)*8 > uint64(len(data)) {
		return nil, errMalformed
	}
	for j := range int(numSubtables) {
		hdr := data[arrayStart+uint64(j)*8:]
		first := glyph.ID(binary.BigEndian.Uint16(hdr[0:]))
		last := glyph.ID(binary.BigEndian.Uint16(hdr[2:]))
		additional := binary.BigEndian.Uint32(hdr[4:])
		if last < first {
			return nil, errMalformed
		}

		subStart := arrayStart + uint64(additional)
		if subStart+8 > uint64(len(data)) {
			return nil, errMalformed
		}
		sub := &IndexSubtable{
			First:           first,
			Last:            last,
			IndexFormat:     binary.BigEndian.Uint16(data[subStart:]),
			ImageFormat:     binary.BigEndian.Uint16(data[subStart+2:]),
			ImageDataOffset: binary.BigEndian.Uint32(data[subStart+4:]),
		}
		if sub.IndexFormat != 1 {
			return nil, &sbit.NotSupportedError{
				SubSystem: "sfnt/cblc",
				Feature:   fmt.Sprintf("index subtable format %d", sub.IndexFormat),
			}
		}
		n := int(last-first) + 2
		offsStart := subStart + 8
		if offsStart+uint64(n)*4 > uint64(len(data)) {
			return nil, errMalformed
		}
		sub.Offsets = make([]uint32, n)
		for k := range sub.Offsets {
			sub.Offsets[k] = binary.BigEndian.Uint32(data[offsStart+uint64(k)*4:])
		}
		s.Subtables = append(s.Subtables, sub)
	}
	return s, nil
}

var errMalformed = errors.New("cblc: malformed table")
