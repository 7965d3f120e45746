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

// Package sbix decodes the "sbix" (standard bitmap graphics) table used
// by Apple color emoji fonts.
// https://learn.microsoft.com/en-us/typography/opentype/spec/sbix
package sbix

import (
	"encoding/binary"
	"errors"
	"fmt"

	"seehuhn.de/go/sfnt/glyph"
)

// Graphic types.
const (
	GraphicPNG  = "png "
	GraphicJPEG = "jpg "
	GraphicTIFF = "tiff"
	GraphicDupe = "dupe"
)

// Table is a decoded sbix table.
type Table struct {
	Version uint16
	Flags   uint16
	Strikes []*Strike
}

// Strike contains the glyph images for one pixel size.
type Strike struct {
	PPEM uint16
	PPI  uint16

	// Glyphs is indexed by glyph ID.  Glyphs without image data
	// are nil.
	Glyphs []*Glyph
}

// Glyph is the image data for a single glyph.
type Glyph struct {
	OriginX, OriginY int16
	GraphicType      string
	Data             []byte
}

// Decode decodes an sbix table.  The number of glyphs must be taken from
// the "maxp" table.
func Decode(data []byte, numGlyphs int) (*Table, error) {
	if len(data) < 8 {
		return nil, errMalformed
	}
	t := &Table{
		Version: binary.BigEndian.Uint16(data[0:]),
		Flags:   binary.BigEndian.Uint16(data[2:]),
	}
	if t.Version != 1 {
		return nil, fmt.Errorf("sfnt/sbix: unsupported version %d", t.Version)
	}
	numStrikes := binary.BigEndian.Uint32(data[4:])
	if 8+uint64(numStrikes)*4 > uint64(len(data)) {
		return nil, errMalformed
	}

	for i := range int(numStrikes) {
		offset := binary.BigEndian.Uint32(data[8+4*i:])
		s, err := decodeStrike(data, offset, numGlyphs)
		if err != nil {
			return nil, fmt.Errorf("sfnt/sbix: strike %d: %w", i, err)
		}
		t.Strikes = append(t.Strikes, s)
	}
	return t, nil
}

func decodeStrike(data []byte, offset uint32, numGlyphs int) (*Strike, error) {
	start := uint64(offset)
	offsStart := start + 4
	if offsStart+4*uint64(numGlyphs+1) > uint64(len(data)) {
		return nil, errMalformed
	}
	s := &Strike{
		PPEM:   binary.BigEndian.Uint16(data[start:]),
		PPI:    binary.BigEndian.Uint16(data[start+2:]),
		Glyphs: make([]*Glyph, numGlyphs),
	}

	prev := start + uint64(binary.BigEndian.Uint32(data[offsStart:]))
	for gid := range numGlyphs {
		next := start + uint64(binary.BigEndian.Uint32(data[offsStart+4*uint64(gid+1):]))
		if next < prev || next > uint64(len(data)) {
			return nil, errMalformed
		}
		if next > prev {
			if next-prev < 8 {
				return nil, errMalformed
			}
			rec := data[prev:next]
			s.Glyphs[gid] = &Glyph{
				OriginX:     int16(binary.BigEndian.Uint16(rec[0:])),
				OriginY:     int16(binary.BigEndian.Uint16(rec[2:])),
				GraphicType: string(rec[4:8]),
				Data:        rec[8:],
			}
		}
		prev = next
	}
	return s, nil
}

// Strike returns the strike with the given ppem value, or nil if there is
// no such strike.
func (t *Table) Strike(ppem uint16) *Strike {
	for _, s := range t.Strikes {
		if s.PPEM == ppem {
			return s
		}
	}
	return nil
}

// Largest returns the strike with the largest ppem value.
func (t *Table) Largest() *Strike {
	var best *Strike
	for _, s := range t.Strikes {
		if best == nil || s.PPEM > best.PPEM {
			best = s
		}
	}
	return best
}

// Glyph returns the image for the given glyph.  Records of type "dupe" are
// replaced by the glyph they refer to.  If the glyph has no image data,
// nil is returned.
func (s *Strike) Glyph(gid glyph.ID) (*Glyph, error) {
	if int(gid) >= len(s.Glyphs) {
		return nil, fmt.Errorf("sfnt/sbix: invalid glyph ID %d", gid)
	}
	g := s.Glyphs[gid]
	if g == nil || g.GraphicType != GraphicDupe {
		return g, nil
	}

	if len(g.Data) < 2 {
		return nil, errMalformed
	}
	orig := glyph.ID(binary.BigEndian.Uint16(g.Data))
	if int(orig) >= len(s.Glyphs) {
		return nil, fmt.Errorf("sfnt/sbix: glyph %d duplicates invalid glyph %d", gid, orig)
	}
	target := s.Glyphs[orig]
	if target != nil && target.GraphicType == GraphicDupe {
		return nil, fmt.Errorf("sfnt/sbix: glyph %d duplicates another duplicate", gid)
	}
	return target, nil
}

var errMalformed = errors.New("sfnt/sbix: malformed table")
