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
	"errors"
	"fmt"

	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/sbix2cbdt/sbit"
)

// A Range is a run of consecutive glyph IDs which share an image format.
// The glyphs of the range are maps[Start:End], and maps[End] gives the end
// offset of the last glyph in the range.
type Range struct {
	First, Last glyph.ID
	Start, End  int
}

// Ranges splits a list of glyph maps into maximal ranges.  A new range
// starts whenever the glyph ID is not one more than the previous glyph ID,
// or when the image format changes.  The end marker closes the last range.
func Ranges(maps []sbit.GlyphMap) ([]Range, error) {
	if err := checkMaps(maps); err != nil {
		return nil, err
	}

	var res []Range
	n := len(maps) - 1
	start := 0
	for i := 1; i <= n; i++ {
		if i == n ||
			maps[i].GID != maps[i-1].GID+1 ||
			maps[i].ImageFormat != maps[i-1].ImageFormat {
			res = append(res, Range{
				First: maps[start].GID,
				Last:  maps[i-1].GID,
				Start: start,
				End:   i,
			})
			start = i
		}
	}
	return res, nil
}

func checkMaps(maps []sbit.GlyphMap) error {
	n := len(maps) - 1
	if n < 1 {
		return errors.New("cblc: no glyphs in strike")
	}
	if !maps[n].End {
		return errors.New("cblc: missing end marker")
	}
	for i := 0; i < n; i++ {
		if maps[i].End {
			return fmt.Errorf("cblc: unexpected end marker at position %d", i)
		}
		if i > 0 && maps[i].GID <= maps[i-1].GID {
			return &sbit.OrderError{Prev: maps[i-1].GID, GID: maps[i].GID}
		}
	}
	for i := 1; i <= n; i++ {
		if maps[i].Offset <= maps[i-1].Offset {
			return fmt.Errorf("cblc: offset %d of entry %d is not increasing",
				maps[i].Offset, i)
		}
	}
	return nil
}
