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

package sbit

import "fmt"

// GlyphSize is the size of one glyph bitmap, in pixels.
type GlyphSize struct {
	Width  int
	Height int
}

// NaturalAdvance returns the advance width, in design units, a glyph
// would have if the bitmap was scaled to the height of the font's line.
func NaturalAdvance(fm *FontMetrics, width, height int) int {
	return round(float64(int(fm.Ascent)+int(fm.Descent)) * float64(width) / float64(height))
}

// NewStrikeMetrics computes the metrics of a strike from the bitmap sizes
// of its glyphs.  The strike size is the largest bitmap size, and the ppem
// value is chosen such that the average natural advance width maps to the
// width of the strike.  Pixels are assumed to be square.
func NewStrikeMetrics(fm *FontMetrics, glyphs []GlyphSize) (*StrikeMetrics, error) {
	if len(glyphs) == 0 {
		return nil, ErrNoGlyphs
	}

	var width, height, advance int
	for _, g := range glyphs {
		if err := checkRange("bitmap height", g.Height, 1, 255); err != nil {
			return nil, err
		}
		if err := checkRange("bitmap width", g.Width, 0, 255); err != nil {
			return nil, err
		}
		width = max(width, g.Width)
		height = max(height, g.Height)
		advance += NaturalAdvance(fm, g.Width, g.Height)
	}
	advance = Div(advance, len(glyphs))
	if advance <= 0 {
		return nil, fmt.Errorf("sbit: invalid mean advance %d", advance)
	}

	ppem := Div(width*int(fm.UnitsPerEm), advance)
	return &StrikeMetrics{
		Width:  width,
		Height: height,
		PPEMX:  ppem,
		PPEMY:  ppem,
	}, nil
}
