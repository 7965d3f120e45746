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

// Package sbit contains the data model shared by the CBDT and CBLC table
// writers: font and strike metrics, glyph locations, and the binary
// encodings of the small glyph metrics and line metrics records.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/eblc
package sbit

import (
	"math"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"
)

// Table versions.  Version2 is found in most existing color emoji fonts,
// Version3 is required by current OpenType versions.
const (
	Version2 uint32 = 0x00020000
	Version3 uint32 = 0x00030000
)

// Image formats used in the CBDT table.
const (
	FormatSmallPNG = 17 // small metrics + PNG data
	FormatBigPNG   = 18 // big metrics + PNG data
	FormatPNG      = 19 // metrics in CBLC, PNG data only
)

// BitDepth is the bitDepth value for color bitmaps.
const BitDepth = 32

// FlagHorizontal marks a strike as intended for horizontal text.
const FlagHorizontal = 0x01

// FontMetrics contains the font-wide design parameters.
type FontMetrics struct {
	UnitsPerEm uint16
	Ascent     funit.Int16

	// Descent is the distance below the baseline, as a non-negative number.
	Descent funit.Int16
}

// StrikeMetrics describes one pixel size of a bitmap font.
type StrikeMetrics struct {
	Width  int // maximum bitmap width, in pixels
	Height int // maximum bitmap height, in pixels
	PPEMX  int
	PPEMY  int
}

// GlyphMap records where the data for a glyph starts inside the CBDT table.
//
// The list of GlyphMaps for a strike always ends with an entry where End is
// set.  This entry has no glyph ID and marks the end of the last glyph.
type GlyphMap struct {
	GID         glyph.ID
	Offset      uint32
	ImageFormat uint16
	End         bool
}

// Div returns a/b, rounded to the nearest integer.  Ties are rounded to even.
func Div(a, b int) int {
	return round(float64(a) / float64(b))
}

// round rounds half to even.  The reference tools use this rounding
// rule, and output must match them byte for byte.
func round(x float64) int {
	return int(math.RoundToEven(x))
}
