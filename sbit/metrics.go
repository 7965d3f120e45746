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

// SmallGlyphMetricsSize is the length of an encoded SmallGlyphMetrics record.
const SmallGlyphMetricsSize = 5

// SmallGlyphMetrics is the per-glyph metrics record used by image format 17.
type SmallGlyphMetrics struct {
	Height   uint8
	Width    uint8
	BearingX int8
	BearingY int8
	Advance  uint8
}

// NewSmallGlyphMetrics returns the metrics for a glyph bitmap of the given
// size.  The bitmap is placed at the left edge of the advance box and is
// centered vertically in the line.
func NewSmallGlyphMetrics(fm *FontMetrics, sm *StrikeMetrics, width, height int) (*SmallGlyphMetrics, error) {
	if err := checkRange("glyph height", height, 0, 255); err != nil {
		return nil, err
	}
	if err := checkRange("glyph width", width, 0, 255); err != nil {
		return nil, err
	}
	bearingY := BearingY(fm, sm.PPEMY, height)
	if err := checkRange("bearingY", bearingY, -128, 127); err != nil {
		return nil, err
	}
	return &SmallGlyphMetrics{
		Height:   uint8(height),
		Width:    uint8(width),
		BearingX: 0,
		BearingY: int8(bearingY),
		Advance:  uint8(width),
	}, nil
}

// BearingY returns the distance from the baseline to the top of a bitmap
// of the given height, such that the bitmap is centered in the line box of
// the font.  The result is at most 127.  There is no lower bound.
func BearingY(fm *FontMetrics, yPPEM, height int) int {
	upem := float64(fm.UnitsPerEm)
	lineHeight := float64(int(fm.Ascent)+int(fm.Descent)) * float64(yPPEM) / upem
	lineAscent := float64(fm.Ascent) * float64(yPPEM) / upem
	y := round(lineAscent - 0.5*(lineHeight-float64(height)))
	return min(y, 127)
}

// Append appends the binary encoding of m to buf.
func (m *SmallGlyphMetrics) Append(buf []byte) []byte {
	return append(buf,
		m.Height, m.Width,
		byte(m.BearingX), byte(m.BearingY),
		m.Advance)
}

// DecodeSmallGlyphMetrics decodes a SmallGlyphMetrics record.
func DecodeSmallGlyphMetrics(data []byte) (*SmallGlyphMetrics, error) {
	if len(data) < SmallGlyphMetricsSize {
		return nil, fmt.Errorf("sbit: small glyph metrics need %d bytes, got %d",
			SmallGlyphMetricsSize, len(data))
	}
	return &SmallGlyphMetrics{
		Height:   data[0],
		Width:    data[1],
		BearingX: int8(data[2]),
		BearingY: int8(data[3]),
		Advance:  data[4],
	}, nil
}

// LineMetricsSize is the length of an encoded LineMetrics record.
const LineMetricsSize = 12

// LineMetrics is the sbitLineMetrics record of a strike.
type LineMetrics struct {
	Ascender              int8
	Descender             int8
	WidthMax              uint8
	CaretSlopeNumerator   int8
	CaretSlopeDenominator int8
	CaretOffset           int8
	MinOriginSB           int8
	MinAdvanceSB          int8
	MaxBeforeBL           int8
	MinAfterBL            int8
	Pad1, Pad2            int8
}

// NewLineMetrics returns the line metrics of a strike.  Ascender and
// descender are the font's ascent and descent scaled to the strike's
// vertical ppem; the ascender is capped at 127.
func NewLineMetrics(fm *FontMetrics, sm *StrikeMetrics) (*LineMetrics, error) {
	upem := int(fm.UnitsPerEm)
	lineHeight := Div((int(fm.Ascent)+int(fm.Descent))*sm.PPEMY, upem)
	ascent := min(Div(int(fm.Ascent)*sm.PPEMY, upem), 127)
	descent := -(lineHeight - ascent)
	if err := checkRange("ascender", ascent, -128, 127); err != nil {
		return nil, err
	}
	if err := checkRange("descender", descent, -128, 127); err != nil {
		return nil, err
	}
	if err := checkRange("strike width", sm.Width, 0, 255); err != nil {
		return nil, err
	}
	// TODO(voss): fill in minOriginSB, minAdvanceSB, maxBeforeBL and
	// minAfterBL from the glyph metrics of the strike.
	return &LineMetrics{
		Ascender:  int8(ascent),
		Descender: int8(descent),
		WidthMax:  uint8(sm.Width),
	}, nil
}

// Append appends the binary encoding of m to buf.
func (m *LineMetrics) Append(buf []byte) []byte {
	return append(buf,
		byte(m.Ascender), byte(m.Descender), m.WidthMax,
		byte(m.CaretSlopeNumerator), byte(m.CaretSlopeDenominator),
		byte(m.CaretOffset),
		byte(m.MinOriginSB), byte(m.MinAdvanceSB),
		byte(m.MaxBeforeBL), byte(m.MinAfterBL),
		byte(m.Pad1), byte(m.Pad2))
}

// DecodeLineMetrics decodes a LineMetrics record.
func DecodeLineMetrics(data []byte) (*LineMetrics, error) {
	if len(data) < LineMetricsSize {
		return nil, fmt.Errorf("sbit: line metrics need %d bytes, got %d",
			LineMetricsSize, len(data))
	}
	return &LineMetrics{
		Ascender:              int8(data[0]),
		Descender:             int8(data[1]),
		WidthMax:              data[2],
		CaretSlopeNumerator:   int8(data[3]),
		CaretSlopeDenominator: int8(data[4]),
		CaretOffset:           int8(data[5]),
		MinOriginSB:           int8(data[6]),
		MinAdvanceSB:          int8(data[7]),
		MaxBeforeBL:           int8(data[8]),
		MinAfterBL:            int8(data[9]),
		Pad1:                  int8(data[10]),
		Pad2:                  int8(data[11]),
	}, nil
}
