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

// Package hhea reads the "hhea" table of an sfnt font.
// https://learn.microsoft.com/en-us/typography/opentype/spec/hhea
package hhea

import (
	"encoding/binary"
	"fmt"
	"io"

	"seehuhn.de/go/postscript/funit"
)

// Info contains the horizontal header information.
type Info struct {
	Ascent  funit.Int16
	Descent funit.Int16 // negative for descenders below the baseline
	LineGap funit.Int16
}

// Read reads and decodes the binary representation of the hhea table.
func Read(r io.Reader) (*Info, error) {
	enc := &binaryHhea{}
	err := binary.Read(r, binary.BigEndian, enc)
	if err != nil {
		return nil, err
	}
	if enc.Version != 0x00010000 {
		return nil, fmt.Errorf("sfnt/hhea: unsupported table version %08x", enc.Version)
	}
	if enc.MetricDataFormat != 0 {
		return nil, fmt.Errorf("sfnt/hhea: unsupported metric data format %d", enc.MetricDataFormat)
	}

	info := &Info{
		Ascent:  funit.Int16(enc.Ascent),
		Descent: funit.Int16(enc.Descent),
		LineGap: funit.Int16(enc.LineGap),
	}
	return info, nil
}

type binaryHhea struct {
	Version             uint32
	Ascent              int16
	Descent             int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	_                   int16
	_                   int16
	_                   int16
	_                   int16
	MetricDataFormat    int16
	NumOfLongHorMetrics uint16
}
