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

package cbdt

import (
	"encoding/binary"
	"errors"
	"fmt"

	"seehuhn.de/go/sbix2cbdt/sbit"
)

// Glyph is a decoded glyph record.
type Glyph struct {
	Metrics *sbit.SmallGlyphMetrics
	PNG     []byte
}

// ReadVersion returns the version of a CBDT table.
func ReadVersion(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, errMalformed
	}
	version := binary.BigEndian.Uint32(data)
	if version != sbit.Version2 && version != sbit.Version3 {
		return 0, &sbit.NotSupportedError{
			SubSystem: "sfnt/cbdt",
			Feature:   fmt.Sprintf("table version 0x%08x", version),
		}
	}
	return version, nil
}

// ReadGlyph decodes the glyph record of the given image format which
// occupies data[start:end].  The returned PNG data aliases data.
func ReadGlyph(data []byte, start, end uint32, imageFormat uint16) (*Glyph, error) {
	if start > end || uint64(end) > uint64(len(data)) {
		return nil, errMalformed
	}
	rec := data[start:end]

	var metrics *sbit.SmallGlyphMetrics
	switch imageFormat {
	case sbit.FormatSmallPNG:
		m, err := sbit.DecodeSmallGlyphMetrics(rec)
		if err != nil {
			return nil, errMalformed
		}
		metrics = m
		rec = rec[sbit.SmallGlyphMetricsSize:]
	case sbit.FormatPNG:
		// metrics are stored in the CBLC table
	default:
		return nil, &sbit.NotSupportedError{
			SubSystem: "sfnt/cbdt",
			Feature:   fmt.Sprintf("image format %d", imageFormat),
		}
	}

	if len(rec) < 4 {
		return nil, errMalformed
	}
	dataLen := binary.BigEndian.Uint32(rec)
	if uint64(dataLen) > uint64(len(rec)-4) {
		return nil, errMalformed
	}
	return &Glyph{
		Metrics: metrics,
		PNG:     rec[4 : 4+dataLen],
	}, nil
}

var errMalformed = errors.New("cbdt: malformed glyph record")
