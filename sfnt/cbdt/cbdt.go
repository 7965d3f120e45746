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

// Package cbdt writes and reads "CBDT" (color bitmap data) tables.
// https://learn.microsoft.com/en-us/typography/opentype/spec/cbdt
package cbdt

import (
	"encoding/binary"
	"errors"

	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/sbix2cbdt/pngfile"
	"seehuhn.de/go/sbix2cbdt/sbit"
)

// Writer assembles a CBDT table.
//
// Usage: call WriteHeader once, then for each strike call StartStrike,
// WriteGlyph for every glyph in increasing glyph ID order, and EndStrike.
// The GlyphMaps returned by EndStrike are the input for the CBLC writer.
type Writer struct {
	// Version is the table version written by WriteHeader.
	Version uint32

	fm  *sbit.FontMetrics
	buf []byte

	strike *sbit.StrikeMetrics
	maps   []sbit.GlyphMap
}

// NewWriter returns a new CBDT writer for a font with the given metrics.
func NewWriter(fm *sbit.FontMetrics) *Writer {
	return &Writer{
		Version: sbit.Version2,
		fm:      fm,
	}
}

// Bytes returns the table data written so far.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the current length of the table, which is also the offset
// of the next glyph record.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteHeader writes the table version.
func (w *Writer) WriteHeader() {
	w.buf = binary.BigEndian.AppendUint32(w.buf, w.Version)
}

// StartStrike begins the glyph records for one strike.
func (w *Writer) StartStrike(sm *sbit.StrikeMetrics) {
	w.strike = sm
	w.maps = w.maps[:0:0]
}

// WriteGlyph appends the record for one glyph, using the small metrics
// layout of image format 17.  Chunks which are not needed to display the
// image are removed from the PNG data.
//
// Glyphs must be written in increasing order of glyph ID.  If an error is
// returned, nothing has been written and the glyph can be skipped.
func (w *Writer) WriteGlyph(gid glyph.ID, img *pngfile.Image, imageFormat uint16) error {
	if w.strike == nil {
		return errNoStrike
	}
	if n := len(w.maps); n > 0 && gid <= w.maps[n-1].GID {
		return &sbit.OrderError{Prev: w.maps[n-1].GID, GID: gid}
	}

	width, height, err := img.Size()
	if err != nil {
		return err
	}
	filtered, err := img.Filter(pngfile.EssentialChunks...)
	if err != nil {
		return err
	}
	metrics, err := sbit.NewSmallGlyphMetrics(w.fm, w.strike, width, height)
	if err != nil {
		return err
	}
	offset := len(w.buf)
	if uint64(offset)+uint64(recordSize(filtered.Len())) > 0xFFFF_FFFF {
		return errTooLarge
	}

	w.buf = metrics.Append(w.buf)
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(filtered.Len()))
	w.buf = append(w.buf, filtered.Bytes()...)

	w.maps = append(w.maps, sbit.GlyphMap{
		GID:         gid,
		Offset:      uint32(offset),
		ImageFormat: imageFormat,
	})
	return nil
}

// EndStrike finishes the current strike.  The returned list contains one
// entry for every glyph written, followed by an entry which marks the end
// of the data for the last glyph.
func (w *Writer) EndStrike() ([]sbit.GlyphMap, error) {
	if w.strike == nil {
		return nil, errNoStrike
	}
	maps := append(w.maps, sbit.GlyphMap{
		Offset: uint32(len(w.buf)),
		End:    true,
	})
	w.maps = nil
	w.strike = nil
	return maps, nil
}

// recordSize returns the size of a format 17 record with n bytes of PNG data.
func recordSize(n int) int {
	return sbit.SmallGlyphMetricsSize + 4 + n
}

var (
	errNoStrike = errors.New("cbdt: no strike started")
	errTooLarge = errors.New("cbdt: table exceeds 4GB")
)
