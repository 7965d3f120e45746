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

// Package cblc writes and reads "CBLC" (color bitmap location) tables.
// https://learn.microsoft.com/en-us/typography/opentype/spec/cblc
package cblc

import (
	"encoding/binary"
	"errors"
	"fmt"

	"seehuhn.de/go/sbix2cbdt/sbit"
)

// BitmapSizeLength is the length of a BitmapSize record.
const BitmapSizeLength = 48

// headerLength is the length of the table header (version and numSizes).
const headerLength = 8

// Writer assembles a CBLC table.
//
// Usage: call WriteHeader, then StartStrikes with the number of strikes,
// WriteStrike once per strike, and finally EndStrikes.
type Writer struct {
	// Version is the table version written by WriteHeader.
	Version uint32

	fm  *sbit.FontMetrics
	buf []byte

	numStrikes int
	written    int
	sizeTables []byte // BitmapSize records, fixed size
	indexData  []byte // IndexSubtableArrays and IndexSubtables
}

// NewWriter returns a new CBLC writer for a font with the given metrics.
func NewWriter(fm *sbit.FontMetrics) *Writer {
	return &Writer{
		Version:    sbit.Version2,
		fm:         fm,
		numStrikes: -1,
	}
}

// Bytes returns the table data.  The table is complete only after
// EndStrikes has been called.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteHeader writes the table version.
func (w *Writer) WriteHeader() {
	w.buf = binary.BigEndian.AppendUint32(w.buf, w.Version)
}

// StartStrikes writes the number of strikes.  Exactly this many calls to
// WriteStrike must follow.
func (w *Writer) StartStrikes(numStrikes int) error {
	if w.numStrikes >= 0 {
		return errors.New("cblc: StartStrikes called twice")
	}
	if numStrikes < 0 || numStrikes > 0xFFFF {
		return fmt.Errorf("cblc: invalid number of strikes %d", numStrikes)
	}
	w.numStrikes = numStrikes
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(numStrikes))
	w.sizeTables = make([]byte, 0, numStrikes*BitmapSizeLength)
	w.indexData = nil
	return nil
}

// WriteStrike writes the location information for one strike.  The glyph
// maps are the ones returned by the CBDT writer for this strike: glyphs in
// increasing order of glyph ID, followed by the end marker.
//
// Runs of consecutive glyph IDs with the same image format are stored in a
// common index subtable (format 1).
func (w *Writer) WriteStrike(sm *sbit.StrikeMetrics, maps []sbit.GlyphMap) error {
	if w.numStrikes < 0 {
		return errors.New("cblc: StartStrikes not called")
	}
	if w.written >= w.numStrikes {
		return fmt.Errorf("cblc: more than %d strikes", w.numStrikes)
	}

	ranges, err := Ranges(maps)
	if err != nil {
		return err
	}
	lineMetrics, err := sbit.NewLineMetrics(w.fm, sm)
	if err != nil {
		return err
	}
	for _, ppem := range []int{sm.PPEMX, sm.PPEMY} {
		if ppem < 0 || ppem > 255 {
			return &sbit.RangeError{Field: "ppem", Value: ppem, Min: 0, Max: 255}
		}
	}

	headersLen := 8 * len(ranges)
	headers := make([]byte, 0, headersLen)
	var subtables []byte
	for _, r := range ranges {
		headers = binary.BigEndian.AppendUint16(headers, uint16(r.First))
		headers = binary.BigEndian.AppendUint16(headers, uint16(r.Last))
		headers = binary.BigEndian.AppendUint32(headers, uint32(headersLen+len(subtables)))
		subtables, err = appendIndexSubtable1(subtables, maps[r.Start:r.End+1])
		if err != nil {
			return err
		}
	}

	arrayOffset := headerLength + BitmapSizeLength*w.numStrikes + len(w.indexData)
	indexTablesSize := len(headers) + len(subtables)
	if uint64(arrayOffset)+uint64(indexTablesSize) > 0xFFFF_FFFF {
		return errors.New("cblc: table exceeds 4GB")
	}

	rec := w.sizeTables
	rec = binary.BigEndian.AppendUint32(rec, uint32(arrayOffset))
	rec = binary.BigEndian.AppendUint32(rec, uint32(indexTablesSize))
	rec = binary.BigEndian.AppendUint32(rec, uint32(len(ranges)))
	rec = binary.BigEndian.AppendUint32(rec, 0) // colorRef
	rec = lineMetrics.Append(rec)               // hori
	rec = lineMetrics.Append(rec)               // vert
	rec = binary.BigEndian.AppendUint16(rec, uint16(maps[0].GID))
	rec = binary.BigEndian.AppendUint16(rec, uint16(maps[len(maps)-2].GID))
	rec = append(rec,
		byte(sm.PPEMX), byte(sm.PPEMY),
		sbit.BitDepth, sbit.FlagHorizontal)
	w.sizeTables = rec

	w.indexData = append(w.indexData, headers...)
	w.indexData = append(w.indexData, subtables...)
	w.written++
	return nil
}

// EndStrikes completes the table.
func (w *Writer) EndStrikes() error {
	if w.written != w.numStrikes {
		return fmt.Errorf("cblc: %d strikes announced, %d written",
			w.numStrikes, w.written)
	}
	w.buf = append(w.buf, w.sizeTables...)
	w.buf = append(w.buf, w.indexData...)
	w.sizeTables = nil
	w.indexData = nil
	return nil
}

// appendIndexSubtable1 appends an index subtable in format 1.  The last
// entry of maps only supplies the end offset of the previous glyph.
func appendIndexSubtable1(buf []byte, maps []sbit.GlyphMap) ([]byte, error) {
	imageFormat := maps[0].ImageFormat
	base := maps[0].Offset

	buf = binary.BigEndian.AppendUint16(buf, 1) // indexFormat
	buf = binary.BigEndian.AppendUint16(buf, imageFormat)
	buf = binary.BigEndian.AppendUint32(buf, base)
	for _, m := range maps[:len(maps)-1] {
		if m.ImageFormat != imageFormat {
			return nil, fmt.Errorf("cblc: glyph %d has image format %d, expected %d",
				m.GID, m.ImageFormat, imageFormat)
		}
		buf = binary.BigEndian.AppendUint32(buf, m.Offset-base)
	}
	buf = binary.BigEndian.AppendUint32(buf, maps[len(maps)-1].Offset-base)
	return buf, nil
}
