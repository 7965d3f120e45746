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

package table

import (
	"bytes"
	"encoding/binary"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestGoRegular(t *testing.T) {
	r := bytes.NewReader(goregular.TTF)
	h, err := ReadHeader(r)
	if err != nil {
		t.Fatal(err)
	}
	if h.ScalerType != ScalerTypeTrueType {
		t.Errorf("wrong scaler type 0x%08x", h.ScalerType)
	}
	if !h.Has("head", "hhea", "maxp", "glyf", "loca") {
		t.Errorf("missing tables, got %v", h.Names())
	}
	if h.Has("sbix") {
		t.Error("unexpected sbix table")
	}

	_, err = h.ReadTableBytes(r, "sbix")
	if !IsMissing(err) {
		t.Errorf("expected missing table error, got %v", err)
	}

	maxp, err := h.ReadTableBytes(r, "maxp")
	if err != nil {
		t.Fatal(err)
	}
	numGlyphs, err := ReadMaxp(bytes.NewReader(maxp))
	if err != nil {
		t.Fatal(err)
	}
	if numGlyphs < 100 {
		t.Errorf("implausible number of glyphs %d", numGlyphs)
	}
}

// TestUnknownTables checks that tables with unusual tags are listed.
func TestUnknownTables(t *testing.T) {
	tags := []string{"abcd", "sbix"}
	data := binary.BigEndian.AppendUint32(nil, ScalerTypeTrueType)
	data = binary.BigEndian.AppendUint16(data, uint16(len(tags)))
	data = append(data, make([]byte, 6)...)
	start := 12 + 16*len(tags)
	for i, tag := range tags {
		data = append(data, tag...)
		data = binary.BigEndian.AppendUint32(data, 0) // checksum
		data = binary.BigEndian.AppendUint32(data, uint32(start+8*i))
		data = binary.BigEndian.AppendUint32(data, 8)
	}
	data = append(data, make([]byte, 8*len(tags))...)

	h, err := ReadHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	names := h.Names()
	if len(names) != 2 || names[0] != "abcd" || names[1] != "sbix" {
		t.Errorf("wrong tables %v", names)
	}

	// overlapping tables
	binary.BigEndian.PutUint32(data[12+16+8:], uint32(start+4))
	if _, err := ReadHeader(bytes.NewReader(data)); err == nil {
		t.Error("overlapping tables accepted")
	}
}

func TestReadHeaderErrors(t *testing.T) {
	cases := map[string][]byte{
		"empty":       nil,
		"scaler type": {0, 0, 0, 1, 0, 1},
		"no tables":   {0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}
	for name, data := range cases {
		if _, err := ReadHeader(bytes.NewReader(data)); err == nil {
			t.Errorf("%s: missing error", name)
		}
	}
}

func TestReadMaxp(t *testing.T) {
	if n, err := ReadMaxp(bytes.NewReader([]byte{0, 0, 0x50, 0, 1, 2})); err != nil || n != 258 {
		t.Errorf("got %d, %v", n, err)
	}
	bad := [][]byte{
		{0, 2, 0, 0, 0, 1},
		{0, 1, 0, 0, 0, 0},
		{0, 1, 0},
	}
	for _, data := range bad {
		if _, err := ReadMaxp(bytes.NewReader(data)); err == nil {
			t.Errorf("missing error for % x", data)
		}
	}
}
