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

package head

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"seehuhn.de/go/sbix2cbdt/sfnt/table"
)

func TestEpoch(t *testing.T) {
	epoch := time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
	if zeroTime != epoch.Unix() {
		t.Errorf("zeroTime != %d", epoch.Unix())
	}
	if !decodeTime(0).IsZero() {
		t.Error("decodeTime(0) != zero")
	}
	if got := decodeTime(86400); !got.Equal(epoch.Add(24 * time.Hour)) {
		t.Errorf("decodeTime(86400) = %s", got)
	}
}

func TestGoRegular(t *testing.T) {
	r := bytes.NewReader(goregular.TTF)
	h, err := table.ReadHeader(r)
	if err != nil {
		t.Fatal(err)
	}
	data, err := h.ReadTableBytes(r, "head")
	if err != nil {
		t.Fatal(err)
	}
	info, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if int(info.UnitsPerEm) != int(f.UnitsPerEm()) {
		t.Errorf("unitsPerEm: got %d, expected %d", info.UnitsPerEm, f.UnitsPerEm())
	}
	if info.FontBBox.LLx >= info.FontBBox.URx || info.FontBBox.LLy >= info.FontBBox.URy {
		t.Errorf("invalid bounding box %v", info.FontBBox)
	}
}

func TestReadErrors(t *testing.T) {
	good := &binaryHead{
		Version:     0x00010000,
		MagicNumber: 0x5F0F3CF5,
		UnitsPerEm:  1000,
	}
	encode := func(enc *binaryHead) []byte {
		buf := &bytes.Buffer{}
		_ = binary.Write(buf, binary.BigEndian, enc)
		return buf.Bytes()
	}

	if _, err := Read(bytes.NewReader(encode(good))); err != nil {
		t.Fatal(err)
	}

	badVersion := *good
	badVersion.Version = 0x00020000
	badMagic := *good
	badMagic.MagicNumber = 0
	badUnits := *good
	badUnits.UnitsPerEm = 0
	for _, enc := range []*binaryHead{&badVersion, &badMagic, &badUnits} {
		if _, err := Read(bytes.NewReader(encode(enc))); err == nil {
			t.Errorf("missing error for %+v", enc)
		}
	}

	if _, err := Read(bytes.NewReader(encode(good)[:20])); err == nil {
		t.Error("truncated table accepted")
	}
}
