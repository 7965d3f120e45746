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

package convert

import (
	"bytes"
	"fmt"
	"io"

	"seehuhn.de/go/sbix2cbdt/sbit"
	"seehuhn.de/go/sbix2cbdt/sfnt/head"
	"seehuhn.de/go/sbix2cbdt/sfnt/hhea"
	"seehuhn.de/go/sbix2cbdt/sfnt/sbix"
	"seehuhn.de/go/sbix2cbdt/sfnt/table"
)

// Font is an sfnt font file, held in memory.
type Font struct {
	ScalerType uint32
	Tables     map[string][]byte

	Head      *head.Info
	Hhea      *hhea.Info
	NumGlyphs int
}

// Load reads all tables of an sfnt font file.  The "head", "hhea" and
// "maxp" tables are decoded.
func Load(r io.ReaderAt) (*Font, error) {
	h, err := table.ReadHeader(r)
	if err != nil {
		return nil, err
	}

	f := &Font{
		ScalerType: h.ScalerType,
		Tables:     make(map[string][]byte, len(h.Toc)),
	}
	for _, name := range h.Names() {
		data, err := h.ReadTableBytes(r, name)
		if err != nil {
			return nil, fmt.Errorf("reading %q table: %w", name, err)
		}
		f.Tables[name] = data
	}

	for _, name := range []string{"head", "hhea", "maxp"} {
		if _, ok := f.Tables[name]; !ok {
			return nil, &table.ErrNoTable{Name: name}
		}
	}
	f.Head, err = head.Read(bytes.NewReader(f.Tables["head"]))
	if err != nil {
		return nil, err
	}
	f.Hhea, err = hhea.Read(bytes.NewReader(f.Tables["hhea"]))
	if err != nil {
		return nil, err
	}
	f.NumGlyphs, err = table.ReadMaxp(bytes.NewReader(f.Tables["maxp"]))
	if err != nil {
		return nil, err
	}

	Logger().Info("font loaded",
		"tables", len(f.Tables),
		"glyphs", f.NumGlyphs)
	return f, nil
}

// Metrics returns the font-wide metrics used for the bitmap strikes.
// The descent is the negated "hhea" descender.
func (f *Font) Metrics() *sbit.FontMetrics {
	return &sbit.FontMetrics{
		UnitsPerEm: f.Head.UnitsPerEm,
		Ascent:     f.Hhea.Ascent,
		Descent:    -f.Hhea.Descent,
	}
}

// Sbix decodes the "sbix" table of the font.
func (f *Font) Sbix() (*sbix.Table, error) {
	data, ok := f.Tables["sbix"]
	if !ok {
		return nil, &table.ErrNoTable{Name: "sbix"}
	}
	return sbix.Decode(data, f.NumGlyphs)
}
