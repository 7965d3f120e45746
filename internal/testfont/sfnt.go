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

// Package testfont provides fonts and images for use in tests.
package testfont

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"maps"
	"slices"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/header"

	"seehuhn.de/go/sbix2cbdt/sfnt/table"
)

// PNG returns a PNG image of the given size.
// The image contains only IHDR, IDAT and IEND chunks.
func PNG(width, height int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(3 * x), G: uint8(5 * y), B: 128, A: 200})
		}
	}
	buf := &bytes.Buffer{}
	err := png.Encode(buf, img)
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Chunk returns the binary encoding of a PNG chunk, with a valid CRC.
func Chunk(tp string, data []byte) []byte {
	res := make([]byte, 8, 12+len(data))
	binary.BigEndian.PutUint32(res[0:4], uint32(len(data)))
	copy(res[4:8], tp)
	res = append(res, data...)
	return binary.BigEndian.AppendUint32(res, crc32.ChecksumIEEE(res[4:]))
}

// WithChunks returns a copy of the PNG data with the given chunks inserted
// after the IHDR chunk.
func WithChunks(data []byte, chunks ...[]byte) []byte {
	const afterIHDR = 8 + 12 + 13
	res := append([]byte{}, data[:afterIHDR]...)
	for _, c := range chunks {
		res = append(res, c...)
	}
	return append(res, data[afterIHDR:]...)
}

// SbixGlyph is the glyph data stored in an sbix strike.
type SbixGlyph struct {
	GraphicType string
	Data        []byte
}

// Sbix returns an sbix table.  Strikes are stored in order of increasing
// ppem.
func Sbix(numGlyphs int, strikes map[uint16]map[glyph.ID]SbixGlyph) []byte {
	ppems := slices.Sorted(maps.Keys(strikes))

	var out []byte
	out = binary.BigEndian.AppendUint16(out, 1) // version
	out = binary.BigEndian.AppendUint16(out, 1) // flags
	out = binary.BigEndian.AppendUint32(out, uint32(len(ppems)))
	offsetPos := len(out)
	out = append(out, make([]byte, 4*len(ppems))...)

	for i, ppem := range ppems {
		strikeStart := len(out)
		binary.BigEndian.PutUint32(out[offsetPos+4*i:], uint32(strikeStart))

		out = binary.BigEndian.AppendUint16(out, ppem)
		out = binary.BigEndian.AppendUint16(out, 72)
		glyphPos := len(out)
		out = append(out, make([]byte, 4*(numGlyphs+1))...)

		glyphs := strikes[ppem]
		for gid := 0; gid <= numGlyphs; gid++ {
			binary.BigEndian.PutUint32(out[glyphPos+4*gid:], uint32(len(out)-strikeStart))
			if gid == numGlyphs {
				break
			}
			g, ok := glyphs[glyph.ID(gid)]
			if !ok {
				continue
			}
			out = append(out, 0, 0, 0, 0) // origin offsets
			out = append(out, g.GraphicType...)
			out = append(out, g.Data...)
		}
	}
	return out
}

// Tables returns the tables of the Go Regular font.
func Tables() (scalerType uint32, tables map[string][]byte) {
	r := bytes.NewReader(goregular.TTF)
	h, err := table.ReadHeader(r)
	if err != nil {
		panic(err)
	}
	tables = make(map[string][]byte)
	for name := range h.Toc {
		data, err := h.ReadTableBytes(r, name)
		if err != nil {
			panic(err)
		}
		tables[name] = data
	}
	return h.ScalerType, tables
}

// NumGlyphs returns the number of glyphs in the Go Regular font.
func NumGlyphs() int {
	_, tables := Tables()
	numGlyphs, err := table.ReadMaxp(bytes.NewReader(tables["maxp"]))
	if err != nil {
		panic(err)
	}
	return numGlyphs
}

// EmojiFont returns the Go Regular font with an added sbix table
// containing the given strikes.
func EmojiFont(strikes map[uint16]map[glyph.ID]SbixGlyph) []byte {
	scalerType, tables := Tables()
	tables["sbix"] = Sbix(NumGlyphs(), strikes)

	buf := &bytes.Buffer{}
	_, err := header.Write(buf, scalerType, tables)
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}
