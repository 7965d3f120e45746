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
	"fmt"
	"slices"

	"seehuhn.de/go/sbix2cbdt/sbit"
)

// DefaultPPEM is the sbix strike converted when no strike is selected
// explicitly.  If the font has no strike of this size, the largest strike
// is used.
const DefaultPPEM = 160

// DefaultDrop lists the tables which are removed from the output font:
// the sbix table itself, outlines and the tables which only make sense
// together with outlines.
var DefaultDrop = []string{
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG",
	"sbix", "vmtx", "vhea", "morx",
}

// Options controls the conversion.  A nil *Options is equivalent to the
// zero value.
type Options struct {
	// PPEM lists the sbix strikes to convert.  If empty, only the strike
	// with DefaultPPEM (or the largest strike) is converted.
	PPEM []uint16

	// ImageFormat is the image format of the glyph records.  Only format 17
	// (small metrics and PNG data) is implemented, which is also the
	// default.  Other values make Convert fail.
	ImageFormat uint16

	// Strict makes glyphs with unusable image data an error, instead of
	// skipping them.
	Strict bool

	// Version is the table version of the CBDT and CBLC tables.
	// The default is 2.0.
	Version uint32
}

func (opt *Options) imageFormat() (uint16, error) {
	switch opt.ImageFormat {
	case 0, sbit.FormatSmallPNG:
		return sbit.FormatSmallPNG, nil
	default:
		return 0, &sbit.NotSupportedError{
			SubSystem: "convert",
			Feature:   fmt.Sprintf("image format %d", opt.ImageFormat),
		}
	}
}

func (opt *Options) version() uint32 {
	if opt.Version == 0 {
		return sbit.Version2
	}
	return opt.Version
}

// WriteOptions controls which tables end up in the output font.
// A nil *WriteOptions is equivalent to the zero value.
type WriteOptions struct {
	// Drop lists the tables to remove.  If nil, DefaultDrop is used.
	Drop []string

	// WindowsCmap moves the first "cmap" subtable, in encoding record
	// order, to platform 3 (Windows), encoding 10 (Unicode full
	// repertoire).  This requires the subtable to use format 12.
	// The encoding records of the rewritten table are sorted.
	WindowsCmap bool
}

// DropList returns DefaultDrop without the tables in keep.
func DropList(keep []string) []string {
	return slices.DeleteFunc(slices.Clone(DefaultDrop), func(tag string) bool {
		return slices.Contains(keep, tag)
	})
}
