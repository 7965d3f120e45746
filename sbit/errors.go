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

import (
	"errors"
	"fmt"

	"seehuhn.de/go/sfnt/glyph"
)

// ErrNoGlyphs is returned when strike metrics are requested for an empty
// set of glyphs.
var ErrNoGlyphs = errors.New("sbit: no glyphs")

// RangeError indicates that a value does not fit into its binary field.
type RangeError struct {
	Field    string
	Value    int
	Min, Max int
}

func (err *RangeError) Error() string {
	return fmt.Sprintf("sbit: %s %d outside range [%d, %d]",
		err.Field, err.Value, err.Min, err.Max)
}

func checkRange(field string, value, lo, hi int) error {
	if value < lo || value > hi {
		return &RangeError{Field: field, Value: value, Min: lo, Max: hi}
	}
	return nil
}

// OrderError indicates that glyphs were not given in increasing order
// of glyph ID.
type OrderError struct {
	Prev, GID glyph.ID
}

func (err *OrderError) Error() string {
	return fmt.Sprintf("sbit: glyph %d follows glyph %d", err.GID, err.Prev)
}

// NotSupportedError indicates a table feature which this module does
// not implement.
type NotSupportedError struct {
	SubSystem string
	Feature   string
}

func (err *NotSupportedError) Error() string {
	return err.SubSystem + ": " + err.Feature + " not supported"
}
