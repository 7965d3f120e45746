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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiv(t *testing.T) {
	cases := []struct {
		a, b, want int
	}{
		{10, 2, 5},
		{5, 2, 2}, // ties go to even
		{7, 2, 4},
		{-5, 2, -2},
		{27200, 1000, 27},
		{27500, 1000, 28},
		{26500, 1000, 26},
		{327680, 2775, 118},
	}
	for _, c := range cases {
		got := Div(c.a, c.b)
		if got != c.want {
			t.Errorf("Div(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNewStrikeMetrics(t *testing.T) {
	fm := &FontMetrics{UnitsPerEm: 1000, Ascent: 800, Descent: 200}
	sm, err := NewStrikeMetrics(fm, []GlyphSize{{32, 32}, {34, 34}})
	if err != nil {
		t.Fatal(err)
	}
	want := &StrikeMetrics{Width: 34, Height: 34, PPEMX: 34, PPEMY: 34}
	if d := cmp.Diff(want, sm); d != "" {
		t.Error(d)
	}

	fm = &FontMetrics{UnitsPerEm: 2048, Ascent: 1900, Descent: 500}
	sm, err = NewStrikeMetrics(fm, []GlyphSize{{160, 128}, {136, 128}})
	if err != nil {
		t.Fatal(err)
	}
	want = &StrikeMetrics{Width: 160, Height: 128, PPEMX: 118, PPEMY: 118}
	if d := cmp.Diff(want, sm); d != "" {
		t.Error(d)
	}
}

func TestNewStrikeMetricsErrors(t *testing.T) {
	fm := &FontMetrics{UnitsPerEm: 1000, Ascent: 800, Descent: 200}

	_, err := NewStrikeMetrics(fm, nil)
	if !errors.Is(err, ErrNoGlyphs) {
		t.Errorf("expected ErrNoGlyphs, got %v", err)
	}

	_, err = NewStrikeMetrics(fm, []GlyphSize{{10, 0}})
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) {
		t.Errorf("expected RangeError, got %v", err)
	}

	_, err = NewStrikeMetrics(fm, []GlyphSize{{300, 20}})
	if !errors.As(err, &rangeErr) || rangeErr.Value != 300 {
		t.Errorf("expected RangeError for width 300, got %v", err)
	}

	_, err = NewStrikeMetrics(fm, []GlyphSize{{0, 20}})
	if err == nil {
		t.Error("zero mean advance not detected")
	}
}

func TestBearingY(t *testing.T) {
	cases := []struct {
		fm     FontMetrics
		ppem   int
		height int
		want   int
	}{
		{FontMetrics{1000, 800, 200}, 34, 32, 26},
		{FontMetrics{1000, 800, 200}, 34, 34, 27},
		{FontMetrics{1000, 1000, 0}, 200, 200, 127}, // raw value 200
		{FontMetrics{1000, 200, 800}, 200, 20, -50}, // no lower bound
	}
	for _, c := range cases {
		got := BearingY(&c.fm, c.ppem, c.height)
		if got != c.want {
			t.Errorf("BearingY(%v, %d, %d) = %d, want %d",
				c.fm, c.ppem, c.height, got, c.want)
		}
	}
}

func TestSmallGlyphMetrics(t *testing.T) {
	fm := &FontMetrics{UnitsPerEm: 1000, Ascent: 800, Descent: 200}
	sm := &StrikeMetrics{Width: 34, Height: 34, PPEMX: 34, PPEMY: 34}

	m, err := NewSmallGlyphMetrics(fm, sm, 30, 32)
	if err != nil {
		t.Fatal(err)
	}
	want := &SmallGlyphMetrics{Height: 32, Width: 30, BearingY: 26, Advance: 30}
	if d := cmp.Diff(want, m); d != "" {
		t.Error(d)
	}

	buf := m.Append(nil)
	if d := cmp.Diff([]byte{32, 30, 0, 26, 30}, buf); d != "" {
		t.Error(d)
	}
	m2, err := DecodeSmallGlyphMetrics(buf)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(m, m2); d != "" {
		t.Error(d)
	}

	_, err = NewSmallGlyphMetrics(fm, sm, 256, 32)
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) || rangeErr.Field != "glyph width" {
		t.Errorf("expected RangeError for width, got %v", err)
	}
}

func TestNegativeBearingEncoding(t *testing.T) {
	fm := &FontMetrics{UnitsPerEm: 1000, Ascent: 200, Descent: 800}
	sm := &StrikeMetrics{Width: 20, Height: 20, PPEMX: 200, PPEMY: 200}
	m, err := NewSmallGlyphMetrics(fm, sm, 20, 20)
	if err != nil {
		t.Fatal(err)
	}
	buf := m.Append(nil)
	if buf[3] != 0xCE { // -50
		t.Errorf("bearingY encoded as %#02x", buf[3])
	}
}

func TestLineMetrics(t *testing.T) {
	fm := &FontMetrics{UnitsPerEm: 1000, Ascent: 800, Descent: 200}
	sm := &StrikeMetrics{Width: 34, Height: 34, PPEMX: 34, PPEMY: 34}
	lm, err := NewLineMetrics(fm, sm)
	if err != nil {
		t.Fatal(err)
	}
	want := &LineMetrics{Ascender: 27, Descender: -7, WidthMax: 34}
	if d := cmp.Diff(want, lm); d != "" {
		t.Error(d)
	}

	buf := lm.Append(nil)
	if len(buf) != LineMetricsSize {
		t.Fatalf("wrong length %d", len(buf))
	}
	lm2, err := DecodeLineMetrics(buf)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(lm, lm2); d != "" {
		t.Error(d)
	}
}

func TestLineMetricsClamp(t *testing.T) {
	fm := &FontMetrics{UnitsPerEm: 1000, Ascent: 800, Descent: 200}
	sm := &StrikeMetrics{Width: 136, Height: 128, PPEMX: 160, PPEMY: 160}
	lm, err := NewLineMetrics(fm, sm)
	if err != nil {
		t.Fatal(err)
	}
	// ascent 128 is capped at 127, the descent absorbs the difference
	if lm.Ascender != 127 || lm.Descender != -33 {
		t.Errorf("got ascender %d, descender %d", lm.Ascender, lm.Descender)
	}
}
