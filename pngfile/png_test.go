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

package pngfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func makePNG(t testing.TB, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: 200, A: 128})
		}
	}
	buf := &bytes.Buffer{}
	err := png.Encode(buf, img)
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeChunk(tp string, data []byte) []byte {
	res := make([]byte, 8, 12+len(data))
	binary.BigEndian.PutUint32(res[0:4], uint32(len(data)))
	copy(res[4:8], tp)
	res = append(res, data...)
	crc := crc32.ChecksumIEEE(res[4:])
	return binary.BigEndian.AppendUint32(res, crc)
}

// withChunks inserts the given chunks directly after IHDR.
func withChunks(data []byte, chunks ...[]byte) []byte {
	const afterIHDR = 8 + 12 + ihdrLength
	res := append([]byte{}, data[:afterIHDR]...)
	for _, c := range chunks {
		res = append(res, c...)
	}
	return append(res, data[afterIHDR:]...)
}

func chunkTypes(t *testing.T, img *Image) []string {
	t.Helper()
	info, err := img.Chunks()
	if err != nil {
		t.Fatal(err)
	}
	var res []string
	for _, c := range info {
		res = append(res, c.Type)
	}
	return res
}

func TestSize(t *testing.T) {
	img := New(makePNG(t, 32, 17))
	w, h, err := img.Size()
	if err != nil {
		t.Fatal(err)
	}
	if w != 32 || h != 17 {
		t.Errorf("wrong size %dx%d, expected 32x17", w, h)
	}

	hdr, err := img.ReadHeader()
	if err != nil {
		t.Fatal(err)
	}
	expected := &Header{Width: 32, Height: 17, BitDepth: 8, ColorType: 6}
	if d := cmp.Diff(expected, hdr); d != "" {
		t.Error(d)
	}
}

func TestHeaderCached(t *testing.T) {
	img := New(makePNG(t, 4, 4))
	h1, err := img.ReadHeader()
	if err != nil {
		t.Fatal(err)
	}
	h2, err := img.ReadHeader()
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Error("header was parsed twice")
	}
}

func TestBadSignature(t *testing.T) {
	data := makePNG(t, 4, 4)
	data[3] = 'X'
	_, _, err := New(data).Size()
	if !errors.Is(err, ErrBadSignature) {
		t.Errorf("expected ErrBadSignature, got %v", err)
	}
	_, err = New(data).Filter(EssentialChunks...)
	if !errors.Is(err, ErrBadSignature) {
		t.Errorf("expected ErrBadSignature, got %v", err)
	}
	_, _, err = New(nil).Size()
	if !errors.Is(err, ErrBadSignature) {
		t.Errorf("expected ErrBadSignature for empty data, got %v", err)
	}
}

func TestFirstChunkNotIHDR(t *testing.T) {
	data := append([]byte{}, Signature[:]...)
	data = append(data, encodeChunk("tEXt", []byte("Comment\x00hello"))...)
	data = append(data, encodeChunk("IEND", nil)...)
	_, _, err := New(data).Size()
	if !errors.Is(err, ErrBadChunk) {
		t.Errorf("expected ErrBadChunk, got %v", err)
	}
}

func TestTruncated(t *testing.T) {
	data := makePNG(t, 5, 3)
	for n := 0; n < len(data); n++ {
		_, err := New(data[:n]).Filter(EssentialChunks...)
		var want error
		if n < len(Signature) {
			want = ErrBadSignature
		} else {
			want = ErrBadChunk
		}
		if !errors.Is(err, want) {
			t.Errorf("%d bytes: expected %v, got %v", n, want, err)
		}
	}
}

func TestReadChunk(t *testing.T) {
	payload := []byte("Software\x00test")
	data := append([]byte{}, Signature[:]...)
	data = append(data, encodeChunk("tEXt", payload)...)

	r := NewReader(data)
	err := r.ReadSignature()
	if err != nil {
		t.Fatal(err)
	}
	chunk, err := r.ReadChunk()
	if err != nil {
		t.Fatal(err)
	}
	if chunk.Type != "tEXt" || !bytes.Equal(chunk.Data, payload) {
		t.Errorf("wrong chunk %q %q", chunk.Type, chunk.Data)
	}
	if !bytes.Equal(chunk.CRC[:], data[len(data)-4:]) {
		t.Errorf("wrong CRC % x", chunk.CRC)
	}
	if r.Pos() != len(data) {
		t.Errorf("reader at %d, expected %d", r.Pos(), len(data))
	}
}

func TestFilter(t *testing.T) {
	orig := makePNG(t, 9, 7)
	data := withChunks(orig,
		encodeChunk("gAMA", []byte{0, 0, 0xb1, 0x8f}),
		encodeChunk("tEXt", []byte("Comment\x00strip me")),
		encodeChunk("sRGB", []byte{0}),
		encodeChunk("tIME", []byte{0x07, 0xea, 10, 15, 12, 0, 0}),
	)

	img := New(data)
	filtered, err := img.Filter(EssentialChunks...)
	if err != nil {
		t.Fatal(err)
	}

	got := chunkTypes(t, filtered)
	var want []string
	for _, tp := range chunkTypes(t, New(orig)) {
		want = append(want, tp)
		if tp == "IHDR" {
			want = append(want, "sRGB")
		}
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("chunk list (-want +got):\n%s", d)
	}
	if !bytes.HasPrefix(filtered.Bytes(), Signature[:]) {
		t.Error("filtered image lacks signature")
	}

	// The stored CRCs are copied verbatim, so the result must still decode.
	a, err := png.Decode(bytes.NewReader(orig))
	if err != nil {
		t.Fatal(err)
	}
	b, err := png.Decode(bytes.NewReader(filtered.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !a.Bounds().Eq(b.Bounds()) {
		t.Fatalf("bounds differ: %v != %v", a.Bounds(), b.Bounds())
	}
	for y := 0; y < 7; y++ {
		for x := 0; x < 9; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("pixel (%d,%d) differs", x, y)
			}
		}
	}
}

func TestFilterIdempotent(t *testing.T) {
	data := withChunks(makePNG(t, 3, 3),
		encodeChunk("pHYs", make([]byte, 9)),
		encodeChunk("iTXt", []byte("XML:com.adobe.xmp\x00\x00\x00\x00\x00<x/>")))

	once, err := New(data).Filter(EssentialChunks...)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := once.Filter(EssentialChunks...)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(once.Bytes(), twice.Bytes()) {
		t.Error("filtering is not idempotent")
	}
	types := chunkTypes(t, twice)
	if types[len(types)-1] != "IEND" {
		t.Errorf("last chunk is %q", types[len(types)-1])
	}
}

func TestFilterStopsAtIEND(t *testing.T) {
	data := makePNG(t, 2, 2)
	data = append(data, encodeChunk("tEXt", []byte("after\x00end"))...)
	data = append(data, 1, 2, 3) // garbage

	filtered, err := New(data).Filter("IHDR", "IDAT")
	if err != nil {
		t.Fatal(err)
	}
	got := chunkTypes(t, New(append(filtered.Bytes(), encodeChunk("IEND", nil)...)))
	for _, tp := range got[:len(got)-1] {
		if tp != "IHDR" && tp != "IDAT" {
			t.Errorf("unexpected chunk %q", tp)
		}
	}
}

func TestFilterKeepsHeader(t *testing.T) {
	img := New(makePNG(t, 11, 13))
	filtered, err := img.Filter(EssentialChunks...)
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := filtered.Size()
	if err != nil {
		t.Fatal(err)
	}
	if w != 11 || h != 13 {
		t.Errorf("wrong size %dx%d", w, h)
	}
}

func FuzzFilter(f *testing.F) {
	f.Add(makePNG(f, 1, 1))
	f.Add(withChunks(makePNG(f, 2, 3), encodeChunk("tEXt", []byte("a\x00b"))))
	f.Fuzz(func(t *testing.T, data []byte) {
		once, err := New(data).Filter(EssentialChunks...)
		if err != nil {
			return
		}
		twice, err := once.Filter(EssentialChunks...)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(once.Bytes(), twice.Bytes()) {
			t.Error("filtering is not idempotent")
		}
	})
}
