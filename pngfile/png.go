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

// Package pngfile reads the chunk structure of PNG images.
//
// The package only looks at the container format: it extracts the image
// dimensions from the IHDR chunk and can remove chunks from an image without
// touching the compressed pixel data.  Chunk CRCs are copied verbatim and
// are never verified.
//
// https://www.w3.org/TR/png/#5DataRep
package pngfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
)

// Signature is the 8-byte magic number at the start of every PNG file.
var Signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// EssentialChunks lists the chunk types needed to decode a static image:
// the image header, palette, transparency, sRGB color space, image data, and
// the terminal chunk.  All other chunks are ancillary metadata.
var EssentialChunks = []string{"IHDR", "PLTE", "tRNS", "sRGB", "IDAT", "IEND"}

var (
	// ErrBadSignature is returned if the data does not start with the
	// PNG signature.
	ErrBadSignature = errors.New("pngfile: invalid PNG signature")

	// ErrBadChunk is returned for truncated chunks, and if the first chunk
	// of an image is not an IHDR chunk.
	ErrBadChunk = errors.New("pngfile: malformed chunk")
)

// Header contains the information from the IHDR chunk.
type Header struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

const ihdrLength = 13

// An Image is a PNG file held in memory.
//
// An Image must not be modified after creation, and is not safe for
// concurrent use.
type Image struct {
	data   []byte
	header *Header
}

// New wraps the given PNG data.
// The data is not parsed until it is needed.
func New(data []byte) *Image {
	return &Image{data: data}
}

// Bytes returns the PNG data.
// The returned slice must not be modified.
func (img *Image) Bytes() []byte {
	return img.data
}

// Len returns the length of the PNG data in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// ReadHeader checks the PNG signature and decodes the IHDR chunk.
// The result is cached, repeated calls do not parse the data again.
func (img *Image) ReadHeader() (*Header, error) {
	if img.header != nil {
		return img.header, nil
	}

	r := NewReader(img.data)
	err := r.ReadSignature()
	if err != nil {
		return nil, err
	}
	chunk, err := r.ReadChunk()
	if err != nil {
		return nil, err
	}
	if chunk.Type != "IHDR" {
		return nil, fmt.Errorf("%w: first chunk is %q, not IHDR", ErrBadChunk, chunk.Type)
	}
	if len(chunk.Data) < ihdrLength {
		return nil, fmt.Errorf("%w: IHDR too short (%d bytes)", ErrBadChunk, len(chunk.Data))
	}

	buf := chunk.Data
	img.header = &Header{
		Width:       binary.BigEndian.Uint32(buf[0:4]),
		Height:      binary.BigEndian.Uint32(buf[4:8]),
		BitDepth:    buf[8],
		ColorType:   buf[9],
		Compression: buf[10],
		Filter:      buf[11],
		Interlace:   buf[12],
	}
	return img.header, nil
}

// Size returns the width and height of the image in pixels.
func (img *Image) Size() (width, height int, err error) {
	hdr, err := img.ReadHeader()
	if err != nil {
		return 0, 0, err
	}
	return int(hdr.Width), int(hdr.Height), nil
}

// Filter returns a new image which contains only the chunks with the given
// types.  Chunks are kept in their original order and copied byte for byte,
// including the stored CRC.  Reading stops after the IEND chunk, whether or
// not IEND is among the allowed types.
func (img *Image) Filter(allowed ...string) (*Image, error) {
	r := NewReader(img.data)
	err := r.ReadSignature()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(img.data))
	out = append(out, Signature[:]...)
	for {
		start := r.pos
		chunk, err := r.ReadChunk()
		if err != nil {
			return nil, err
		}
		if slices.Contains(allowed, chunk.Type) {
			out = append(out, img.data[start:r.pos]...)
		}
		if chunk.Type == "IEND" {
			break
		}
	}

	res := &Image{data: out}
	if img.header != nil && slices.Contains(allowed, "IHDR") {
		res.header = img.header
	}
	return res, nil
}

// ChunkInfo describes one chunk of an image.
type ChunkInfo struct {
	Type   string
	Length int
}

// Chunks lists the chunks of the image, up to and including IEND.
func (img *Image) Chunks() ([]ChunkInfo, error) {
	r := NewReader(img.data)
	err := r.ReadSignature()
	if err != nil {
		return nil, err
	}
	var res []ChunkInfo
	for {
		chunk, err := r.ReadChunk()
		if err != nil {
			return res, err
		}
		res = append(res, ChunkInfo{Type: chunk.Type, Length: len(chunk.Data)})
		if chunk.Type == "IEND" {
			return res, nil
		}
	}
}
