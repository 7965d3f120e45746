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
	"fmt"
)

// A Chunk is a single chunk of a PNG file.
// Data aliases the underlying image data.
type Chunk struct {
	Type string
	Data []byte
	CRC  [4]byte
}

// Reader reads the chunks of a PNG file sequentially.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadSignature reads and checks the 8-byte PNG signature.
func (r *Reader) ReadSignature() error {
	if len(r.data)-r.pos < len(Signature) ||
		!bytes.Equal(r.data[r.pos:r.pos+len(Signature)], Signature[:]) {
		return ErrBadSignature
	}
	r.pos += len(Signature)
	return nil
}

// ReadChunk reads the next chunk.  The CRC is returned but not checked.
func (r *Reader) ReadChunk() (*Chunk, error) {
	avail := len(r.data) - r.pos
	if avail < 8 {
		return nil, fmt.Errorf("%w: truncated chunk header at byte %d", ErrBadChunk, r.pos)
	}
	length := binary.BigEndian.Uint32(r.data[r.pos : r.pos+4])
	tp := string(r.data[r.pos+4 : r.pos+8])
	avail -= 8
	if uint64(length) > uint64(avail) {
		return nil, fmt.Errorf("%w: %q chunk needs %d bytes, %d available",
			ErrBadChunk, tp, length, avail)
	}
	if avail-int(length) < 4 {
		return nil, fmt.Errorf("%w: %q chunk has truncated CRC", ErrBadChunk, tp)
	}

	body := r.pos + 8
	chunk := &Chunk{
		Type: tp,
		Data: r.data[body : body+int(length)],
	}
	copy(chunk.CRC[:], r.data[body+int(length):])
	r.pos = body + int(length) + 4
	return chunk, nil
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int {
	return r.pos
}
