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
	"cmp"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/header"
)

// WriteFont writes the font f, with the tables from res added, to w.
// The tables listed in opt.Drop are omitted.  Table checksums and the
// checksum adjustment in the "head" table are recomputed.
func WriteFont(w io.Writer, f *Font, res *Result, opt *WriteOptions) (int64, error) {
	if opt == nil {
		opt = &WriteOptions{}
	}
	drop := opt.Drop
	if drop == nil {
		drop = DefaultDrop
	}

	tables := make(map[string][]byte, len(f.Tables)+2)
	for name, data := range f.Tables {
		if slices.Contains(drop, name) {
			continue
		}
		tables[name] = data
	}
	if data, ok := tables["head"]; ok {
		// header.Write updates the checksum in place
		tables["head"] = bytes.Clone(data)
	}
	if opt.WindowsCmap {
		data, err := retagCmap(tables["cmap"])
		if err != nil {
			return 0, err
		}
		tables["cmap"] = data
	}
	tables["CBDT"] = res.CBDT
	tables["CBLC"] = res.CBLC

	dropped := 0
	for _, name := range drop {
		if _, ok := f.Tables[name]; ok {
			dropped++
		}
	}
	Logger().Info("writing font", "tables", len(tables), "dropped", dropped)

	return header.Write(w, f.ScalerType, tables)
}

// retagCmap returns a copy of the "cmap" table where the first subtable,
// in encoding record order, is moved to platform 3 (Windows), encoding 10
// (Unicode full repertoire).  The subtable must use format 12.  An existing
// (3, 10) subtable is replaced.
func retagCmap(data []byte) ([]byte, error) {
	subtables, err := cmap.Decode(data)
	if err != nil {
		return nil, err
	}
	keys := slices.SortedFunc(maps.Keys(subtables), compareCmapKeys)
	if len(keys) == 0 {
		return nil, errors.New("convert: cmap table has no subtables")
	}

	first := keys[0]
	sub := subtables[first]
	format := uint16(sub[0])<<8 | uint16(sub[1])
	if format != 12 {
		return nil, fmt.Errorf("convert: first cmap subtable has format %d, need 12", format)
	}

	delete(subtables, first)
	subtables[cmap.Key{PlatformID: 3, EncodingID: 10}] = sub
	return subtables.Encode(), nil
}

func compareCmapKeys(a, b cmap.Key) int {
	if c := cmp.Compare(a.PlatformID, b.PlatformID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.EncodingID, b.EncodingID); c != 0 {
		return c
	}
	return cmp.Compare(a.Language, b.Language)
}
