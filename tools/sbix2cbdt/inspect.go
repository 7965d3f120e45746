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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/sbix2cbdt/convert"
	"seehuhn.de/go/sbix2cbdt/pngfile"
	"seehuhn.de/go/sbix2cbdt/sfnt/cbdt"
	"seehuhn.de/go/sbix2cbdt/sfnt/cblc"
	"seehuhn.de/go/sbix2cbdt/sfnt/table"
)

type inspectCmd struct {
	Glyphs bool   `short:"g" help:"List the individual glyphs of each strike."`
	Font   string `arg:"" type:"existingfile" help:"Font file to inspect."`
}

func (cmd *inspectCmd) Run(c *cli) (err error) {
	stop, err := c.setup()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, stop())
	}()

	in, err := os.Open(cmd.Font)
	if err != nil {
		return err
	}
	defer in.Close()
	f, err := convert.Load(in)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Font, err)
	}
	return inspect(os.Stdout, f, cmd.Glyphs)
}

func inspect(w io.Writer, f *convert.Font, showGlyphs bool) error {
	fm := f.Metrics()
	fmt.Fprintf(w, "upem=%d ascent=%d descent=%d glyphs=%d\n",
		fm.UnitsPerEm, fm.Ascent, fm.Descent, f.NumGlyphs)
	bbox := f.Head.FontBBox
	fmt.Fprintf(w, "revision %s, lineGap=%d, bbox [%d %d %d %d]\n",
		f.Head.FontRevision, f.Hhea.LineGap, bbox.LLx, bbox.LLy, bbox.URx, bbox.URy)
	if !f.Head.Created.IsZero() {
		fmt.Fprintf(w, "created %s, modified %s\n",
			f.Head.Created.Format(time.DateTime), f.Head.Modified.Format(time.DateTime))
	}

	if sbixTable, err := f.Sbix(); err == nil {
		var ppems []string
		for _, s := range sbixTable.Strikes {
			ppems = append(ppems, fmt.Sprint(s.PPEM))
		}
		fmt.Fprintf(w, "sbix: %d strikes, ppem %s\n",
			len(sbixTable.Strikes), strings.Join(ppems, ", "))
	} else if !table.IsMissing(err) {
		return err
	}

	dataTable, ok1 := f.Tables["CBDT"]
	locTable, ok2 := f.Tables["CBLC"]
	if !ok1 || !ok2 {
		fmt.Fprintln(w, "no CBDT/CBLC tables")
		return nil
	}
	version, err := cbdt.ReadVersion(dataTable)
	if err != nil {
		return err
	}
	loc, err := cblc.Decode(locTable)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "CBDT: %d bytes, version 0x%08x\n", len(dataTable), version)
	fmt.Fprintf(w, "CBLC: %d bytes, version 0x%08x, %d strikes\n",
		len(locTable), loc.Version, len(loc.Strikes))

	for i, s := range loc.Strikes {
		fmt.Fprintf(w, "\nstrike %d: ppem %dx%d, bit depth %d, glyphs %d-%d\n",
			i, s.PPEMX, s.PPEMY, s.BitDepth, s.StartGlyph, s.EndGlyph)
		fmt.Fprintf(w, "  hori: ascender %d, descender %d, widthMax %d\n",
			s.Hori.Ascender, s.Hori.Descender, s.Hori.WidthMax)
		for _, sub := range s.Subtables {
			fmt.Fprintf(w, "  glyphs %d-%d: index format %d, image format %d, offset %d\n",
				sub.First, sub.Last, sub.IndexFormat, sub.ImageFormat, sub.ImageDataOffset)
			if !showGlyphs {
				continue
			}
			for gid := sub.First; ; gid++ {
				printGlyph(w, dataTable, s, gid)
				if gid == sub.Last {
					break
				}
			}
		}
	}
	return nil
}

func printGlyph(w io.Writer, dataTable []byte, s *cblc.Strike, gid glyph.ID) {
	start, end, format, ok := s.Lookup(gid)
	if !ok {
		fmt.Fprintf(w, "    %5d: no data\n", gid)
		return
	}
	g, err := cbdt.ReadGlyph(dataTable, start, end, format)
	if err != nil {
		fmt.Fprintf(w, "    %5d: %v\n", gid, err)
		return
	}

	var chunks []string
	info, err := pngfile.New(g.PNG).Chunks()
	for _, c := range info {
		chunks = append(chunks, fmt.Sprintf("%s(%d)", c.Type, c.Length))
	}
	if err != nil {
		chunks = append(chunks, err.Error())
	}

	if m := g.Metrics; m != nil {
		fmt.Fprintf(w, "    %5d: %dx%d bearing (%d,%d) advance %d, %s\n",
			gid, m.Width, m.Height, m.BearingX, m.BearingY, m.Advance,
			strings.Join(chunks, " "))
	} else {
		fmt.Fprintf(w, "    %5d: %s\n", gid, strings.Join(chunks, " "))
	}
}
