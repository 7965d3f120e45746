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

// Package convert turns the "sbix" color bitmaps of a font into
// "CBDT"/"CBLC" tables.
package convert

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/sbix2cbdt/pngfile"
	"seehuhn.de/go/sbix2cbdt/sbit"
	"seehuhn.de/go/sbix2cbdt/sfnt/cbdt"
	"seehuhn.de/go/sbix2cbdt/sfnt/cblc"
	"seehuhn.de/go/sbix2cbdt/sfnt/sbix"
)

// Result holds the generated tables.
type Result struct {
	CBDT []byte
	CBLC []byte

	Strikes []*StrikeReport
}

// StrikeReport describes how one sbix strike was converted.
type StrikeReport struct {
	SbixPPEM uint16
	Metrics  *sbit.StrikeMetrics
	Glyphs   int // number of glyphs written
	Ranges   int // number of index subtables
	Skipped  []*SkippedGlyph
}

// SkippedGlyph records a glyph which could not be converted.
type SkippedGlyph struct {
	GID    glyph.ID
	Reason error
}

// ErrNoStrike is returned if the font has no usable sbix strike.
var ErrNoStrike = errors.New("convert: no sbix strike found")

// Convert generates CBDT and CBLC tables from the sbix table of f.
//
// The selected strikes are examined concurrently.  Glyphs without image
// data are ignored, glyphs with unusable image data are skipped (or cause
// an error if opt.Strict is set).  The tables contain one bitmap strike
// for each selected sbix strike, in order of increasing sbix ppem.
func Convert(ctx context.Context, f *Font, opt *Options) (*Result, error) {
	if opt == nil {
		opt = &Options{}
	}
	imageFormat, err := opt.imageFormat()
	if err != nil {
		return nil, err
	}
	log := Logger()

	fm := f.Metrics()
	log.Info("font metrics",
		"upem", fm.UnitsPerEm,
		"ascent", fm.Ascent,
		"descent", fm.Descent)

	sbixTable, err := f.Sbix()
	if err != nil {
		return nil, err
	}
	strikes, err := selectStrikes(sbixTable, opt.PPEM)
	if err != nil {
		return nil, err
	}

	prepared := make([]*strikeData, len(strikes))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range strikes {
		g.Go(func() error {
			d, err := prepareStrike(gctx, fm, s, opt.Strict)
			if err != nil {
				return fmt.Errorf("sbix strike %d: %w", s.PPEM, err)
			}
			prepared[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dataW := cbdt.NewWriter(fm)
	dataW.Version = opt.version()
	locW := cblc.NewWriter(fm)
	locW.Version = opt.version()

	dataW.WriteHeader()
	locW.WriteHeader()
	if err := locW.StartStrikes(len(prepared)); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, d := range prepared {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report := &StrikeReport{
			SbixPPEM: d.ppem,
			Metrics:  d.metrics,
			Skipped:  d.skipped,
		}
		log.Info("converting strike",
			"sbix_ppem", d.ppem,
			"ppem", d.metrics.PPEMY,
			"width", d.metrics.Width,
			"height", d.metrics.Height,
			"glyphs", len(d.glyphs))

		dataW.StartStrike(d.metrics)
		for _, gl := range d.glyphs {
			err := dataW.WriteGlyph(gl.gid, gl.img, imageFormat)
			if err != nil {
				if opt.Strict {
					return nil, fmt.Errorf("glyph %d: %w", gl.gid, err)
				}
				log.Warn("skipping glyph", "sbix_ppem", d.ppem, "gid", gl.gid, "err", err)
				report.Skipped = append(report.Skipped, &SkippedGlyph{GID: gl.gid, Reason: err})
				continue
			}
			report.Glyphs++
		}
		maps, err := dataW.EndStrike()
		if err != nil {
			return nil, err
		}
		if report.Glyphs == 0 {
			return nil, fmt.Errorf("sbix strike %d: %w", d.ppem, sbit.ErrNoGlyphs)
		}

		ranges, err := cblc.Ranges(maps)
		if err != nil {
			return nil, err
		}
		report.Ranges = len(ranges)
		log.Debug("index subtables", "sbix_ppem", d.ppem, "ranges", len(ranges))

		if err := locW.WriteStrike(d.metrics, maps); err != nil {
			return nil, err
		}
		res.Strikes = append(res.Strikes, report)
	}
	if err := locW.EndStrikes(); err != nil {
		return nil, err
	}

	res.CBDT = dataW.Bytes()
	res.CBLC = locW.Bytes()
	log.Info("tables generated", "CBDT", len(res.CBDT), "CBLC", len(res.CBLC))
	return res, nil
}

// selectStrikes returns the sbix strikes with the given ppem values,
// in order of increasing ppem.
func selectStrikes(t *sbix.Table, ppems []uint16) ([]*sbix.Strike, error) {
	if len(ppems) == 0 {
		s := t.Strike(DefaultPPEM)
		if s == nil {
			s = t.Largest()
		}
		if s == nil {
			return nil, ErrNoStrike
		}
		return []*sbix.Strike{s}, nil
	}

	ppems = slices.Clone(ppems)
	slices.Sort(ppems)
	ppems = slices.Compact(ppems)
	res := make([]*sbix.Strike, 0, len(ppems))
	for _, ppem := range ppems {
		s := t.Strike(ppem)
		if s == nil {
			return nil, fmt.Errorf("%w for ppem %d", ErrNoStrike, ppem)
		}
		res = append(res, s)
	}
	return res, nil
}

type strikeData struct {
	ppem    uint16
	metrics *sbit.StrikeMetrics
	glyphs  []*glyphImage
	skipped []*SkippedGlyph
}

type glyphImage struct {
	gid glyph.ID
	img *pngfile.Image
}

// prepareStrike collects and checks the glyph images of one sbix strike,
// and computes the metrics of the corresponding bitmap strike.
func prepareStrike(ctx context.Context, fm *sbit.FontMetrics, s *sbix.Strike, strict bool) (*strikeData, error) {
	d := &strikeData{ppem: s.PPEM}
	var sizes []sbit.GlyphSize

	skip := func(gid glyph.ID, err error) error {
		if strict {
			return fmt.Errorf("glyph %d: %w", gid, err)
		}
		Logger().Warn("skipping glyph", "sbix_ppem", s.PPEM, "gid", gid, "err", err)
		d.skipped = append(d.skipped, &SkippedGlyph{GID: gid, Reason: err})
		return nil
	}

	for i := range s.Glyphs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		gid := glyph.ID(i)
		g, err := s.Glyph(gid)
		if err != nil {
			if err := skip(gid, err); err != nil {
				return nil, err
			}
			continue
		}
		if g == nil || len(g.Data) == 0 {
			continue
		}
		if g.GraphicType != sbix.GraphicPNG {
			err := &sbit.NotSupportedError{
				SubSystem: "convert",
				Feature:   fmt.Sprintf("graphic type %q", g.GraphicType),
			}
			if err := skip(gid, err); err != nil {
				return nil, err
			}
			continue
		}

		img := pngfile.New(g.Data)
		width, height, err := checkImage(img)
		if err != nil {
			if err := skip(gid, err); err != nil {
				return nil, err
			}
			continue
		}

		d.glyphs = append(d.glyphs, &glyphImage{gid: gid, img: img})
		sizes = append(sizes, sbit.GlyphSize{Width: width, Height: height})
	}

	sm, err := sbit.NewStrikeMetrics(fm, sizes)
	if err != nil {
		return nil, err
	}
	d.metrics = sm
	return d, nil
}

// checkImage verifies that the PNG image can be stored in a bitmap strike.
func checkImage(img *pngfile.Image) (width, height int, err error) {
	width, height, err = img.Size()
	if err != nil {
		return 0, 0, err
	}
	if width > 255 {
		return 0, 0, &sbit.RangeError{Field: "bitmap width", Value: width, Min: 0, Max: 255}
	}
	if height < 1 || height > 255 {
		return 0, 0, &sbit.RangeError{Field: "bitmap height", Value: height, Min: 1, Max: 255}
	}
	_, err = img.Filter(pngfile.EssentialChunks...)
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}
