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

// Sbix2cbdt converts the sbix color bitmaps of a font into CBDT/CBLC
// tables, and shows the contents of existing CBDT/CBLC tables.
//
// Usage:
//
//	sbix2cbdt convert [--ppem=N,...] [--keep=TAG,...] [--strict] [--v3] input.ttf output.ttf
//	sbix2cbdt inspect font.ttf
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"seehuhn.de/go/sbix2cbdt/convert"
	"seehuhn.de/go/sbix2cbdt/sbit"
	"seehuhn.de/go/sbix2cbdt/tools/internal/buildinfo"
	"seehuhn.de/go/sbix2cbdt/tools/internal/profile"
)

type cli struct {
	Verbose    bool             `short:"v" help:"Show debug messages."`
	Quiet      bool             `short:"q" help:"Only show warnings and errors."`
	CPUProfile string           `name:"cpuprofile" type:"path" placeholder:"FILE" help:"Write a CPU profile to FILE."`
	MemProfile string           `name:"memprofile" type:"path" placeholder:"FILE" help:"Write a memory profile to FILE."`
	Version    kong.VersionFlag `help:"Show version information and exit."`

	Convert convertCmd `cmd:"" help:"Replace the sbix table of a font by CBDT/CBLC tables."`
	Inspect inspectCmd `cmd:"" help:"Show the CBDT/CBLC bitmap strikes of a font."`
}

// setup installs the logger and starts profiling.
func (c *cli) setup() (stop func() error, err error) {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	} else if c.Quiet {
		level = slog.LevelWarn
	}
	convert.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
	return profile.Start(c.CPUProfile, c.MemProfile)
}

type convertCmd struct {
	PPEM        []int    `name:"ppem" placeholder:"N" help:"Convert the sbix strikes with these ppem values (default ${default_ppem}, or the largest strike)."`
	Keep        []string `placeholder:"TAG" help:"Keep these tables, which are normally removed."`
	Strict      bool     `help:"Fail on glyphs with unusable image data, instead of skipping them."`
	V3          bool     `name:"v3" help:"Write version 3.0 tables instead of version 2.0."`
	WindowsCmap bool     `name:"windows-cmap" help:"Mark the first cmap subtable as Windows Unicode (full repertoire)."`

	Input  string `arg:"" type:"existingfile" help:"Font with an sbix table."`
	Output string `arg:"" type:"path" help:"Output font file."`
}

func (cmd *convertCmd) Run(c *cli) (err error) {
	stop, err := c.setup()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, stop())
	}()

	opt := &convert.Options{
		Strict: cmd.Strict,
	}
	for _, ppem := range cmd.PPEM {
		if ppem < 1 || ppem > 0xFFFF {
			return fmt.Errorf("invalid ppem value %d", ppem)
		}
		opt.PPEM = append(opt.PPEM, uint16(ppem))
	}
	if cmd.V3 {
		opt.Version = sbit.Version3
	}

	in, err := os.Open(cmd.Input)
	if err != nil {
		return err
	}
	defer in.Close()
	f, err := convert.Load(in)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Input, err)
	}

	res, err := convert.Convert(context.Background(), f, opt)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Input, err)
	}

	out, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	_, err = convert.WriteFont(out, f, res, &convert.WriteOptions{
		Drop:        convert.DropList(cmd.Keep),
		WindowsCmap: cmd.WindowsCmap,
	})
	if err != nil {
		out.Close()
		return err
	}
	err = out.Close()
	if err != nil {
		return err
	}

	for _, s := range res.Strikes {
		convert.Logger().Info("strike written",
			"sbix_ppem", s.SbixPPEM,
			"ppem", s.Metrics.PPEMY,
			"glyphs", s.Glyphs,
			"skipped", len(s.Skipped))
	}
	return nil
}

func main() {
	c := &cli{}
	ctx := kong.Parse(c,
		kong.Name("sbix2cbdt"),
		kong.Description("Convert sbix color bitmaps to CBDT/CBLC tables."),
		kong.Vars{
			"version":      buildinfo.Short("sbix2cbdt"),
			"default_ppem": fmt.Sprint(convert.DefaultPPEM),
		},
		kong.UsageOnError(),
	)
	err := ctx.Run(c)
	ctx.FatalIfErrorf(err)
}
