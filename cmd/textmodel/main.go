// Command textmodel lays out text and prints the resulting lines.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/gogpu/textmodel"
	"github.com/gogpu/textmodel/internal/config"
	"github.com/gogpu/textmodel/markup"
	"github.com/gogpu/textmodel/text"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			pterm.Error.Println(err)
		}
		os.Exit(2)
	}
}

// run parses args, lays out the text and writes the line table to w.
func run(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("textmodel", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "TOML or YAML configuration file")
		width      = fs.Float64("width", 0, "layout width in pixels (default from config or 400)")
		height     = fs.Float64("height", 0, "layout height in pixels (default from config or 300)")
		fontPath   = fs.String("font", "", "font file used as the default family")
		size       = fs.Float64("size", 0, "default point size")
		align      = fs.String("align", "", "horizontal alignment: begin, center or end")
		single     = fs.Bool("single", false, "lay out on a single line")
		useMarkup  = fs.Bool("markup", false, "interpret the text as markup")
		verbose    = fs.Bool("v", false, "log pipeline stages")
	)
	fs.SetOutput(w)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("no text given")
	}
	if *verbose {
		textmodel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	file := &config.File{Layout: "multi", Width: 400, Height: 300}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		file = loaded
	}
	if *width > 0 {
		file.Width = float32(*width)
	}
	if *height > 0 {
		file.Height = float32(*height)
	}
	if *single {
		file.Layout = "single"
	}
	if *align != "" {
		file.Alignment = *align
	}
	if *size > 0 {
		file.DefaultFont.Size = float32(*size)
	}
	if *fontPath != "" {
		const family = "cli"
		file.Fonts = append(file.Fonts, config.Font{Path: *fontPath, Family: family})
		file.DefaultFont.Family = family
	}

	opts, err := file.PipelineOptions()
	if err != nil {
		return err
	}
	layout, err := file.LayoutOptions()
	if err != nil {
		return err
	}
	p, err := textmodel.NewPipeline(opts...)
	if err != nil {
		return err
	}

	input := strings.Join(fs.Args(), " ")
	var runs []text.FontDescriptionRun
	if *useMarkup {
		res, err := markup.ProcessMarkup(input)
		if err != nil {
			return err
		}
		input, runs = res.Text, res.FontRuns
	}

	state, err := p.CreateTextModel(input, file.Area(), runs, layout)
	if err != nil {
		return err
	}
	return printState(w, state)
}

func printState(w io.Writer, state *textmodel.TextLayoutState) error {
	data := pterm.TableData{
		{"Line", "Glyphs", "Characters", "Width", "Ascender", "Offset", "Direction", "Text"},
	}
	for i, line := range state.Visual.Lines {
		data = append(data, []string{
			fmt.Sprint(i),
			fmt.Sprintf("%d+%d", line.GlyphIndex, line.NumberOfGlyphs),
			fmt.Sprintf("%d+%d", line.CharacterIndex, line.NumberOfCharacters),
			fmt.Sprintf("%.1f", line.Width),
			fmt.Sprintf("%.1f", line.Ascender),
			fmt.Sprintf("%.1f", line.AlignmentOffset),
			line.Direction.String(),
			fmt.Sprintf("%q", state.LineText(i)),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)
	size := state.Visual.LayoutSize
	fmt.Fprintf(w, "%d characters, %d glyphs, layout %.1f x %.1f\n",
		state.NumberOfCharacters(), state.NumberOfGlyphs(), size.Width, size.Height)
	return nil
}
