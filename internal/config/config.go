// Package config loads pipeline settings from TOML or YAML files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/textmodel"
	"github.com/gogpu/textmodel/text"
)

var (
	// ErrUnknownFormat is returned for a file extension with no decoder.
	ErrUnknownFormat = errors.New("config: unknown format")

	// ErrInvalidValue is returned when a setting cannot be parsed.
	ErrInvalidValue = errors.New("config: invalid value")
)

// File is the content of a configuration file.
type File struct {
	DPI         uint32      `toml:"dpi" yaml:"dpi"`
	Layout      string      `toml:"layout" yaml:"layout"`
	Wrap        string      `toml:"wrap" yaml:"wrap"`
	Alignment   string      `toml:"alignment" yaml:"alignment"`
	Reorder     *bool       `toml:"reorder" yaml:"reorder"`
	Align       *bool       `toml:"align" yaml:"align"`
	Width       float32     `toml:"width" yaml:"width"`
	Height      float32     `toml:"height" yaml:"height"`
	LineSpacing float32     `toml:"line_spacing" yaml:"line_spacing"`
	Fonts       []Font      `toml:"fonts" yaml:"fonts"`
	DefaultFont DefaultFont `toml:"default_font" yaml:"default_font"`
	SystemFonts bool        `toml:"system_fonts" yaml:"system_fonts"`
	CacheDir    string      `toml:"cache_dir" yaml:"cache_dir"`

	// dir resolves relative font paths.
	dir string
}

// Font is a font file to register under a family name.
type Font struct {
	Path   string `toml:"path" yaml:"path"`
	Family string `toml:"family" yaml:"family"`
}

// DefaultFont is the font used when a description names none.
type DefaultFont struct {
	Family string  `toml:"family" yaml:"family"`
	Size   float32 `toml:"size" yaml:"size"`
}

// Decoder decodes one document into v.
type Decoder interface {
	Decode(v any) error
}

// DecoderFunc returns a Decoder reading r.
type DecoderFunc func(r io.Reader) Decoder

var decoders = map[string]DecoderFunc{
	".toml": func(r io.Reader) Decoder {
		return toml.NewDecoder(r).DisallowUnknownFields()
	},
	".yaml": newYAMLDecoder,
	".yml":  newYAMLDecoder,
}

func newYAMLDecoder(r io.Reader) Decoder {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	return d
}

// Load reads the file at path. The extension selects the format: .toml,
// .yaml or .yml.
func Load(path string) (*File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := decoders[ext]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	// #nosec G304 -- the configuration path is provided by the user
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer fp.Close()

	f, err := Read(bufio.NewReader(fp), ext)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// Read decodes a file in the format named by ext.
func Read(r io.Reader, ext string) (*File, error) {
	dec, ok := decoders[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	f := &File{}
	if err := dec(r).Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return f, nil
}

// PipelineOptions converts the settings into options for
// textmodel.NewPipeline. Font files are loaded here.
func (f *File) PipelineOptions() ([]textmodel.PipelineOption, error) {
	var opts []textmodel.PipelineOption
	var clientOpts []text.FontClientOption

	if f.DPI != 0 {
		opts = append(opts, textmodel.WithDPI(f.DPI, f.DPI))
	}
	if f.Layout != "" {
		mode, ok := text.ParseLayoutMode(f.Layout)
		if !ok {
			return nil, fmt.Errorf("%w: layout %q", ErrInvalidValue, f.Layout)
		}
		opts = append(opts, textmodel.WithLayout(mode))
	}
	if f.Wrap != "" {
		mode, ok := text.ParseWrapMode(f.Wrap)
		if !ok {
			return nil, fmt.Errorf("%w: wrap %q", ErrInvalidValue, f.Wrap)
		}
		opts = append(opts, textmodel.WithWrapMode(mode))
	}
	if f.LineSpacing != 0 {
		opts = append(opts, textmodel.WithLineSpacing(f.LineSpacing))
	}

	for _, font := range f.Fonts {
		path := font.Path
		if !filepath.IsAbs(path) && f.dir != "" {
			path = filepath.Join(f.dir, path)
		}
		var srcOpts []text.SourceOption
		if font.Family != "" {
			srcOpts = append(srcOpts, text.WithFamily(font.Family))
		}
		src, err := text.NewFontSourceFromFile(path, srcOpts...)
		if err != nil {
			return nil, fmt.Errorf("config: font %q: %w", font.Path, err)
		}
		clientOpts = append(clientOpts, text.WithFontSource(src))
	}
	if f.DefaultFont.Family != "" {
		clientOpts = append(clientOpts, text.WithDefaultFamily(f.DefaultFont.Family))
	}
	if f.DefaultFont.Size < 0 {
		return nil, fmt.Errorf("%w: default font size %v", ErrInvalidValue, f.DefaultFont.Size)
	}
	if f.DefaultFont.Size > 0 {
		clientOpts = append(clientOpts, text.WithDefaultPointSize(f.DefaultFont.Size))
	}
	if f.SystemFonts {
		clientOpts = append(clientOpts, text.WithSystemFonts(f.CacheDir))
	}
	if len(clientOpts) > 0 {
		opts = append(opts, textmodel.WithFontClientOptions(clientOpts...))
	}
	return opts, nil
}

// LayoutOptions returns the per call options, starting from
// textmodel.DefaultLayoutOptions.
func (f *File) LayoutOptions() (textmodel.LayoutOptions, error) {
	opts := textmodel.DefaultLayoutOptions()
	if f.Reorder != nil {
		opts.Reorder = *f.Reorder
	}
	if f.Align != nil {
		opts.Align = *f.Align
	}
	if f.Alignment != "" {
		a, ok := text.ParseHorizontalAlignment(f.Alignment)
		if !ok {
			return opts, fmt.Errorf("%w: alignment %q", ErrInvalidValue, f.Alignment)
		}
		opts.Alignment = a
	}
	return opts, nil
}

// Area returns the layout box.
func (f *File) Area() text.Size {
	return text.Size{Width: f.Width, Height: f.Height}
}
