package text

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parserName string
	family     string
	style      FontDescription
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/opentype;
// "gotext" uses go-text/typesetting.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// WithFamily overrides the family name read from the font.
func WithFamily(family string) SourceOption {
	return func(c *sourceConfig) {
		c.family = family
	}
}

// WithStyle declares the weight, width and slant the font provides.
// Family is ignored; see WithFamily.
func WithStyle(weight FontWeight, width FontWidth, slant FontSlant) SourceOption {
	return func(c *sourceConfig) {
		c.style = FontDescription{Weight: weight, Width: width, Slant: slant}
	}
}

// FontClientOption configures a FontClient.
type FontClientOption func(*fontClientConfig)

type fontClientConfig struct {
	dpiH, dpiV     uint32
	embeddedFonts  bool
	systemFonts    bool
	cacheDir       string
	fontDirs       []string
	sources        []*FontSource
	defaultFamily  string
	defaultPointSz float32
}

// DefaultDPI is the resolution used until SetDpi is called.
const DefaultDPI = 96

// DefaultPointSize is the font size used when none is requested.
const DefaultPointSize = 12

func defaultFontClientConfig() fontClientConfig {
	return fontClientConfig{
		dpiH:           DefaultDPI,
		dpiV:           DefaultDPI,
		embeddedFonts:  true,
		defaultPointSz: DefaultPointSize,
	}
}

// WithClientDPI sets the initial resolution of the client.
func WithClientDPI(h, v uint32) FontClientOption {
	return func(c *fontClientConfig) {
		c.dpiH, c.dpiV = h, v
	}
}

// WithEmbeddedFonts controls whether the Go fonts are registered as the
// default family. Enabled by default.
func WithEmbeddedFonts(enabled bool) FontClientOption {
	return func(c *fontClientConfig) {
		c.embeddedFonts = enabled
	}
}

// WithSystemFonts makes fallback lookup consult the fonts installed on the
// system. The font index is cached in cacheDir.
func WithSystemFonts(cacheDir string) FontClientOption {
	return func(c *fontClientConfig) {
		c.systemFonts = true
		c.cacheDir = cacheDir
	}
}

// WithFontDirectory adds the font files found under dir to the fallback
// lookup.
func WithFontDirectory(dir string) FontClientOption {
	return func(c *fontClientConfig) {
		c.fontDirs = append(c.fontDirs, dir)
	}
}

// WithFontSource registers src as if AddFontSource were called once the
// client is built.
func WithFontSource(src *FontSource) FontClientOption {
	return func(c *fontClientConfig) {
		if src != nil {
			c.sources = append(c.sources, src)
		}
	}
}

// WithDefaultFamily sets the family used when a description names none.
func WithDefaultFamily(family string) FontClientOption {
	return func(c *fontClientConfig) {
		c.defaultFamily = family
	}
}

// WithDefaultPointSize sets the size used when a description has none.
func WithDefaultPointSize(size float32) FontClientOption {
	return func(c *fontClientConfig) {
		c.defaultPointSz = size
	}
}
