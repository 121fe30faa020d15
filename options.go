package textmodel

import (
	"github.com/gogpu/textmodel/text"
	"github.com/gogpu/textmodel/text/cache"
)

// PipelineOption configures a Pipeline during creation.
//
// Example:
//
//	// Default pipeline: embedded fonts, single line, word wrap
//	p, err := textmodel.NewPipeline()
//
//	// Wrapped paragraphs with a shared shaping cache
//	p, err := textmodel.NewPipeline(
//		textmodel.WithLayout(text.MultiLineBox),
//		textmodel.WithShapingCache(cache.NewShapingCache[[]text.ShapedGlyph](1024)),
//	)
type PipelineOption func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	fontClient     *text.FontClient
	fontClientOpts []text.FontClientOption
	multilang      *text.MultilanguageSupport
	shapingCache   *cache.ShapingCache[[]text.ShapedGlyph]
	engines        map[text.Script]text.ShapingEngine
	simpleShaping  bool

	layout      text.LayoutMode
	wrap        text.WrapMode
	lineSpacing float32

	dpiH, dpiV uint32

	matchLayoutDirection bool
	layoutDirection      text.Direction

	normalize bool
}

// defaultPipelineOptions returns the default pipeline options.
func defaultPipelineOptions() pipelineOptions {
	return pipelineOptions{
		layout: text.SingleLineBox,
		wrap:   text.WrapWord,
	}
}

// WithFontClient uses client instead of creating one. The client is shared,
// not copied.
func WithFontClient(client *text.FontClient) PipelineOption {
	return func(o *pipelineOptions) {
		o.fontClient = client
	}
}

// WithFontClientOptions passes opts to the FontClient the pipeline creates.
// Ignored when WithFontClient is given.
func WithFontClientOptions(opts ...text.FontClientOption) PipelineOption {
	return func(o *pipelineOptions) {
		o.fontClientOpts = append(o.fontClientOpts, opts...)
	}
}

// WithMultilanguageSupport uses m for script and font validation. m must
// wrap the pipeline's FontClient.
func WithMultilanguageSupport(m *text.MultilanguageSupport) PipelineOption {
	return func(o *pipelineOptions) {
		o.multilang = m
	}
}

// WithShapingCache caches shaped runs in c. A cache can be shared by
// pipelines that share a FontClient.
func WithShapingCache(c *cache.ShapingCache[[]text.ShapedGlyph]) PipelineOption {
	return func(o *pipelineOptions) {
		o.shapingCache = c
	}
}

// WithShapingEngine shapes runs of script with engine.
func WithShapingEngine(script text.Script, engine text.ShapingEngine) PipelineOption {
	return func(o *pipelineOptions) {
		if o.engines == nil {
			o.engines = make(map[text.Script]text.ShapingEngine)
		}
		o.engines[script] = engine
	}
}

// WithSimpleShaping shapes every script with one glyph per character and no
// OpenType features.
func WithSimpleShaping(enabled bool) PipelineOption {
	return func(o *pipelineOptions) {
		o.simpleShaping = enabled
	}
}

// WithLayout sets the box model.
func WithLayout(mode text.LayoutMode) PipelineOption {
	return func(o *pipelineOptions) {
		o.layout = mode
	}
}

// WithWrapMode sets where MultiLineBox lines may break.
func WithWrapMode(mode text.WrapMode) PipelineOption {
	return func(o *pipelineOptions) {
		o.wrap = mode
	}
}

// WithLineSpacing adds spacing pixels below every line.
func WithLineSpacing(spacing float32) PipelineOption {
	return func(o *pipelineOptions) {
		o.lineSpacing = spacing
	}
}

// WithDPI sets the resolution of the FontClient.
func WithDPI(h, v uint32) PipelineOption {
	return func(o *pipelineOptions) {
		o.dpiH, o.dpiV = h, v
	}
}

// WithLayoutDirection forces the base direction of every bidirectional
// paragraph instead of taking it from the first strong character.
func WithLayoutDirection(dir text.Direction) PipelineOption {
	return func(o *pipelineOptions) {
		o.matchLayoutDirection = true
		o.layoutDirection = dir
	}
}

// WithNormalization converts input text to Unicode Normalization Form C
// before it is modelled.
func WithNormalization(enabled bool) PipelineOption {
	return func(o *pipelineOptions) {
		o.normalize = enabled
	}
}
