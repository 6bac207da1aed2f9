// Package pipeline assembles the inline parser, the tree builder, and the serializer
// together with the syntax extensions into one Processor.
package pipeline

import (
	"fmt"

	"github.com/Drolfothesgnir/markplus/markdown"
	"github.com/Drolfothesgnir/markplus/markup"
	"github.com/rs/zerolog"
)

// Version of the processing engine, reported next to the results.
const Version int32 = 1

// Config is everything New needs. It is assembled once and never mutated by the pipeline.
type Config struct {
	Extensions []Extension

	// Logger receives the debug events of the processing. Nil disables logging.
	Logger *zerolog.Logger
}

// Processor parses and serializes documents. It is read-only after New, so one
// Processor can serve concurrent calls.
type Processor struct {
	parser     *markup.Parser
	converter  *markdown.Converter
	serializer *markdown.Serializer
	logger     zerolog.Logger
	extensions []string
}

// New validates cfg and builds a Processor out of the core syntax and the extensions.
func New(cfg Config) (*Processor, error) {
	p := &Processor{
		parser:     markup.NewParser(),
		converter:  markdown.NewConverter(),
		serializer: markdown.NewSerializer(),
		logger:     zerolog.Nop(),
	}

	if cfg.Logger != nil {
		p.logger = *cfg.Logger
	}

	reg := newRegistry()

	for _, ext := range cfg.Extensions {
		if err := reg.claim(ext); err != nil {
			return nil, err
		}

		if err := p.install(ext); err != nil {
			return nil, fmt.Errorf("cannot install extension %q: %w", ext.Name, err)
		}

		p.extensions = append(p.extensions, ext.Name)
	}

	p.logger.Debug().Strs("extensions", p.extensions).Msg("pipeline created")

	return p, nil
}

func (p *Processor) install(ext Extension) error {
	for _, c := range ext.Constructs {
		if err := p.parser.AddConstruct(c); err != nil {
			return err
		}
	}

	for t, h := range ext.FromMarkdown {
		if err := p.converter.SetHandler(t, h); err != nil {
			return err
		}
	}

	for k, tm := range ext.ToMarkdown {
		if err := p.serializer.SetHandle(k, tm.Handle, tm.Peek); err != nil {
			return err
		}
	}

	return p.serializer.AddUnsafe(ext.Unsafe...)
}

// Name returns the name of the engine.
func (p *Processor) Name() string {
	return "markplus"
}

// Version returns the version of the engine.
func (p *Processor) Version() int32 {
	return Version
}

// Extensions returns the names of the installed extensions in the installation order.
func (p *Processor) Extensions() []string {
	return p.extensions
}

// Parse turns src into a tree. Paragraphs are separated by blank lines.
func (p *Processor) Parse(src string) *markdown.Node {
	root, _ := p.parse(src)
	return root
}

func (p *Processor) parse(src string) (*markdown.Node, *markup.Warnings) {
	warns := &markup.Warnings{}
	root := markdown.NewRoot(src)

	for _, span := range Paragraphs(src) {
		events := p.parser.ParseRange(src, span, warns)
		root.Append(p.converter.Build(src, span, events, warns))
	}

	p.logger.Debug().
		Int("bytes", len(src)).
		Int("paragraphs", len(root.Children)).
		Int("warnings", warns.Len()).
		Msg("document parsed")

	return root, warns
}

// Stringify serializes the tree rooted at root back into markdown.
func (p *Processor) Stringify(root *markdown.Node) string {
	return p.serializer.Stringify(root)
}

// Process parses src and serializes it back, which normalizes the source.
func (p *Processor) Process(src string) string {
	return p.Stringify(p.Parse(src))
}

// RenderHTML parses src and renders it as HTML.
func (p *Processor) RenderHTML(src string) string {
	return markdown.RenderHTML(p.Parse(src))
}

// ParseResult is the complete outcome of the processing of one document.
type ParseResult struct {
	// RawInput is the original source.
	RawInput string `json:"raw_input" yaml:"raw_input"`

	// Output is the normalized markdown.
	Output string `json:"output" yaml:"output"`

	// HTML is the rendered source.
	HTML string `json:"html" yaml:"html"`

	// TextLength is the number of visible characters, without the markup.
	TextLength int `json:"text_length" yaml:"text_length"`

	// Warnings are the non-critical issues found in the source.
	Warnings []markup.Warning `json:"warnings" yaml:"warnings"`

	AST *markdown.Node `json:"ast" yaml:"ast"`
}

// Analyze runs every stage of the processing over src.
func (p *Processor) Analyze(src string) ParseResult {
	root, warns := p.parse(src)

	list := warns.List()
	if list == nil {
		list = []markup.Warning{}
	}

	return ParseResult{
		RawInput:   src,
		Output:     p.Stringify(root),
		HTML:       markdown.RenderHTML(root),
		TextLength: root.TextLength(),
		Warnings:   list,
		AST:        root,
	}
}
