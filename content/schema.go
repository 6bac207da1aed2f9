package content

import (
	"encoding/json"

	"github.com/Drolfothesgnir/markplus/markup"
	"github.com/Drolfothesgnir/markplus/pipeline"
)

// Schema is an implementation agnostic document body parser interface.
//
// The goal is to be able to maintain different body schemas.
type Schema interface {
	// Name returns the name of the particular body schema.
	Name() string

	// Version returns the version number of the particular body schema.
	Version() int32

	// Parse validates and normalizes raw JSON.
	// Returns canonical JSON, with every markdown field normalized.
	Parse(raw []byte) (*Parsed, error)
}

// Processor normalizes the markdown fields of a body.
type Processor interface {
	Analyze(src string) pipeline.ParseResult
}

// Parsed is the result of a successful Parse.
type Parsed struct {
	Body     json.RawMessage `json:"body" yaml:"body"`
	Warnings []FieldWarning  `json:"warnings" yaml:"warnings"`
}

// FieldWarning is a markup Warning of one markdown field. Pos is relative to the field.
type FieldWarning struct {
	Path           string `json:"path" yaml:"path"` // e.g. sections[0].content[2].markdown
	markup.Warning `yaml:",inline"`
}
