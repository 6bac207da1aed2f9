package pipeline

import (
	"fmt"

	"github.com/Drolfothesgnir/markplus/markdown"
	"github.com/Drolfothesgnir/markplus/markup"
)

// ToMarkdown is the serialization of one node kind.
type ToMarkdown struct {
	Handle markdown.Handle

	// Peek is optional, without it the first code is found by serializing the node.
	Peek markdown.Peek
}

// Extension bundles everything a syntax extension adds to the pipeline: the constructs
// of the tokenizer, the handlers turning its tokens into nodes, and the serialization of
// those nodes.
//
// Token types and node kinds must be declared in Types and Kinds before handlers can be
// attached to them, so two extensions never silently share a table slot.
type Extension struct {
	Name string

	Constructs []markup.Construct

	Types        []markup.TokenType
	FromMarkdown map[markup.TokenType]markdown.Handler

	Kinds      []markdown.Kind
	ToMarkdown map[markdown.Kind]ToMarkdown

	Unsafe []markdown.Unsafe
}

// registry tracks the names, types, and kinds claimed so far.
type registry struct {
	names map[string]struct{}
	types [markup.MaxTokenTypes]string
	kinds [markdown.MaxKinds]string
}

func newRegistry() *registry {
	return &registry{names: make(map[string]struct{})}
}

// claim checks ext against the extensions claimed before and records its types and kinds.
func (r *registry) claim(ext Extension) error {
	if _, exists := r.names[ext.Name]; exists || ext.Name == "" {
		return markup.NewConfigError(
			markup.IssueDuplicateExtension,
			fmt.Errorf("extension name %q is empty or already used", ext.Name),
		)
	}

	for _, t := range ext.Types {
		if t < markup.TypeFirstExtension {
			return markup.NewConfigError(
				markup.IssueReservedType,
				fmt.Errorf("extension %q: token type %s is reserved by the host", ext.Name, t),
			)
		}

		if owner := r.types[t]; owner != "" {
			return markup.NewConfigError(
				markup.IssueDuplicateType,
				fmt.Errorf("extension %q: token type %s is already claimed by %q", ext.Name, t, owner),
			)
		}

		r.types[t] = ext.Name
	}

	for _, k := range ext.Kinds {
		if k < markdown.KindFirstExtension {
			return markup.NewConfigError(
				markup.IssueReservedType,
				fmt.Errorf("extension %q: node kind %s is reserved by the host", ext.Name, k),
			)
		}

		if owner := r.kinds[k]; owner != "" {
			return markup.NewConfigError(
				markup.IssueDuplicateType,
				fmt.Errorf("extension %q: node kind %s is already claimed by %q", ext.Name, k, owner),
			)
		}

		r.kinds[k] = ext.Name
	}

	for t := range ext.FromMarkdown {
		if r.types[t] != ext.Name {
			return markup.NewConfigError(
				markup.IssueUndeclaredType,
				fmt.Errorf("extension %q: handler for undeclared token type %s", ext.Name, t),
			)
		}
	}

	for k, tm := range ext.ToMarkdown {
		if r.kinds[k] != ext.Name {
			return markup.NewConfigError(
				markup.IssueUndeclaredType,
				fmt.Errorf("extension %q: serializer for undeclared node kind %s", ext.Name, k),
			)
		}

		if tm.Handle == nil {
			return markup.NewConfigError(
				markup.IssueMissingHandle,
				fmt.Errorf("extension %q: node kind %s has no handle", ext.Name, k),
			)
		}
	}

	r.names[ext.Name] = struct{}{}

	return nil
}
