package highlight

import (
	"github.com/Drolfothesgnir/markplus/markdown"
	"github.com/Drolfothesgnir/markplus/markup"
	"github.com/Drolfothesgnir/markplus/pipeline"
)

// Name is the name of the extension.
const Name = "highlight"

// Extension returns everything the pipeline needs to support highlight spans.
func Extension() pipeline.Extension {
	return pipeline.Extension{
		Name:       Name,
		Constructs: []markup.Construct{Construct()},
		Types:      []markup.TokenType{TypeMark, TypeMarkSequence, TypeMarkText},
		FromMarkdown: map[markup.TokenType]markdown.Handler{
			TypeMark: fromMarkdown,
		},
		Kinds: []markdown.Kind{KindHighlight},
		ToMarkdown: map[markdown.Kind]pipeline.ToMarkdown{
			KindHighlight: {Handle: handle, Peek: peek},
		},
		Unsafe: unsafe(),
	}
}
