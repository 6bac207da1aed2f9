package highlight

import (
	"github.com/Drolfothesgnir/markplus/markdown"
	"github.com/Drolfothesgnir/markplus/markup"
)

// KindHighlight is the node kind of a highlight span.
const KindHighlight = markdown.KindFirstExtension

// NodeType is the public name of the highlight node.
const NodeType = "highlight"

// Tag is the HTML element a highlight node renders as.
const Tag = "mark"

// NewNode creates an empty highlight node.
func NewNode() *markdown.Node {
	n := markdown.NewNode(KindHighlight, NodeType)
	n.Tag = Tag
	return n
}

// fromMarkdown builds a highlight node out of a Mark token. Its children are built from
// the events of the content, which the parser put between the enter and the exit.
var fromMarkdown = markdown.HandlerFuncs{
	OnEnter: func(b *markdown.Builder, tok *markup.Token) {
		n := NewNode()
		b.Enter(n, tok)

		// the opening sequence lies right before the Mark token
		n.Span.Start -= sequenceSize
	},
	OnExit: func(b *markdown.Builder, tok *markup.Token) {
		b.Exit(tok)
	},
}
