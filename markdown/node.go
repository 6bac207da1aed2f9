package markdown

import (
	"strconv"
	"strings"

	"github.com/Drolfothesgnir/markplus/markup"
	"github.com/rivo/uniseg"
)

// Kind identifies the kind of node in the tree, e.g. text, emphasis, link, etc.
//
// The host reserves the values below [KindFirstExtension]. Syntax extensions declare their
// own kinds starting from it.
type Kind uint8

// Common Node kinds.
const (
	kindInvalid Kind = iota

	// KindRoot represents the root of the tree, its children are paragraphs.
	KindRoot
	KindParagraph
	KindText
	KindEmphasis
	KindStrong
	KindDelete
	KindInlineCode
	KindLink

	// kindDelimiter and kindLabel are the placeholders of the attention sequences and
	// label starts while the phrasing is not resolved yet. They never leave the builder.
	kindDelimiter
	kindLabel

	// KindFirstExtension is the first Kind available to syntax extensions.
	KindFirstExtension Kind = 128
)

// MaxKinds is the size of every table indexed by Kind.
const MaxKinds = 256

var kindNames = [MaxKinds]string{
	kindInvalid:    "invalid",
	KindRoot:       "root",
	KindParagraph:  "paragraph",
	KindText:       "text",
	KindEmphasis:   "emphasis",
	KindStrong:     "strong",
	KindDelete:     "delete",
	KindInlineCode: "inlineCode",
	KindLink:       "link",
	kindDelimiter:  "delimiter",
	kindLabel:      "label",
}

func (k Kind) String() string {
	if n := kindNames[k]; n != "" {
		return n
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Node represents a part of the tree. Some nodes are leaves (text, inline code), and
// some are containers carrying phrasing children (emphasis, link, highlight).
type Node struct {
	// Kind is the table index of the Node, used by the serializer.
	Kind Kind `json:"-" yaml:"-"`

	// Type is the public name of the Node's kind, e.g. "text" or "highlight".
	Type string `json:"type" yaml:"type"`

	// Tag is the HTML element a generic renderer wraps the Node's children with.
	Tag string `json:"tag,omitempty" yaml:"tag,omitempty"`

	// Value is the literal content of the leaf nodes.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// Marker is the character emphasis was written with, '*' or '_'.
	Marker string `json:"marker,omitempty" yaml:"marker,omitempty"`

	// URL is the destination of a link.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Span is the byte range of the Node in the source.
	Span markup.Span `json:"span" yaml:"span"`

	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`

	// delim holds the flanking data of a placeholder node.
	delim *delimiter
}

// NewNode creates a Node of kind k with the public name typ.
func NewNode(k Kind, typ string) *Node {
	return &Node{Kind: k, Type: typ}
}

// newNode creates a Node of one of the core kinds.
func newNode(k Kind) *Node {
	return NewNode(k, k.String())
}

// NewText creates a text Node.
func NewText(value string, span markup.Span) *Node {
	n := newNode(KindText)
	n.Value = value
	n.Span = span
	return n
}

// Append attaches child as the last child of n.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// DisplayText returns the "visible" text of the Node, that is what the user sees
// without the markdown syntax. Links return their label.
func (n *Node) DisplayText() string {
	if len(n.Children) == 0 {
		return n.Value
	}

	var b strings.Builder
	n.writeDisplayText(&b)
	return b.String()
}

func (n *Node) writeDisplayText(b *strings.Builder) {
	if len(n.Children) == 0 {
		b.WriteString(n.Value)
		return
	}

	for i, c := range n.Children {
		// paragraphs are separate lines of the visible text
		if i > 0 && c.Kind == KindParagraph {
			b.WriteString("\n\n")
		}
		c.writeDisplayText(b)
	}
}

// TextLength returns the count of user-perceived characters (grapheme clusters, not
// bytes or runes) of the visible text.
func (n *Node) TextLength() int {
	return uniseg.GraphemeClusterCount(n.DisplayText())
}

// Walk calls fn for n and every descendant in document order. The children of a Node
// for which fn returns false are skipped.
func (n *Node) Walk(fn func(n *Node) bool) {
	if !fn(n) {
		return
	}

	for _, c := range n.Children {
		c.Walk(fn)
	}
}
