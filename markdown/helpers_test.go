package markdown

import (
	"strconv"
	"strings"
	"testing"

	"github.com/Drolfothesgnir/markplus/markup"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// build parses input as a single paragraph.
func build(t *testing.T, input string) (*Node, []markup.Warning) {
	t.Helper()

	warns := &markup.Warnings{}
	events := markup.NewParser().Parse(input, warns)

	p := NewConverter().Build(input, markup.Span{Start: 0, End: len(input)}, events, warns)
	require.Equal(t, KindParagraph, p.Kind)

	return p, warns.List()
}

// document wraps paragraphs into a root.
func document(input string, paragraphs ...*Node) *Node {
	root := NewRoot(input)
	root.Children = paragraphs
	return root
}

// sexpr renders the children of n compactly, e.g. `text:"a " emphasis[text:"b"]`.
func sexpr(n *Node) string {
	parts := make([]string, 0, len(n.Children))

	for _, c := range n.Children {
		switch {
		case c.Kind == KindText || c.Kind == KindInlineCode:
			parts = append(parts, c.Type+":"+strconv.Quote(c.Value))
		case c.Kind == KindLink:
			parts = append(parts, "link("+c.URL+")["+sexpr(c)+"]")
		default:
			parts = append(parts, c.Type+"["+sexpr(c)+"]")
		}
	}

	return strings.Join(parts, " ")
}

func requireTree(t *testing.T, want string, n *Node) {
	t.Helper()
	require.Equal(t, want, sexpr(n), spew.Sdump(n))
}

func issues(warns []markup.Warning) []markup.Issue {
	var out []markup.Issue
	for _, w := range warns {
		out = append(out, w.Issue)
	}
	return out
}
