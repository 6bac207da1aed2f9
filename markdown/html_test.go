package markdown

import (
	"testing"

	"github.com/Drolfothesgnir/markplus/markup"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello", want: "<p>hello</p>"},
		{name: "emphasis and strong", input: "*a* **b**", want: "<p><em>a</em> <strong>b</strong></p>"},
		{name: "strikethrough", input: "~~a~~", want: "<p><del>a</del></p>"},
		{name: "code", input: "`a<b`", want: "<p><code>a&lt;b</code></p>"},
		{name: "link", input: `[a](http://x.com/?q="1"&b)`, want: `<p><a href="http://x.com/?q=&quot;1&quot;&amp;b">a</a></p>`},
		{name: "escaped html", input: `<b> & "q"`, want: "<p>&lt;b&gt; &amp; &quot;q&quot;</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := build(t, tt.input)
			require.Equal(t, tt.want, RenderHTML(document(tt.input, p)))
		})
	}
}

func TestRenderHTML_GenericTags(t *testing.T) {
	custom := NewNode(KindFirstExtension, "custom")
	custom.Tag = "mark"
	custom.Children = []*Node{NewText("x", markup.Span{})}

	untagged := NewNode(KindFirstExtension+1, "untagged")
	untagged.Value = "<y>"

	p := newNode(KindParagraph)
	p.Tag = "p"
	p.Children = []*Node{custom, untagged}

	second := newNode(KindParagraph)
	second.Tag = "p"
	second.Children = []*Node{NewText("z", markup.Span{})}

	require.Equal(t, "<p><mark>x</mark>&lt;y&gt;</p>\n<p>z</p>", RenderHTML(document("", p, second)))
}
