package markdown

import (
	"errors"
	"testing"

	"github.com/Drolfothesgnir/markplus/markup"
	"github.com/stretchr/testify/require"
)

func stringify(t *testing.T, input string) string {
	t.Helper()

	p, _ := build(t, input)
	return NewSerializer().Stringify(document(input, p))
}

func TestStringify_RoundTrip(t *testing.T) {
	inputs := []string{
		"just text",
		"a *b* c",
		"a _b_ c",
		"**strong** and __strong__",
		"~~gone~~",
		"`code` and ``a`b``",
		"[a link](http://example.com)",
		"[*a*](u)",
		`[a](u\(x\))`,
		"snake_case_name",
		"_a_b",
		"a * b",
		"2 * 3 = 6",
		`\*not emphasis\*`,
		"an *unclosed emphasis",
		"a ~ b ~~~ c",
		"`unclosed code",
		"[not a link]",
		"a] b",
		"ñ *ü* ß",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			require.Equal(t, input+"\n", stringify(t, input))
		})
	}
}

func TestStringify_Normalizes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "redundant escape stays", input: `\a`, want: `\a`},
		{name: "escaped brackets", input: `\[a\](u)`, want: `\[a\](u)`},
		{name: "code padding", input: "`` `a ``", want: "`` `a ``"},
		{name: "code with spaces", input: "` a `", want: "`a`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want+"\n", stringify(t, tt.input))
		})
	}
}

func TestStringify_Trees(t *testing.T) {
	text := func(v string) *Node { return NewText(v, markup.Span{}) }

	wrap := func(k Kind, marker string, children ...*Node) *Node {
		n := newNode(k)
		n.Marker = marker
		n.Children = children
		return n
	}

	para := func(children ...*Node) *Node {
		return wrap(KindParagraph, "", children...)
	}

	tests := []struct {
		name string
		tree *Node
		want string
	}{
		{
			name: "empty root",
			tree: document(""),
			want: "",
		},
		{
			name: "paragraphs",
			tree: document("", para(text("a")), para(text("b"))),
			want: "a\n\nb\n",
		},
		{
			name: "underscore next to a word",
			tree: document("", para(wrap(KindEmphasis, "_", text("a")), text("b"))),
			want: "*a*b\n",
		},
		{
			name: "text starting with the emphasis marker",
			tree: document("", para(wrap(KindEmphasis, "*", text("*a")))),
			want: `*\*a*` + "\n",
		},
		{
			name: "backslash before emphasis",
			tree: document("", para(text(`a\`), wrap(KindEmphasis, "*", text("b")))),
			want: `a\\*b*` + "\n",
		},
		{
			name: "backtick after code",
			tree: document("", para(&Node{Kind: KindInlineCode, Type: "inlineCode", Value: "x"}, text("`"))),
			want: "`x`\\`\n",
		},
		{
			name: "code containing backticks",
			tree: document("", para(&Node{Kind: KindInlineCode, Type: "inlineCode", Value: "`a"})),
			want: "`` `a ``\n",
		},
		{
			name: "link with spaces in the destination",
			tree: document("", para(&Node{Kind: KindLink, Type: "link", URL: "a b", Children: []*Node{text("x")}})),
			want: "[x](a%20b)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NewSerializer().Stringify(tt.tree))
		})
	}
}

func TestSerializer_Configuration(t *testing.T) {
	s := NewSerializer()

	var cfgErr *markup.ConfigError

	err := s.SetHandle(KindText, handleText, nil)
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, markup.IssueReservedType, cfgErr.Issue)

	require.NoError(t, s.SetHandle(KindFirstExtension, handleText, nil))

	err = s.SetHandle(KindFirstExtension, handleText, nil)
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, markup.IssueDuplicateType, cfgErr.Issue)

	err = s.AddUnsafe(Unsafe{Character: 'a', Match: func(Window) bool { return true }})
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, markup.IssueInvalidTrigger, cfgErr.Issue)

	require.NoError(t, s.AddUnsafe(Unsafe{Character: '#', Match: func(w Window) bool { return w.Index == 0 }}))

	tree := document("", &Node{Kind: KindParagraph, Children: []*Node{NewText("#a#", markup.Span{})}})
	require.Equal(t, `\#a#`+"\n", s.Stringify(tree))
}

func TestWindow(t *testing.T) {
	w := Window{Value: "añb", Index: 3, Info: Info{Before: '='}}

	require.Equal(t, markup.Code('ñ'), w.Prev())
	require.Equal(t, markup.Code('b'), w.At(3))
	require.Equal(t, markup.Code('='), w.At(-1))
	require.Equal(t, markup.EOF, w.At(4))

	w.Index = 0
	require.Equal(t, markup.Code('='), w.Prev())

	w.Info = Info{}
	require.Equal(t, markup.None, w.Prev())
}
