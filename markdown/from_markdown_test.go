package markdown

import (
	"errors"
	"testing"

	"github.com/Drolfothesgnir/markplus/markup"
	"github.com/stretchr/testify/require"
)

func TestBuild_Phrasing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		warns []markup.Issue
	}{
		{name: "plain", input: "just text", want: `text:"just text"`},
		{name: "emphasis", input: "*a*", want: `emphasis[text:"a"]`},
		{name: "underscore emphasis", input: "_a_", want: `emphasis[text:"a"]`},
		{name: "strong", input: "**a**", want: `strong[text:"a"]`},
		{name: "strong inside emphasis", input: "***a***", want: `emphasis[strong[text:"a"]]`},
		{name: "nested", input: "*a **b** c*", want: `emphasis[text:"a " strong[text:"b"] text:" c"]`},
		{name: "rule of three", input: "*foo**bar**baz*", want: `emphasis[text:"foo" strong[text:"bar"] text:"baz"]`},
		{name: "strikethrough", input: "~~a~~", want: `delete[text:"a"]`},
		{name: "single tilde", input: "~a~", want: `text:"~a~"`},
		{name: "intraword underscore", input: "snake_case_name", want: `text:"snake_case_name"`},
		{name: "unclosed emphasis", input: "*a", want: `text:"*a"`, warns: []markup.Issue{markup.IssueUnmatchedDelimiter}},
		{name: "lone asterisk", input: "a * b", want: `text:"a * b"`},
		{name: "escapes", input: `\*a\*`, want: `text:"*a*"`},
		{name: "code", input: "`a` b", want: `inlineCode:"a" text:" b"`},
		{name: "code with padding", input: "`` `a ``", want: `inlineCode:"` + "`a" + `"`},
		{name: "code hides emphasis", input: "*`a*`", want: `text:"*" inlineCode:"a*"`, warns: []markup.Issue{markup.IssueUnmatchedDelimiter}},
		{name: "link", input: "[a](u)", want: `link(u)[text:"a"]`},
		{name: "link with emphasis", input: "[*a*](u)", want: `link(u)[emphasis[text:"a"]]`},
		{name: "link with an escaped destination", input: `[a](u\(x\))`, want: `link(u(x))[text:"a"]`},
		{
			name:  "emphasis does not cross a link",
			input: "*[a*](u)",
			want:  `text:"*" link(u)[text:"a*"]`,
			warns: []markup.Issue{markup.IssueUnmatchedDelimiter, markup.IssueUnmatchedDelimiter},
		},
		{
			name:  "no links in links",
			input: "[a [b](u)](v)",
			want:  `text:"[a " link(u)[text:"b"] text:"](v)"`,
			warns: []markup.Issue{markup.IssueUnmatchedLabel, markup.IssueUnmatchedLabel},
		},
		{name: "label end without start", input: "a](u)", want: `text:"a](u)"`, warns: []markup.Issue{markup.IssueUnmatchedLabel}},
		{name: "label start without end", input: "[a", want: `text:"[a"`, warns: []markup.Issue{markup.IssueUnmatchedLabel}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, warns := build(t, tt.input)
			requireTree(t, tt.want, p)
			require.Equal(t, tt.warns, issues(warns))
		})
	}
}

func TestBuild_Spans(t *testing.T) {
	input := "a *b* [c](u)"
	p, _ := build(t, input)

	require.Len(t, p.Children, 4)

	em := p.Children[1]
	require.Equal(t, KindEmphasis, em.Kind)
	require.Equal(t, markup.Span{Start: 2, End: 5}, em.Span)
	require.Equal(t, "*", em.Marker)
	require.Equal(t, markup.Span{Start: 3, End: 4}, em.Children[0].Span)

	link := p.Children[3]
	require.Equal(t, KindLink, link.Kind)
	require.Equal(t, markup.Span{Start: 6, End: 12}, link.Span)
	require.Equal(t, "u", link.URL)
}

func TestConverter_SetHandler(t *testing.T) {
	c := NewConverter()

	err := c.SetHandler(markup.TypeData, HandlerFuncs{})
	var cfgErr *markup.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, markup.IssueReservedType, cfgErr.Issue)

	require.NoError(t, c.SetHandler(markup.TypeFirstExtension, HandlerFuncs{}))

	err = c.SetHandler(markup.TypeFirstExtension, HandlerFuncs{})
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, markup.IssueDuplicateType, cfgErr.Issue)
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "a", want: "a"},
		{in: " a ", want: "a"},
		{in: "  a  ", want: " a "},
		{in: "  ", want: "  "},
		{in: "a\nb", want: "a b"},
		{in: " a", want: " a"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, normalizeCode(tt.in), tt.in)
	}
}
