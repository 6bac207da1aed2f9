package pipeline

import (
	"errors"
	"testing"

	"github.com/Drolfothesgnir/markplus/markdown"
	"github.com/Drolfothesgnir/markplus/markup"
	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// braceExtension is a small extension for the tests: "{text}" becomes a node
// rendered as <span>.
func braceExtension() Extension {
	const (
		typeBrace     = markup.TypeFirstExtension + 10
		typeBraceText = markup.TypeFirstExtension + 11
		kindBrace     = markdown.KindFirstExtension + 10
	)

	tokenize := func(e *markup.Effects, ok, nok markup.State) markup.State {
		var content markup.State

		content = func(c markup.Code) markup.State {
			switch {
			case c == markup.EOF || markup.IsLineEnding(c):
				return nok(c)
			case c == '}':
				e.Exit(typeBraceText)
				e.Consume(c)
				e.Exit(typeBrace)
				return ok
			}

			e.Consume(c)
			return content
		}

		return func(c markup.Code) markup.State {
			e.Enter(typeBrace)
			e.Consume(c)
			e.Enter(typeBraceText, markup.WithContent(markup.ContentText))
			return content
		}
	}

	return Extension{
		Name:       "brace",
		Constructs: []markup.Construct{{Name: "brace", Triggers: "{", Tokenize: tokenize}},
		Types:      []markup.TokenType{typeBrace, typeBraceText},
		FromMarkdown: map[markup.TokenType]markdown.Handler{
			typeBrace: markdown.HandlerFuncs{
				OnEnter: func(b *markdown.Builder, tok *markup.Token) {
					n := markdown.NewNode(kindBrace, "brace")
					n.Tag = "span"
					b.Enter(n, tok)
				},
				OnExit: func(b *markdown.Builder, tok *markup.Token) {
					b.Exit(tok)
				},
			},
		},
		Kinds: []markdown.Kind{kindBrace},
		ToMarkdown: map[markdown.Kind]ToMarkdown{
			kindBrace: {
				Handle: func(s *markdown.State, n *markdown.Node, _ *markdown.Node, _ markdown.Info) string {
					return "{" + s.ContainerPhrasing(n, markdown.Info{Before: '{', After: '}'}) + "}"
				},
			},
		},
	}
}

func newProcessor(t *testing.T, exts ...Extension) *Processor {
	t.Helper()

	p, err := New(Config{Extensions: exts})
	require.NoError(t, err)

	return p
}

func TestProcessor_Extension(t *testing.T) {
	p := newProcessor(t, braceExtension())

	root := p.Parse("a {b *c*} d")
	require.Len(t, root.Children, 1, spew.Sdump(root))

	par := root.Children[0]
	require.Len(t, par.Children, 3, spew.Sdump(par))

	brace := par.Children[1]
	require.Equal(t, "brace", brace.Type)
	require.Equal(t, markup.Span{Start: 2, End: 9}, brace.Span)
	require.Equal(t, "emphasis", brace.Children[1].Type)

	require.Equal(t, "a {b *c*} d\n", p.Stringify(root))
	require.Equal(t, "<p>a <span>b <em>c</em></span> d</p>", p.RenderHTML("a {b *c*} d"))
}

func TestProcessor_Paragraphs(t *testing.T) {
	p := newProcessor(t)

	root := p.Parse("\n  \nfirst *line*\nsecond\n\n\n   \nthird\n")
	require.Len(t, root.Children, 2)

	require.Equal(t, "first *line*\nsecond\n\nthird\n", p.Stringify(root))
	require.Equal(t, "<p>first <em>line</em>\nsecond</p>\n<p>third</p>", markdown.RenderHTML(root))
}

func TestProcessor_Empty(t *testing.T) {
	p := newProcessor(t)

	for _, src := range []string{"", "\n", " \t \r\n"} {
		require.Empty(t, p.Parse(src).Children)
		require.Equal(t, "", p.Process(src))
	}
}

func TestProcessor_Analyze(t *testing.T) {
	p := newProcessor(t)

	res := p.Analyze("some *text* and `code\n\nagain")

	require.Equal(t, "some *text* and `code\n\nagain", res.RawInput)
	require.Equal(t, "some *text* and `code\n\nagain\n", res.Output)
	require.Equal(t, "<p>some <em>text</em> and `code</p>\n<p>again</p>", res.HTML)
	require.Equal(t, len("some text and `code\n\nagain"), res.TextLength)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, markup.IssueUnclosedCode, res.Warnings[0].Issue)
	require.Len(t, res.AST.Children, 2)

	res = p.Analyze("plain")
	require.NotNil(t, res.Warnings)
	require.Empty(t, res.Warnings)
}

func TestProcessor_Logger(t *testing.T) {
	var out []byte
	logger := zerolog.New(writerFunc(func(p []byte) (int, error) {
		out = append(out, p...)
		return len(p), nil
	})).Level(zerolog.DebugLevel)

	p, err := New(Config{Extensions: []Extension{braceExtension()}, Logger: &logger})
	require.NoError(t, err)
	require.Equal(t, []string{"brace"}, p.Extensions())

	p.Parse("a\n\nb")
	require.Contains(t, string(out), `"paragraphs":2`)
	require.Contains(t, string(out), `"extensions":["brace"]`)
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) {
	return f(p)
}

func TestNew_Errors(t *testing.T) {
	reserved := braceExtension()
	reserved.Types = append(reserved.Types, markup.TypeData)

	undeclared := braceExtension()
	undeclared.Types = undeclared.Types[1:]

	noHandle := braceExtension()
	for k := range noHandle.ToMarkdown {
		noHandle.ToMarkdown[k] = ToMarkdown{}
	}

	badUnsafe := braceExtension()
	badUnsafe.Unsafe = []markdown.Unsafe{{Character: 'a', Match: func(markdown.Window) bool { return true }}}

	renamed := braceExtension()
	renamed.Name = "other"

	badConstruct := braceExtension()
	badConstruct.Constructs[0].Triggers = " "

	unnamed := braceExtension()
	unnamed.Name = ""

	tests := []struct {
		name  string
		exts  []Extension
		issue markup.Issue
	}{
		{name: "duplicate name", exts: []Extension{braceExtension(), braceExtension()}, issue: markup.IssueDuplicateExtension},
		{name: "empty name", exts: []Extension{unnamed}, issue: markup.IssueDuplicateExtension},
		{name: "duplicate type", exts: []Extension{braceExtension(), renamed}, issue: markup.IssueDuplicateType},
		{name: "reserved type", exts: []Extension{reserved}, issue: markup.IssueReservedType},
		{name: "undeclared type", exts: []Extension{undeclared}, issue: markup.IssueUndeclaredType},
		{name: "missing handle", exts: []Extension{noHandle}, issue: markup.IssueMissingHandle},
		{name: "invalid unsafe", exts: []Extension{badUnsafe}, issue: markup.IssueInvalidTrigger},
		{name: "invalid trigger", exts: []Extension{badConstruct}, issue: markup.IssueInvalidTrigger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Config{Extensions: tt.exts})
			require.Error(t, err)

			var cfgErr *markup.ConfigError
			require.True(t, errors.As(err, &cfgErr), err.Error())
			require.Equal(t, tt.issue, cfgErr.Issue)
		})
	}
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []markup.Span
	}{
		{name: "empty", src: "", want: nil},
		{name: "single line", src: "abc", want: []markup.Span{{Start: 0, End: 3}}},
		{name: "trailing newline", src: "abc\n", want: []markup.Span{{Start: 0, End: 3}}},
		{name: "two lines", src: "a\nb", want: []markup.Span{{Start: 0, End: 3}}},
		{name: "blank line", src: "a\n\nb", want: []markup.Span{{Start: 0, End: 1}, {Start: 3, End: 4}}},
		{name: "blank with spaces", src: "a\n \t\nb", want: []markup.Span{{Start: 0, End: 1}, {Start: 5, End: 6}}},
		{name: "crlf", src: "a\r\n\r\nb\r\n", want: []markup.Span{{Start: 0, End: 1}, {Start: 5, End: 6}}},
		{name: "cr", src: "a\r\rb", want: []markup.Span{{Start: 0, End: 1}, {Start: 3, End: 4}}},
		{name: "leading blanks", src: "\n\n  x", want: []markup.Span{{Start: 2, End: 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Paragraphs(tt.src))
		})
	}
}
