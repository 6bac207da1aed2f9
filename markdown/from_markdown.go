package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Drolfothesgnir/markplus/markup"
)

// Handler turns the events of one token type into tree nodes.
type Handler interface {
	Enter(b *Builder, tok *markup.Token)
	Exit(b *Builder, tok *markup.Token)
}

// HandlerFuncs adapts a pair of functions to a [Handler]. A nil function is a no-op.
type HandlerFuncs struct {
	OnEnter func(b *Builder, tok *markup.Token)
	OnExit  func(b *Builder, tok *markup.Token)
}

func (h HandlerFuncs) Enter(b *Builder, tok *markup.Token) {
	if h.OnEnter != nil {
		h.OnEnter(b, tok)
	}
}

func (h HandlerFuncs) Exit(b *Builder, tok *markup.Token) {
	if h.OnExit != nil {
		h.OnExit(b, tok)
	}
}

// Converter holds the handlers of every known token type. Tokens without a handler
// produce no nodes, only their descendants do.
//
// The Converter is read-only once configured.
type Converter struct {
	handlers [markup.MaxTokenTypes]Handler
}

// NewConverter creates a Converter knowing the core token types.
func NewConverter() *Converter {
	c := &Converter{}

	c.handlers[markup.TypeData] = HandlerFuncs{OnEnter: onEnterData}
	c.handlers[markup.TypeEscapedCharacter] = HandlerFuncs{OnEnter: onEnterData}
	c.handlers[markup.TypeCodeText] = HandlerFuncs{OnEnter: onEnterCodeText, OnExit: onExitCodeText}
	c.handlers[markup.TypeCodeData] = HandlerFuncs{OnEnter: onEnterCodeData}
	c.handlers[markup.TypeAttentionSequence] = HandlerFuncs{OnEnter: onEnterAttentionSequence}
	c.handlers[markup.TypeLabelStart] = HandlerFuncs{OnEnter: onEnterLabelStart}
	c.handlers[markup.TypeLabelEnd] = HandlerFuncs{OnEnter: onEnterLabelEnd, OnExit: onExitLabelEnd}
	c.handlers[markup.TypeDestination] = HandlerFuncs{OnExit: onExitDestination}

	return c
}

// SetHandler registers h for the token type t.
func (c *Converter) SetHandler(t markup.TokenType, h Handler) error {
	if t < markup.TypeFirstExtension {
		return markup.NewConfigError(
			markup.IssueReservedType,
			fmt.Errorf("token type %s is reserved by the host", t),
		)
	}

	if c.handlers[t] != nil {
		return markup.NewConfigError(
			markup.IssueDuplicateType,
			fmt.Errorf("token type %s already has a handler", t),
		)
	}

	c.handlers[t] = h
	return nil
}

// NewRoot creates an empty root Node spanning the whole input.
func NewRoot(input string) *Node {
	root := newNode(KindRoot)
	root.Span = markup.Span{Start: 0, End: len(input)}
	return root
}

// Build turns the events of one paragraph spanning span of the input into a paragraph Node.
func (c *Converter) Build(input string, span markup.Span, events []markup.Event, warns *markup.Warnings) *Node {
	p := newNode(KindParagraph)
	p.Tag = "p"
	p.Span = span

	b := &Builder{
		input: input,
		stack: []*Node{p},
		warns: warns,
	}

	for _, ev := range events {
		h := c.handlers[ev.Token.Type]
		if h == nil {
			continue
		}

		if ev.Kind == markup.EventEnter {
			h.Enter(b, ev.Token)
		} else {
			h.Exit(b, ev.Token)
		}
	}

	if len(b.stack) != 1 {
		panic(fmt.Sprintf("markdown: %s left open by a handler", b.Current().Type))
	}

	p.Children = b.resolve(p.Children)

	return p
}

// Builder is the state of one paragraph conversion, handed to every [Handler].
type Builder struct {
	input string

	// stack holds the open containers, the innermost is the last one.
	stack []*Node

	warns *markup.Warnings

	// code collects the data of the code span being converted.
	code []string

	// destination is the destination of the label end being converted.
	destination string
}

// Input returns the whole source.
func (b *Builder) Input() string {
	return b.input
}

// Slice returns the source text of tok.
func (b *Builder) Slice(tok *markup.Token) string {
	return b.input[tok.Span.Start:tok.Span.End]
}

// Current returns the innermost open container.
func (b *Builder) Current() *Node {
	return b.stack[len(b.stack)-1]
}

// Append attaches n to the innermost open container.
func (b *Builder) Append(n *Node) {
	b.Current().Append(n)
}

// Enter attaches the container n to the innermost open container and makes n the
// innermost one. The Node starts where tok starts.
func (b *Builder) Enter(n *Node, tok *markup.Token) {
	n.Span.Start = tok.Span.Start
	b.Append(n)
	b.stack = append(b.stack, n)
}

// Exit closes the innermost container, which ends where tok ends, and resolves its
// phrasing: emphasis, strikethrough, and the leftovers which become plain text.
func (b *Builder) Exit(tok *markup.Token) *Node {
	if len(b.stack) < 2 {
		panic("markdown: exit without an open container")
	}

	n := b.Current()
	b.stack = b.stack[:len(b.stack)-1]

	n.Span.End = tok.Span.End
	n.Children = b.resolve(n.Children)

	return n
}

// Warn records a problem found at the byte position pos.
func (b *Builder) Warn(issue markup.Issue, pos int, desc string) {
	if b.warns == nil {
		return
	}

	b.warns.Add(markup.Warning{Issue: issue, Pos: pos, Description: desc})
}

func onEnterData(b *Builder, tok *markup.Token) {
	b.Append(NewText(b.Slice(tok), tok.Span))
}

func onEnterCodeText(b *Builder, _ *markup.Token) {
	b.code = b.code[:0]
}

func onEnterCodeData(b *Builder, tok *markup.Token) {
	b.code = append(b.code, b.Slice(tok))
}

func onExitCodeText(b *Builder, tok *markup.Token) {
	n := newNode(KindInlineCode)
	n.Tag = "code"
	n.Value = normalizeCode(strings.Join(b.code, ""))
	n.Span = tok.Span

	b.Append(n)
}

// normalizeCode turns line endings into spaces and strips a single space from both
// sides, when both are present and the code is not all spaces.
func normalizeCode(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	if len(s) >= 2 && s[0] == ' ' && s[len(s)-1] == ' ' && strings.Trim(s, " ") != "" {
		return s[1 : len(s)-1]
	}

	return s
}

func onEnterAttentionSequence(b *Builder, tok *markup.Token) {
	value := b.Slice(tok)

	n := newNode(kindDelimiter)
	n.Value = value
	n.Span = tok.Span
	n.delim = &delimiter{
		marker: value[0],
		open:   tok.Open,
		close:  tok.Close,
		orig:   len(value),
	}

	b.Append(n)
}

func onEnterLabelStart(b *Builder, tok *markup.Token) {
	n := newNode(kindLabel)
	n.Value = b.Slice(tok)
	n.Span = tok.Span
	n.delim = &delimiter{marker: markup.SymbolLabelStart, open: true, active: true}

	b.Append(n)
}

func onEnterLabelEnd(b *Builder, _ *markup.Token) {
	b.destination = ""
}

func onExitDestination(b *Builder, tok *markup.Token) {
	b.destination = unescape(b.Slice(tok))
}

// onExitLabelEnd turns everything since the nearest label start of the current container
// into a link. Without an active label start the label end is plain text.
func onExitLabelEnd(b *Builder, tok *markup.Token) {
	parent := b.Current()

	idx := -1
	for i := len(parent.Children) - 1; i >= 0; i-- {
		if parent.Children[i].Kind == kindLabel {
			idx = i
			break
		}
	}

	if idx < 0 || !parent.Children[idx].delim.active {
		if idx >= 0 {
			b.literal(parent.Children[idx])
		}

		b.Warn(markup.IssueUnmatchedLabel, tok.Span.Start, "Label end at byte index "+strconv.Itoa(tok.Span.Start)+" has no matching label start.")
		b.Append(NewText(b.Slice(tok), tok.Span))
		return
	}

	label := parent.Children[idx]

	inner := make([]*Node, len(parent.Children)-idx-1)
	copy(inner, parent.Children[idx+1:])

	link := newNode(KindLink)
	link.Tag = "a"
	link.URL = b.destination
	link.Span = markup.Span{Start: label.Span.Start, End: tok.Span.End}
	link.Children = b.resolve(inner)

	parent.Children = append(parent.Children[:idx], link)

	// links may not contain other links
	for _, c := range parent.Children[:idx] {
		if c.Kind == kindLabel {
			c.delim.active = false
		}
	}
}

// unescape removes the backslashes of the escaped ASCII punctuation.
func unescape(s string) string {
	if strings.IndexByte(s, markup.SymbolEscape) < 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == markup.SymbolEscape && i+1 < len(s) && markup.IsASCIIPunctuation(markup.Code(s[i+1])) {
			i++
		}
		sb.WriteByte(s[i])
	}

	return sb.String()
}
