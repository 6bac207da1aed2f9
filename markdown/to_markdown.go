package markdown

import (
	"fmt"
	"strings"

	"github.com/Drolfothesgnir/markplus/markup"
)

// Info is the context a Node is serialized in: the codes right before and right after
// its output. Zero means nothing is there.
type Info struct {
	Before markup.Code
	After  markup.Code
}

// Handle serializes the Node n, which is a child of parent.
type Handle func(s *State, n *Node, parent *Node, info Info) string

// Peek returns the first code the [Handle] of n will write, without serializing n.
type Peek func(s *State, n *Node) markup.Code

// Window is the view an [Unsafe] pattern gets of the value being serialized.
type Window struct {
	// Value is the whole literal value.
	Value string

	// Index is the byte offset of the character in question.
	Index int

	// Info is the context of the value.
	Info Info

	// PrevEscaped is true when the character right before Index was escaped.
	PrevEscaped bool

	stack []Kind
}

// At returns the code at the byte offset i of the Value. Offsets out of the Value
// return the neighbouring code of the Info, [markup.None] before an edge and
// [markup.EOF] after one.
func (w Window) At(i int) markup.Code {
	switch {
	case i < 0:
		if w.Info.Before == 0 {
			return markup.None
		}
		return w.Info.Before
	case i >= len(w.Value):
		if w.Info.After == 0 {
			return markup.EOF
		}
		return w.Info.After
	}

	c, _ := markup.DecodeCode(w.Value, i)
	return c
}

// Prev returns the code right before the character in question.
func (w Window) Prev() markup.Code {
	if w.Index == 0 {
		return w.At(-1)
	}

	return markup.LastCode(w.Value, w.Index)
}

// Inside reports whether the value is serialized inside a Node of kind k.
func (w Window) Inside(k Kind) bool {
	for _, s := range w.stack {
		if s == k {
			return true
		}
	}

	return false
}

// Unsafe is a pattern telling when a literal Character must be backslash-escaped,
// because it would otherwise be read back as syntax.
type Unsafe struct {
	Character byte
	Match     func(w Window) bool
}

// Serializer turns a tree back into markdown text.
//
// The Serializer is read-only once configured, so one Serializer can serve
// concurrent calls.
type Serializer struct {
	handles [MaxKinds]Handle
	peeks   [MaxKinds]Peek
	unsafe  [256][]Unsafe
}

// NewSerializer creates a Serializer knowing the core kinds.
func NewSerializer() *Serializer {
	s := &Serializer{}

	s.handles[KindRoot] = handleRoot
	s.handles[KindParagraph] = handleParagraph
	s.handles[KindText] = handleText
	s.handles[KindEmphasis] = handleEmphasis
	s.handles[KindStrong] = handleStrong
	s.handles[KindDelete] = handleDelete
	s.handles[KindInlineCode] = handleInlineCode
	s.handles[KindLink] = handleLink

	s.peeks[KindText] = peekText
	s.peeks[KindEmphasis] = peekMarker
	s.peeks[KindStrong] = peekMarker
	s.peeks[KindDelete] = peekConst(markup.SymbolTilde)
	s.peeks[KindInlineCode] = peekConst(markup.SymbolCode)
	s.peeks[KindLink] = peekConst(markup.SymbolLabelStart)

	for _, u := range coreUnsafe() {
		s.unsafe[u.Character] = append(s.unsafe[u.Character], u)
	}

	return s
}

// SetHandle registers the Handle and the optional Peek of the kind k.
func (s *Serializer) SetHandle(k Kind, h Handle, p Peek) error {
	if k < KindFirstExtension {
		return markup.NewConfigError(markup.IssueReservedType, fmt.Errorf("node kind %s is reserved by the host", k))
	}

	if s.handles[k] != nil {
		return markup.NewConfigError(markup.IssueDuplicateType, fmt.Errorf("node kind %s already has a handle", k))
	}

	s.handles[k] = h
	s.peeks[k] = p

	return nil
}

// AddUnsafe registers additional unsafe patterns. Only ASCII punctuation can be escaped.
func (s *Serializer) AddUnsafe(patterns ...Unsafe) error {
	for _, u := range patterns {
		if !markup.IsASCIIPunctuation(markup.Code(u.Character)) || u.Match == nil {
			return markup.NewConfigError(
				markup.IssueInvalidTrigger,
				fmt.Errorf("unsafe pattern for %q: expected an ASCII punctuation character with a match function", u.Character),
			)
		}
	}

	for _, u := range patterns {
		s.unsafe[u.Character] = append(s.unsafe[u.Character], u)
	}

	return nil
}

// Stringify serializes the tree rooted at root.
func (s *Serializer) Stringify(root *Node) string {
	st := &State{s: s}
	return st.Handle(root, nil, Info{})
}

// State is the state of one serialization, handed to every [Handle].
type State struct {
	s *Serializer

	// stack holds the kinds of the nodes being serialized, the innermost is the last one.
	stack []Kind
}

// Enter marks the start of the serialization of a Node of kind k, and returns the
// function marking its end.
func (st *State) Enter(k Kind) (exit func()) {
	st.stack = append(st.stack, k)

	return func() {
		st.stack = st.stack[:len(st.stack)-1]
	}
}

// Handle serializes n with the Handle of its kind. Kinds without one are serialized as
// their children, or as their literal value.
func (st *State) Handle(n *Node, parent *Node, info Info) string {
	if h := st.s.handles[n.Kind]; h != nil {
		return h(st, n, parent, info)
	}

	if len(n.Children) > 0 {
		return st.ContainerPhrasing(n, info)
	}

	return st.Safe(n.Value, info)
}

// peek returns the first code n serializes to.
func (st *State) peek(n *Node, parent *Node) markup.Code {
	if p := st.s.peeks[n.Kind]; p != nil {
		return p(st, n)
	}

	out := st.Handle(n, parent, Info{})
	if out == "" {
		return 0
	}

	c, _ := markup.DecodeCode(out, 0)
	return c
}

// ContainerPhrasing serializes the children of parent one after another, telling every
// child the codes of its neighbours.
func (st *State) ContainerPhrasing(parent *Node, info Info) string {
	var sb strings.Builder

	before := info.Before

	for i, child := range parent.Children {
		after := info.After
		if i+1 < len(parent.Children) {
			after = st.peek(parent.Children[i+1], parent)
		}

		out := st.Handle(child, parent, Info{Before: before, After: after})
		if out == "" {
			continue
		}

		sb.WriteString(out)
		before = markup.LastCode(out, len(out))
	}

	return sb.String()
}

// Safe returns value with a backslash before every character matched by an unsafe pattern.
func (st *State) Safe(value string, info Info) string {
	// most of the text has nothing to escape
	risky := false
	for i := 0; i < len(value); i++ {
		if len(st.s.unsafe[value[i]]) > 0 {
			risky = true
			break
		}
	}

	if !risky {
		return value
	}

	var sb strings.Builder
	sb.Grow(len(value) + 8)

	prevEscaped := false

	for i := 0; i < len(value); i++ {
		ch := value[i]
		escape := false

		if patterns := st.s.unsafe[ch]; len(patterns) > 0 {
			w := Window{
				Value:       value,
				Index:       i,
				Info:        info,
				PrevEscaped: prevEscaped,
				stack:       st.stack,
			}

			for _, u := range patterns {
				if u.Match(w) {
					escape = true
					break
				}
			}
		}

		if escape {
			sb.WriteByte(markup.SymbolEscape)
		}

		sb.WriteByte(ch)
		prevEscaped = escape
	}

	return sb.String()
}

func handleRoot(st *State, n *Node, _ *Node, _ Info) string {
	parts := make([]string, 0, len(n.Children))

	for _, c := range n.Children {
		if out := st.Handle(c, n, Info{}); out != "" {
			parts = append(parts, out)
		}
	}

	if len(parts) == 0 {
		return ""
	}

	return strings.Join(parts, "\n\n") + "\n"
}

func handleParagraph(st *State, n *Node, _ *Node, _ Info) string {
	exit := st.Enter(KindParagraph)
	defer exit()

	return st.ContainerPhrasing(n, Info{})
}

func handleText(st *State, n *Node, _ *Node, info Info) string {
	return st.Safe(n.Value, info)
}

// emphasisMarker returns the marker n is written with. Underscores can not open or close
// inside a word, so they are replaced by asterisks next to letters and digits.
func emphasisMarker(n *Node, info Info) byte {
	if n.Marker == string(markup.SymbolUnderscore) &&
		markup.Classify(edge(info.Before)) != markup.ClassOther &&
		markup.Classify(edge(info.After)) != markup.ClassOther {
		return markup.SymbolUnderscore
	}

	return markup.SymbolAsterisk
}

func handleEmphasis(st *State, n *Node, _ *Node, info Info) string {
	return wrapPhrasing(st, n, KindEmphasis, string(emphasisMarker(n, info)))
}

func handleStrong(st *State, n *Node, _ *Node, info Info) string {
	return wrapPhrasing(st, n, KindStrong, strings.Repeat(string(emphasisMarker(n, info)), 2))
}

func handleDelete(st *State, n *Node, _ *Node, _ Info) string {
	return wrapPhrasing(st, n, KindDelete, "~~")
}

// wrapPhrasing serializes the children of n between two copies of the sequence.
func wrapPhrasing(st *State, n *Node, k Kind, sequence string) string {
	exit := st.Enter(k)
	defer exit()

	c, _ := markup.DecodeCode(sequence, 0)
	inner := st.ContainerPhrasing(n, Info{Before: c, After: c})

	return sequence + inner + sequence
}

func handleInlineCode(_ *State, n *Node, _ *Node, _ Info) string {
	value := n.Value

	// the shortest fence which does not occur in the code
	size := 1
	for hasRun(value, markup.SymbolCode, size) {
		size++
	}
	fence := strings.Repeat("`", size)

	pad := value != "" &&
		(value[0] == '`' || value[len(value)-1] == '`' ||
			value[0] == ' ' && value[len(value)-1] == ' ' && strings.Trim(value, " ") != "")

	if pad {
		value = " " + value + " "
	}

	return fence + value + fence
}

// hasRun reports whether s contains a run of exactly size bytes b.
func hasRun(s string, b byte, size int) bool {
	for i := 0; i < len(s); {
		if s[i] != b {
			i++
			continue
		}

		j := i
		for j < len(s) && s[j] == b {
			j++
		}

		if j-i == size {
			return true
		}

		i = j
	}

	return false
}

var urlEscaper = strings.NewReplacer(
	`\`, `\\`,
	"(", `\(`,
	")", `\)`,
	" ", "%20",
	"\t", "%09",
	"\n", "%0A",
	"\r", "%0D",
)

func handleLink(st *State, n *Node, _ *Node, _ Info) string {
	exit := st.Enter(KindLink)
	defer exit()

	label := st.ContainerPhrasing(n, Info{Before: markup.SymbolLabelStart, After: markup.SymbolLabelEnd})

	return "[" + label + "](" + urlEscaper.Replace(n.URL) + ")"
}

// edge turns the zero code of an Info into [markup.None], which classifies as whitespace.
func edge(c markup.Code) markup.Code {
	if c == 0 {
		return markup.None
	}

	return c
}

func peekText(_ *State, n *Node) markup.Code {
	if n.Value == "" {
		return 0
	}

	c, _ := markup.DecodeCode(n.Value, 0)
	return c
}

func peekMarker(_ *State, n *Node) markup.Code {
	if n.Marker == string(markup.SymbolUnderscore) {
		return markup.SymbolUnderscore
	}

	return markup.SymbolAsterisk
}

func peekConst(c markup.Code) Peek {
	return func(*State, *Node) markup.Code {
		return c
	}
}
