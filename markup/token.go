package markup

import "strconv"

// Span defines bounds of the window view of the input string.
type Span struct {
	// Start defines the inclusive start of the view.
	Start int `json:"start" yaml:"start"`

	// End defines the exclusive end of the view.
	End int `json:"end" yaml:"end"`
}

// Len returns the byte width of the Span.
func (s Span) Len() int {
	return s.End - s.Start
}

// TokenType defines the kind of a Token, e.g. data, escape, code sequence, etc.
//
// The host reserves the values below [TypeFirstExtension]. Syntax extensions declare their
// own types starting from it, and the pipeline makes sure no two extensions claim the same one.
type TokenType uint8

const (
	typeInvalid TokenType = iota

	// TypeData is plain text which did not match any construct.
	TypeData

	// TypeCharacterEscape wraps a backslash and the ASCII punctuation it escapes.
	TypeCharacterEscape
	TypeEscapeMarker
	TypeEscapedCharacter

	// TypeCodeText wraps an inline code span with its fences.
	TypeCodeText
	TypeCodeSequence
	TypeCodeData

	// TypeAttentionSequence is a run of '*', '_' or '~' which may open or close emphasis.
	TypeAttentionSequence

	// TypeLabelStart is the '[' of a possible link.
	TypeLabelStart

	// TypeLabelEnd wraps "](destination)" of a possible link.
	TypeLabelEnd
	TypeResource
	TypeDestination

	// TypeFirstExtension is the first TokenType available to syntax extensions.
	TypeFirstExtension TokenType = 128
)

// MaxTokenTypes is the size of every table indexed by TokenType.
const MaxTokenTypes = 256

var typeNames = [MaxTokenTypes]string{
	typeInvalid:           "invalid",
	TypeData:              "data",
	TypeCharacterEscape:   "characterEscape",
	TypeEscapeMarker:      "escapeMarker",
	TypeEscapedCharacter:  "escapedCharacter",
	TypeCodeText:          "codeText",
	TypeCodeSequence:      "codeSequence",
	TypeCodeData:          "codeData",
	TypeAttentionSequence: "attentionSequence",
	TypeLabelStart:        "labelStart",
	TypeLabelEnd:          "labelEnd",
	TypeResource:          "resource",
	TypeDestination:       "destination",
}

// String returns a human-readable name of the core types. Extension types are
// printed by their number.
func (t TokenType) String() string {
	if n := typeNames[t]; n != "" {
		return n
	}

	return "type(" + strconv.Itoa(int(t)) + ")"
}

// ContentType tells the Parser whether the inner range of a Token must be tokenized again.
type ContentType uint8

const (
	// ContentNone means the Token is opaque or its children are already in the event stream.
	ContentNone ContentType = iota

	// ContentText means the Token's Span holds phrasing text which is tokenized
	// recursively once the outer scan is done.
	ContentText
)

// Token is a typed region of the input produced by an enter/exit pair of events.
type Token struct {
	// Type defines the kind of the Token.
	Type TokenType

	// Span holds byte offsets in the original input. End is set on exit.
	Span Span

	// Content tells if the Token's range must be subtokenized.
	Content ContentType

	// Open and Close are filled for attention sequences only: whether the run
	// may open and/or close emphasis according to the flanking rules.
	Open  bool
	Close bool
}

// TokenOption is a decorator which fills optional fields of the entered Token.
type TokenOption func(t *Token)

// WithContent marks the Token's range to be subtokenized as the content type c.
func WithContent(c ContentType) TokenOption {
	return func(t *Token) {
		t.Content = c
	}
}

// EventKind tells if an Event enters or exits a Token.
type EventKind uint8

const (
	EventEnter EventKind = iota
	EventExit
)

func (k EventKind) String() string {
	if k == EventEnter {
		return "enter"
	}
	return "exit"
}

// Event is one entry of the flat event stream the tree builder consumes.
type Event struct {
	Kind  EventKind
	Token *Token
}
