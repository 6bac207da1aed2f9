// Package highlight implements the ==highlighted text== inline syntax: the tokenizer
// recognizing it, the handler turning its tokens into a tree node, and the serializer
// writing the node back.
package highlight

import "github.com/Drolfothesgnir/markplus/markup"

// Token types of a highlight span:
//
//	MarkSequence  Mark[ MarkText  MarkSequence ]
//	     ==             highlighted    ==
const (
	TypeMark markup.TokenType = markup.TypeFirstExtension + iota
	TypeMarkSequence
	TypeMarkText
)

// Marker is the character the highlight sequences consist of.
const Marker = '='

// sequenceSize is the number of markers in both the opening and the closing sequence.
const sequenceSize = 2

// Construct returns the highlight construct. A marker right after another unescaped
// marker never starts a span, so runs of three and more markers stay text.
func Construct() markup.Construct {
	return markup.Construct{
		Name:     "highlight",
		Triggers: string(Marker),
		Tokenize: tokenize,
		Previous: func(c markup.Code) bool { return c != Marker },
	}
}

// tokenizer is the run state of one highlight scan.
type tokenizer struct {
	e       *markup.Effects
	ok, nok markup.State

	// size is the number of markers matched in the sequence being scanned.
	size int

	// prev is the last content code, for the space-before-close rule.
	prev markup.Code
}

func tokenize(e *markup.Effects, ok, nok markup.State) markup.State {
	t := &tokenizer{
		e:    e,
		ok:   ok,
		nok:  nok,
		prev: markup.None,
	}

	return t.start
}

func (t *tokenizer) start(c markup.Code) markup.State {
	if c != Marker {
		return t.nok(c)
	}

	t.e.Enter(TypeMarkSequence)
	t.e.Consume(c)
	t.size = 1

	return t.openSeq1
}

func (t *tokenizer) openSeq1(c markup.Code) markup.State {
	if c != Marker {
		t.e.Exit(TypeMarkSequence)
		return t.nok(c)
	}

	t.e.Consume(c)
	t.size++
	t.e.Exit(TypeMarkSequence)

	return t.checkAfterOpen
}

// checkAfterOpen rejects "===", "== text" and "==" at the end of the range.
func (t *tokenizer) checkAfterOpen(c markup.Code) markup.State {
	if c == Marker || c == markup.EOF || markup.IsSpaceOrTab(c) || markup.IsLineEnding(c) {
		return t.nok(c)
	}

	t.e.Enter(TypeMark)
	t.e.Enter(TypeMarkText, markup.WithContent(markup.ContentText))

	return t.content(c)
}

func (t *tokenizer) content(c markup.Code) markup.State {
	switch {
	case c == markup.EOF || markup.IsLineEnding(c):
		t.e.Exit(TypeMarkText)
		t.e.Exit(TypeMark)
		return t.nok(c)

	// a marker after a space is content, so "==text ==" never closes
	case c == Marker && !markup.IsSpaceOrTab(t.prev):
		t.e.Exit(TypeMarkText)
		return t.e.Attempt(t.closing, t.afterClose, t.afterCloseFail)(c)
	}

	t.e.Consume(c)
	t.prev = c

	return t.content
}

// closing is the lookahead for the closing sequence.
func (t *tokenizer) closing(e *markup.Effects, ok, nok markup.State) markup.State {
	var inside markup.State

	inside = func(c markup.Code) markup.State {
		if c != Marker {
			return nok(c)
		}

		e.Consume(c)
		t.size++

		if t.size < sequenceSize {
			return inside
		}

		// the code after the closing sequence is not inspected, "==a===" closes
		// before the last marker
		e.Exit(TypeMarkSequence)
		e.Exit(TypeMark)

		return ok
	}

	return func(c markup.Code) markup.State {
		t.size = 0
		e.Enter(TypeMarkSequence)
		return inside(c)
	}
}

func (t *tokenizer) afterClose(c markup.Code) markup.State {
	return t.ok(c)
}

// afterCloseFail makes the lone marker a part of the content.
func (t *tokenizer) afterCloseFail(c markup.Code) markup.State {
	t.e.Enter(TypeMarkText, markup.WithContent(markup.ContentText))
	t.e.Consume(c)
	t.prev = c

	return t.content
}
