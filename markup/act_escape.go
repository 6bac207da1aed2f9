package markup

import (
	"strconv"
	"unicode/utf8"
)

// escapeConstruct recognizes a character escape: [SymbolEscape] followed by an ASCII
// punctuation character. The escaped character is emitted as literal text by the builder.
//
// Behaviour:
//
// If the backslash is followed by anything else, the construct fails and the backslash stays
// plain text. A [Warning] with [IssueRedundantEscape] is added then, unless the backslash is
// the last character of the range.
func escapeConstruct() Construct {
	return Construct{
		Name:     "characterEscape",
		Triggers: string(SymbolEscape),
		Tokenize: tokenizeEscape,
		Neutral:  true,
		Diagnose: diagnoseEscape,
	}
}

func tokenizeEscape(e *Effects, ok, nok State) State {
	var inside State

	start := func(c Code) State {
		e.Enter(TypeCharacterEscape)
		e.Enter(TypeEscapeMarker)
		e.Consume(c)
		e.Exit(TypeEscapeMarker)
		return inside
	}

	inside = func(c Code) State {
		if !IsASCIIPunctuation(c) {
			return nok(c)
		}

		e.Enter(TypeEscapedCharacter)
		e.Consume(c)
		e.Exit(TypeEscapedCharacter)
		e.Exit(TypeCharacterEscape)
		return ok
	}

	return start
}

func diagnoseEscape(input string, pos, end int) (Warning, bool) {
	next := pos + 1

	// the trailing backslash is a plain text with nothing to complain about
	if next >= end {
		return Warning{}, false
	}

	c, _ := DecodeCode(input, next)
	if IsLineEnding(c) {
		return Warning{}, false
	}

	r := rune(c)
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}

	return Warning{
		Issue:       IssueRedundantEscape,
		Pos:         pos,
		Description: "Redundant escape before the character " + strconv.QuoteRune(r) + " at byte index " + strconv.Itoa(next) + ".",
	}, true
}
