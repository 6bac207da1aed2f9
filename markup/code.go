package markup

import (
	"unicode"
	"unicode/utf8"
)

// Code is a single character code of the input stream.
//
// Codes are UTF-8 code points decoded from the input, plus two sentinels which
// never appear in the input itself: [EOF] and [None].
type Code rune

const (
	// EOF is delivered to a State when the stream (or the current content range) is exhausted.
	EOF Code = -1

	// None is reported by [Effects.Previous] at the very start of a stream, and after
	// a neutral construct such as a character escape.
	None Code = -2
)

// Class is the CommonMark classification of a code used by the flanking rules.
type Class uint8

const (
	ClassOther Class = iota
	ClassWhitespace
	ClassPunctuation
)

// IsLineEnding reports whether c ends a line.
func IsLineEnding(c Code) bool {
	return c == '\n' || c == '\r'
}

// IsSpaceOrTab reports whether c is a markdown space or tab.
func IsSpaceOrTab(c Code) bool {
	return c == ' ' || c == '\t'
}

// IsWhitespace reports whether c is unicode whitespace. EOF and None count as whitespace,
// since the start and the end of the input behave like a space for the flanking rules.
func IsWhitespace(c Code) bool {
	if c == EOF || c == None {
		return true
	}

	return unicode.IsSpace(rune(c))
}

// IsASCIIPunctuation reports whether c is one of the ASCII punctuation characters
// which can be backslash-escaped.
func IsASCIIPunctuation(c Code) bool {
	return c >= '!' && c <= '/' ||
		c >= ':' && c <= '@' ||
		c >= '[' && c <= '`' ||
		c >= '{' && c <= '~'
}

// IsPunctuation reports whether c is unicode punctuation or a symbol.
func IsPunctuation(c Code) bool {
	if c < 0 {
		return false
	}

	if c < utf8.RuneSelf {
		return IsASCIIPunctuation(c)
	}

	r := rune(c)
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// Classify returns the flanking class of c.
func Classify(c Code) Class {
	switch {
	case IsWhitespace(c):
		return ClassWhitespace
	case IsPunctuation(c):
		return ClassPunctuation
	default:
		return ClassOther
	}
}

// DecodeCode returns the code starting at byte i of s, and its width in bytes.
//
// WARNING: an invalid UTF-8 byte is returned as [utf8.RuneError] with width 1, so the
// scanner always makes progress.
func DecodeCode(s string, i int) (Code, int) {
	b := s[i]

	// simple ASCII does not need decoding
	if b < utf8.RuneSelf {
		return Code(b), 1
	}

	r, w := utf8.DecodeRuneInString(s[i:])
	return Code(r), w
}

// LastCode returns the code which ends right before byte i of s, or [None] when i is 0.
func LastCode(s string, i int) Code {
	if i <= 0 {
		return None
	}

	b := s[i-1]
	if b < utf8.RuneSelf {
		return Code(b)
	}

	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return Code(r)
}
