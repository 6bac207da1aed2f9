package markdown

import (
	"strings"

	"github.com/Drolfothesgnir/markplus/markup"
)

// coreUnsafe returns the patterns of the characters the core constructs are built of.
// Each pattern matches only when the character could really be read back as syntax, so
// unambiguous text is written as is.
func coreUnsafe() []Unsafe {
	return []Unsafe{
		{Character: markup.SymbolEscape, Match: unsafeEscape},
		{Character: markup.SymbolCode, Match: unsafeCode},
		{Character: markup.SymbolAsterisk, Match: unsafeAttention},
		{Character: markup.SymbolUnderscore, Match: unsafeAttention},
		{Character: markup.SymbolTilde, Match: unsafeAttention},
		{Character: markup.SymbolLabelStart, Match: unsafeLabelStart},
		{Character: markup.SymbolLabelEnd, Match: unsafeLabelEnd},
	}
}

// unsafeEscape matches a backslash which would escape the next character.
func unsafeEscape(w Window) bool {
	return markup.IsASCIIPunctuation(w.At(w.Index + 1))
}

// unsafeCode matches a backtick which may find a partner: another backtick in the value,
// something unknown after it, or a code span right before it.
func unsafeCode(w Window) bool {
	return strings.Count(w.Value, "`") > 1 ||
		w.Info.After != 0 ||
		w.Info.Before == markup.SymbolCode
}

// unsafeAttention matches every character of a run which could pair with another run:
// an opening run followed by a possible closer, or a closing run preceded by a possible
// opener. Runs touching the same character of a neighbour always match. Unknown
// neighbouring content counts as a possible partner.
func unsafeAttention(w Window) bool {
	ch := w.Value[w.Index]

	// every character of a run shares the decision of the first one
	if w.Index > 0 && w.Value[w.Index-1] == ch {
		return w.PrevEscaped
	}

	start, end := run(w.Value, w.Index)

	if w.At(start-1) == markup.Code(ch) || w.At(end) == markup.Code(ch) {
		return true
	}

	canOpen, canClose := runFlanking(w, start, end)

	if canOpen {
		if w.Info.After != 0 {
			return true
		}

		for i := end; i < len(w.Value); {
			s, e := run(w.Value, i)
			if w.Value[s] == ch {
				if _, c := runFlanking(w, s, e); c {
					return true
				}
			}
			i = e
		}
	}

	if canClose {
		if w.Info.Before != 0 {
			return true
		}

		for i := start - 1; i >= 0; {
			s, e := run(w.Value, i)
			if w.Value[s] == ch {
				if o, _ := runFlanking(w, s, e); o {
					return true
				}
			}
			i = s - 1
		}
	}

	return false
}

// run returns the bounds of the run of the same byte around the byte offset i.
func run(s string, i int) (start, end int) {
	start, end = i, i+1

	for start > 0 && s[start-1] == s[i] {
		start--
	}
	for end < len(s) && s[end] == s[i] {
		end++
	}

	return start, end
}

// runFlanking returns whether the attention run at [start, end) of the value can open
// and close. Tilde runs other than a pair do neither.
func runFlanking(w Window, start, end int) (canOpen, canClose bool) {
	ch := markup.Code(w.Value[start])

	if ch == markup.SymbolTilde && end-start != 2 {
		return false, false
	}

	before := w.At(-1)
	if start > 0 {
		before = markup.LastCode(w.Value, start)
	}

	return markup.Flanking(ch, markup.Classify(before), markup.Classify(w.At(end)))
}

// unsafeLabelStart matches a '[' which may be followed by a label end.
func unsafeLabelStart(w Window) bool {
	return strings.Contains(w.Value[w.Index+1:], "](") || w.Info.After != 0
}

// unsafeLabelEnd matches a ']' followed by a resource.
func unsafeLabelEnd(w Window) bool {
	return w.At(w.Index+1) == markup.SymbolResourceStart
}
