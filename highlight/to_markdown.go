package highlight

import (
	"github.com/Drolfothesgnir/markplus/markdown"
	"github.com/Drolfothesgnir/markplus/markup"
)

const sequence = "=="

// handle writes the node as "==" + children + "==".
//
// Children ending with a marker can not be written back: the content of a span is opaque
// to escapes, so the escaped marker still closes the span.
func handle(s *markdown.State, n *markdown.Node, _ *markdown.Node, _ markdown.Info) string {
	exit := s.Enter(KindHighlight)
	defer exit()

	inner := s.ContainerPhrasing(n, markdown.Info{Before: Marker, After: Marker})

	return sequence + inner + sequence
}

func peek(*markdown.State, *markdown.Node) markup.Code {
	return Marker
}

// unsafe returns the patterns of the markers which must be escaped in literal text.
func unsafe() []markdown.Unsafe {
	return []markdown.Unsafe{
		{Character: Marker, Match: unsafeOpening},
		{Character: Marker, Match: unsafeBoundary},
	}
}

// unsafeOpening matches a marker which would open a span: it does not follow an unescaped
// marker, it is followed by a second marker and a code which may start the content, and a
// closing sequence may follow on the same line, in the value or after it.
func unsafeOpening(w markdown.Window) bool {
	// spans do not nest, and the content of a span is opaque to escapes
	if w.Inside(KindHighlight) {
		return false
	}

	if w.Prev() == Marker && !w.PrevEscaped {
		return false
	}

	if w.Index+1 >= len(w.Value) || w.Value[w.Index+1] != Marker {
		return false
	}

	next := w.At(w.Index + 2)
	if next == Marker || next == markup.EOF || markup.IsSpaceOrTab(next) || markup.IsLineEnding(next) {
		return false
	}

	for j := w.Index + 2; j < len(w.Value); j++ {
		switch w.Value[j] {
		case '\n', '\r':
			return false
		case Marker:
			if j+1 < len(w.Value) && w.Value[j+1] == Marker && !markup.IsSpaceOrTab(markup.Code(w.Value[j-1])) {
				return true
			}
		}
	}

	// the closing sequence may be in the content after the value
	return w.Info.After != 0
}

// unsafeBoundary matches a marker touching the marker of a neighbour: the first
// character of the content of a span, or the last one before a span or its closing
// sequence. The code after a closing sequence is never inspected, so text after a span
// is safe. Inside a span, a last marker after a space or tab is content and can not
// close the span early.
func unsafeBoundary(w markdown.Window) bool {
	inside := w.Inside(KindHighlight)

	if w.Index == 0 && w.Info.Before == Marker && inside {
		return true
	}

	if w.Index != len(w.Value)-1 || w.Info.After != Marker {
		return false
	}

	return !inside || w.Index == 0 || !markup.IsSpaceOrTab(w.Prev())
}
