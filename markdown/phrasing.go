package markdown

import (
	"strconv"

	"github.com/Drolfothesgnir/markplus/markup"
)

// delimiter is the flanking data of an attention sequence or a label start waiting
// to be resolved.
type delimiter struct {
	// marker is the character the run consists of.
	marker byte

	// open and close tell whether the run may open and close emphasis.
	open, close bool

	// orig is the length of the run before any of it was used, for the rule of three.
	orig int

	// active is false for the label starts which may not form a link anymore.
	active bool
}

// resolve pairs the delimiters among nodes into emphasis, strong and strikethrough,
// turns the leftover placeholders into text and merges adjacent text.
func (b *Builder) resolve(nodes []*Node) []*Node {
	nodes = b.resolveEmphasis(nodes)

	for _, n := range nodes {
		b.literal(n)
	}

	return mergeText(nodes)
}

// resolveEmphasis runs the CommonMark delimiter algorithm over nodes: every closer,
// from left to right, is paired with the nearest compatible opener before it.
func (b *Builder) resolveEmphasis(nodes []*Node) []*Node {
	for ci := 0; ci < len(nodes); ci++ {
		closer := nodes[ci]
		if closer.Kind != kindDelimiter || !closer.delim.close {
			continue
		}

		oi := findOpener(nodes, ci)
		if oi < 0 {
			continue
		}

		opener := nodes[oi]

		// number of markers used from both sides
		n := 1
		kind := KindEmphasis
		tag := "em"

		switch {
		case opener.delim.marker == markup.SymbolTilde:
			n, kind, tag = 2, KindDelete, "del"
		case len(opener.Value) >= 2 && len(closer.Value) >= 2:
			n, kind, tag = 2, KindStrong, "strong"
		}

		opener.Value = opener.Value[:len(opener.Value)-n]
		opener.Span.End -= n
		closer.Value = closer.Value[n:]
		closer.Span.Start += n

		wrap := newNode(kind)
		wrap.Tag = tag
		wrap.Span = markup.Span{Start: opener.Span.End, End: closer.Span.Start}
		if kind != KindDelete {
			wrap.Marker = string(opener.delim.marker)
		}

		inner := make([]*Node, ci-oi-1)
		copy(inner, nodes[oi+1:ci])

		// the delimiters between the pair can not match anything outside of it anymore
		for _, c := range inner {
			b.literal(c)
		}
		wrap.Children = mergeText(inner)

		rest := nodes[ci+1:]

		rebuilt := make([]*Node, 0, len(nodes))
		rebuilt = append(rebuilt, nodes[:oi]...)
		if opener.Value != "" {
			rebuilt = append(rebuilt, opener)
		}

		rebuilt = append(rebuilt, wrap)

		// the loop continues right after the wrapper, so the rest of the closer, if any,
		// gets another chance
		ci = len(rebuilt) - 1

		if closer.Value != "" {
			rebuilt = append(rebuilt, closer)
		}

		nodes = append(rebuilt, rest...)
	}

	return nodes
}

// findOpener returns the index of the nearest delimiter before ci which can be closed
// by nodes[ci], or -1.
func findOpener(nodes []*Node, ci int) int {
	c := nodes[ci].delim

	for j := ci - 1; j >= 0; j-- {
		o := nodes[j]
		if o.Kind != kindDelimiter || o.delim.marker != c.marker || !o.delim.open || o.Value == "" {
			continue
		}

		if c.marker == markup.SymbolTilde {
			if len(o.Value) == 2 && len(nodes[ci].Value) == 2 {
				return j
			}
			continue
		}

		// rule of three
		if (o.delim.close || c.open) &&
			(o.delim.orig+c.orig)%3 == 0 &&
			!(o.delim.orig%3 == 0 && c.orig%3 == 0) {
			continue
		}

		return j
	}

	return -1
}

// literal turns a placeholder into plain text, warning about the runs which could have
// opened or closed something.
func (b *Builder) literal(n *Node) {
	switch n.Kind {
	case kindDelimiter:
		if n.delim.open || n.delim.close {
			b.Warn(markup.IssueUnmatchedDelimiter, n.Span.Start,
				"Delimiter "+strconv.Quote(n.Value)+" at byte index "+strconv.Itoa(n.Span.Start)+" has no matching partner.")
		}
	case kindLabel:
		b.Warn(markup.IssueUnmatchedLabel, n.Span.Start,
			"Label start at byte index "+strconv.Itoa(n.Span.Start)+" has no matching label end.")
	default:
		return
	}

	n.Kind = KindText
	n.Type = KindText.String()
	n.delim = nil
}

// mergeText joins adjacent text nodes and drops the empty ones.
func mergeText(nodes []*Node) []*Node {
	out := nodes[:0]

	for _, n := range nodes {
		if n.Kind != KindText {
			out = append(out, n)
			continue
		}

		if n.Value == "" {
			continue
		}

		if len(out) > 0 && out[len(out)-1].Kind == KindText {
			prev := out[len(out)-1]
			prev.Value += n.Value
			prev.Span.End = n.Span.End
			continue
		}

		out = append(out, n)
	}

	return out
}
