package pipeline

import "github.com/Drolfothesgnir/markplus/markup"

// Paragraphs returns the spans of the paragraphs of src: runs of lines which are not
// blank. A span starts at its first line and ends before the line ending of its last one.
func Paragraphs(src string) []markup.Span {
	var spans []markup.Span

	// start of the current paragraph, -1 between paragraphs
	start := -1
	end := 0

	for pos := 0; pos < len(src); {
		lineEnd, next := line(src, pos)

		if isBlank(src[pos:lineEnd]) {
			if start >= 0 {
				spans = append(spans, markup.Span{Start: start, End: end})
				start = -1
			}
		} else {
			if start < 0 {
				start = pos
			}
			end = lineEnd
		}

		pos = next
	}

	if start >= 0 {
		spans = append(spans, markup.Span{Start: start, End: end})
	}

	return spans
}

// line returns the end of the line starting at pos, and the start of the next one.
// "\n", "\r" and "\r\n" end a line.
func line(src string, pos int) (end, next int) {
	end = pos
	for end < len(src) && src[end] != '\n' && src[end] != '\r' {
		end++
	}

	next = end
	if next < len(src) {
		if src[next] == '\r' && next+1 < len(src) && src[next+1] == '\n' {
			next += 2
		} else {
			next++
		}
	}

	return end, next
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if !markup.IsSpaceOrTab(markup.Code(s[i])) {
			return false
		}
	}

	return true
}
