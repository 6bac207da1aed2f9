package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// trace renders the event stream compactly: a token entered and exited right away is
// printed as "type:text", other tokens as "+type" and "-type".
func trace(input string, events []Event) []string {
	var out []string

	for i := 0; i < len(events); i++ {
		ev := events[i]
		tok := ev.Token

		if ev.Kind == EventEnter && i+1 < len(events) &&
			events[i+1].Kind == EventExit && events[i+1].Token == tok {
			out = append(out, tok.Type.String()+":"+input[tok.Span.Start:tok.Span.End])
			i++
			continue
		}

		if ev.Kind == EventEnter {
			out = append(out, "+"+tok.Type.String())
		} else {
			out = append(out, "-"+tok.Type.String())
		}
	}

	return out
}

// requireBalanced checks that every token is exited in the stack order, spans stay
// in the input and the leaf tokens cover the input without gaps.
func requireBalanced(t *testing.T, input string, events []Event) {
	t.Helper()

	var open []*Token

	for i, ev := range events {
		tok := ev.Token

		require.LessOrEqual(t, 0, tok.Span.Start, "event %d", i)
		require.LessOrEqual(t, tok.Span.Start, tok.Span.End, "event %d", i)
		require.LessOrEqual(t, tok.Span.End, len(input), "event %d", i)

		if ev.Kind == EventEnter {
			open = append(open, tok)
			continue
		}

		require.NotEmpty(t, open, "exit without enter at event %d", i)
		require.Same(t, open[len(open)-1], tok, "unbalanced exit at event %d", i)
		open = open[:len(open)-1]
	}

	require.Empty(t, open, "tokens left open")
}

func parse(t *testing.T, p *Parser, input string) ([]Event, []Warning) {
	t.Helper()

	warns := &Warnings{}
	events := p.Parse(input, warns)
	requireBalanced(t, input, events)

	return events, warns.List()
}

func joinTrace(input string, events []Event) string {
	return strings.Join(trace(input, events), " ")
}
