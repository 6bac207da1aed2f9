package markup

import "fmt"

// State is one step of a construct's state machine. It receives the current code and
// returns the State that handles the next one.
//
// A State either consumes the code with [Effects.Consume] and returns the next State, or
// hands the very same code to another State by calling it directly (e.g. `return nok(c)`).
// Returning a State without consuming is allowed too: the driver feeds it the same code again.
type State func(c Code) State

// Tokenizer creates the start State of a construct. ok and nok are the continuations
// for a successful and a failed scan.
type Tokenizer func(e *Effects, ok, nok State) State

// checkpoint is everything needed to undo a failed scan.
type checkpoint struct {
	pos      int
	previous Code
	events   int
	stack    []*Token
}

// Effects is the cursor over a range of the input together with the event log
// a construct writes into. One Effects is owned by exactly one scan of one range.
type Effects struct {
	input string

	// pos is the byte offset of the current code.
	pos int

	// end is the exclusive end of the scanned range. Peek returns EOF at end.
	end int

	// previous is the last consumed code, or None.
	previous Code

	events []Event
	open   stack[*Token]
}

// newEffects creates Effects scanning input[start:end].
func newEffects(input string, start, end int) *Effects {
	return &Effects{
		input:    input,
		pos:      start,
		end:      end,
		previous: None,
		events:   make([]Event, 0, (end-start)/ByteToEventRatio+4),
	}
}

// ByteToEventRatio is used to estimate the initial capacity of the event log.
const ByteToEventRatio = 2

// Peek returns the current code without consuming it.
func (e *Effects) Peek() Code {
	if e.pos >= e.end {
		return EOF
	}

	c, _ := DecodeCode(e.input, e.pos)
	return c
}

// Previous returns the last consumed code. It is [None] at the start of the range and
// right after a neutral construct.
func (e *Effects) Previous() Code {
	return e.previous
}

// Pos returns the byte offset of the current code.
func (e *Effects) Pos() int {
	return e.pos
}

// Input returns the whole input string the Effects scans a range of.
func (e *Effects) Input() string {
	return e.input
}

// Enter opens a new Token of type t at the current position.
func (e *Effects) Enter(t TokenType, opts ...TokenOption) *Token {
	tok := &Token{
		Type: t,
		Span: Span{e.pos, e.pos},
	}

	for _, opt := range opts {
		opt(tok)
	}

	e.open.push(tok)
	e.events = append(e.events, Event{Kind: EventEnter, Token: tok})

	return tok
}

// Exit closes the innermost open Token, which must be of type t.
//
// Exiting out of order is a bug in the calling construct, never a property of the
// input, so it panics.
func (e *Effects) Exit(t TokenType) *Token {
	tok, ok := e.open.pop()
	if !ok {
		panic(fmt.Sprintf("markup: cannot exit %s: no open token", t))
	}

	if tok.Type != t {
		panic(fmt.Sprintf("markup: cannot exit %s: innermost open token is %s", t, tok.Type))
	}

	tok.Span.End = e.pos
	e.events = append(e.events, Event{Kind: EventExit, Token: tok})

	return tok
}

// Consume moves past the current code, which must be c, into the innermost open Token.
func (e *Effects) Consume(c Code) {
	if c == EOF {
		panic("markup: cannot consume EOF")
	}

	cur, w := DecodeCode(e.input, e.pos)
	if cur != c {
		panic(fmt.Sprintf("markup: expected to consume %q, got %q", rune(c), rune(cur)))
	}

	e.pos += w
	e.previous = c
}

// Attempt returns a State which runs the tokenizer as a reversible sub-scan.
//
// When the sub-scan reaches its ok continuation, the events it wrote are kept and ok
// receives the code after the scanned part. When it reaches nok, every event, exit,
// and consumption done since the attempt started is undone and nok receives the code
// at the original position.
func (e *Effects) Attempt(tokenize Tokenizer, ok, nok State) State {
	return func(c Code) State {
		cp := e.save()

		onNok := func(Code) State {
			e.restore(cp)
			return nok(e.Peek())
		}

		return tokenize(e, ok, onNok)(c)
	}
}

func (e *Effects) save() checkpoint {
	return checkpoint{
		pos:      e.pos,
		previous: e.previous,
		events:   len(e.events),
		stack:    e.open.snapshot(),
	}
}

func (e *Effects) restore(cp checkpoint) {
	e.pos = cp.pos
	e.previous = cp.previous
	e.events = e.events[:cp.events]
	e.open.restore(cp.stack)
}

// run drives tokenize from the current position until it reaches one of its
// continuations. On failure the Effects is restored to where it was.
func (e *Effects) run(tokenize Tokenizer) bool {
	cp := e.save()

	done, matched := false, false

	ok := func(Code) State {
		done, matched = true, true
		return nil
	}

	nok := func(Code) State {
		done = true
		return nil
	}

	state := tokenize(e, ok, nok)

	for !done {
		if state == nil {
			panic("markup: construct returned a nil state before finishing")
		}

		state = state(e.Peek())
	}

	// a construct which consumed nothing did not match anything
	if !matched || e.pos == cp.pos {
		e.restore(cp)
		return false
	}

	// a construct must leave every token it entered
	if e.open.len() != len(cp.stack) {
		panic("markup: construct finished with open tokens")
	}

	return true
}
