package markup

import "strconv"

// codeConstruct recognizes an inline code span: a run of K [SymbolCode] characters, the code
// itself, and a closing run of exactly K [SymbolCode] characters.
//
// Behaviour:
//
// A backtick run of a different width inside the code is a part of the code. If no closing
// run of the same width exists in the range, the construct fails, the opening run stays plain
// text and a [Warning] with [IssueUnclosedCode] is added.
//
// The construct never starts right after another backtick, so the opening run is always
// taken whole.
func codeConstruct() Construct {
	return Construct{
		Name:     "codeText",
		Triggers: string(SymbolCode),
		Tokenize: tokenizeCode,
		Previous: func(c Code) bool { return c != SymbolCode },
		Diagnose: diagnoseCode,
	}
}

// codeTokenizer holds the state of one code span scan.
type codeTokenizer struct {
	e       *Effects
	ok, nok State

	// size is the width of the opening run.
	size int

	// closing is the width of the run being scanned after the opening one.
	closing int
}

func tokenizeCode(e *Effects, ok, nok State) State {
	t := &codeTokenizer{e: e, ok: ok, nok: nok}
	return t.start
}

func (t *codeTokenizer) start(c Code) State {
	t.e.Enter(TypeCodeText)
	t.e.Enter(TypeCodeSequence)
	return t.sequenceOpen(c)
}

func (t *codeTokenizer) sequenceOpen(c Code) State {
	if c == SymbolCode {
		t.e.Consume(c)
		t.size++
		return t.sequenceOpen
	}

	t.e.Exit(TypeCodeSequence)
	return t.between(c)
}

// between is the place between the code data and the backtick runs.
func (t *codeTokenizer) between(c Code) State {
	if c == EOF {
		return t.nok(c)
	}

	if c == SymbolCode {
		t.e.Enter(TypeCodeSequence)
		t.closing = 0
		return t.sequenceClose(c)
	}

	t.e.Enter(TypeCodeData)
	return t.data(c)
}

func (t *codeTokenizer) data(c Code) State {
	if c == EOF || c == SymbolCode {
		t.e.Exit(TypeCodeData)
		return t.between(c)
	}

	t.e.Consume(c)
	return t.data
}

func (t *codeTokenizer) sequenceClose(c Code) State {
	if c == SymbolCode {
		t.e.Consume(c)
		t.closing++
		return t.sequenceClose
	}

	if t.closing == t.size {
		t.e.Exit(TypeCodeSequence)
		t.e.Exit(TypeCodeText)
		return t.ok(c)
	}

	// a run of another width is a part of the code
	tok := t.e.Exit(TypeCodeSequence)
	tok.Type = TypeCodeData

	return t.between(c)
}

func diagnoseCode(input string, pos, end int) (Warning, bool) {
	width := 0
	for i := pos; i < end && input[i] == SymbolCode; i++ {
		width++
	}

	return Warning{
		Issue:       IssueUnclosedCode,
		Pos:         pos,
		Description: "Code span opened at byte index " + strconv.Itoa(pos) + " with " + strconv.Itoa(width) + " backtick(s) is never closed.",
	}, true
}
