package markup

// Construct describes one inline syntax the Parser can recognize.
type Construct struct {
	// Name is the unique name of the Construct, used for the registration checks.
	Name string

	// Triggers is the set of 1-byte printable ASCII characters which start the Construct.
	Triggers string

	// Tokenize creates the Construct's state machine.
	Tokenize Tokenizer

	// Previous, when set, must approve the code consumed right before the trigger,
	// otherwise the Construct is not attempted at this position.
	Previous func(c Code) bool

	// Neutral Constructs hide their last consumed code from the Previous check of the
	// next Construct. Character escapes are neutral, so an escaped marker never counts as
	// a marker for its neighbour.
	Neutral bool

	// Diagnose, when set, is called after the Construct failed at pos and may report a Warning.
	Diagnose func(input string, pos, end int) (Warning, bool)
}

// Parser scans inline text and turns it into a flat stream of Events.
//
// The Parser is read-only once configured, so one Parser can serve concurrent parses.
type Parser struct {
	// constructs maps trigger bytes to the Constructs attempted for them, in the
	// registration order.
	constructs [256][]*Construct

	names map[string]struct{}
}

// NewParser creates a Parser with the core constructs registered: character escapes,
// code spans, attention sequences and links.
func NewParser() *Parser {
	p := &Parser{
		names: make(map[string]struct{}),
	}

	for _, c := range CoreConstructs() {
		// core constructs are known to be valid
		if err := p.AddConstruct(c); err != nil {
			panic(err)
		}
	}

	return p
}

// AddConstruct registers c for every one of its triggers.
func (p *Parser) AddConstruct(c Construct) error {
	if c.Tokenize == nil {
		return newMissingTokenizerError(c.Name)
	}

	if _, exists := p.names[c.Name]; exists {
		return newDuplicateConstructError(c.Name)
	}

	for i := 0; i < len(c.Triggers); i++ {
		if !isASCIIPrintable(c.Triggers[i]) {
			return newInvalidTriggerError(c.Name, c.Triggers[i])
		}
	}

	if len(c.Triggers) == 0 {
		return newInvalidTriggerError(c.Name, 0)
	}

	p.names[c.Name] = struct{}{}

	cons := &c
	for i := 0; i < len(c.Triggers); i++ {
		b := c.Triggers[i]
		p.constructs[b] = append(p.constructs[b], cons)
	}

	return nil
}

// Parse tokenizes the whole input as phrasing text.
func (p *Parser) Parse(input string, warns *Warnings) []Event {
	return p.ParseRange(input, Span{0, len(input)}, warns)
}

// ParseRange tokenizes input[span.Start:span.End] as phrasing text. Token spans stay
// absolute offsets into input.
func (p *Parser) ParseRange(input string, span Span, warns *Warnings) []Event {
	e := newEffects(input, span.Start, span.End)

	// the place where the current plain text started
	dataStart := span.Start

	for e.pos < e.end {
		at := e.pos
		matched := false

		for _, c := range p.constructs[input[at]] {
			if c.Previous != nil && !c.Previous(e.previous) {
				continue
			}

			// the Construct writes its own events, so the pending text goes first
			mark, pending := len(e.events), dataStart
			dataStart = flushData(e, dataStart)

			if e.run(c.Tokenize) {
				matched = true

				if c.Neutral {
					e.previous = None
				}
				break
			}

			// no match, the text goes on
			e.events = e.events[:mark]
			dataStart = pending

			if c.Diagnose != nil {
				if w, ok := c.Diagnose(input, at, e.end); ok {
					warns.Add(w)
				}
			}
		}

		if matched {
			dataStart = e.pos
			continue
		}

		// not special, or no Construct wanted it: the code is plain text
		e.Consume(e.Peek())
	}

	flushData(e, dataStart)

	return p.subtokenize(input, e.events, warns)
}

// flushData emits the plain text accumulated since start as a single data Token, and
// returns the new start of the plain text.
func flushData(e *Effects, start int) int {
	if start < e.pos {
		tok := &Token{Type: TypeData, Span: Span{start, e.pos}}
		e.events = append(e.events,
			Event{Kind: EventEnter, Token: tok},
			Event{Kind: EventExit, Token: tok},
		)
	}

	return e.pos
}

// subtokenize replaces every Token marked with [ContentText] by the events of its own range,
// tokenized recursively. Contiguous content Tokens of the same type, like the pieces of
// highlighted text split around a lone marker, are merged into one range first, so the
// inner constructs can span them.
func (p *Parser) subtokenize(input string, events []Event, warns *Warnings) []Event {
	var out []Event

	for i := 0; i < len(events); i++ {
		ev := events[i]

		if ev.Kind != EventEnter || ev.Token.Content != ContentText {
			if out != nil {
				out = append(out, ev)
			}
			continue
		}

		// lazily copying the events seen so far, most ranges have no content Tokens at all
		if out == nil {
			out = make([]Event, i, len(events)*2)
			copy(out, events[:i])
		}

		tok := ev.Token
		j := exitIndex(events, i)
		end := tok.Span.End

		for j+2 < len(events) {
			next := events[j+1]
			if next.Kind != EventEnter || next.Token.Content != ContentText ||
				next.Token.Type != tok.Type || next.Token.Span.Start != end {
				break
			}

			end = next.Token.Span.End
			j = exitIndex(events, j+1)
		}

		merged := &Token{Type: tok.Type, Span: Span{tok.Span.Start, end}}

		out = append(out, Event{Kind: EventEnter, Token: merged})
		out = append(out, p.ParseRange(input, merged.Span, warns)...)
		out = append(out, Event{Kind: EventExit, Token: merged})

		i = j
	}

	if out == nil {
		return events
	}

	return out
}

// exitIndex returns the index of the exit event of the Token entered at events[i].
func exitIndex(events []Event, i int) int {
	tok := events[i].Token

	for j := i + 1; j < len(events); j++ {
		if events[j].Kind == EventExit && events[j].Token == tok {
			return j
		}
	}

	// unreachable for streams written by Effects, which always balance
	return len(events) - 1
}

// isASCIIPrintable returns true if the byte is a printable ASCII character, that is
// its value is between 33 and 126. Space is not a valid trigger.
func isASCIIPrintable(b byte) bool {
	return b > 32 && b <= 126
}
