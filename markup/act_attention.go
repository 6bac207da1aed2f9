package markup

// attentionConstruct recognizes a run of [SymbolAsterisk], [SymbolUnderscore] or [SymbolTilde]
// characters. The run itself never fails: whether it opens or closes anything is decided by the
// tree builder, using the Open and Close flags computed here.
//
// Behaviour:
//
// Open and Close follow the CommonMark flanking rules. A run is left-flanking when it is not
// followed by whitespace, and either not followed by punctuation or preceded by whitespace or
// punctuation. Right-flanking is the mirror image.
//
//   - '*' and '~' open when left-flanking and close when right-flanking;
//   - '_' additionally may not open or close inside a word;
//   - a '~' run of any length but 2 neither opens nor closes.
func attentionConstruct() Construct {
	return Construct{
		Name:     "attention",
		Triggers: string([]byte{SymbolAsterisk, SymbolUnderscore, SymbolTilde}),
		Tokenize: tokenizeAttention,
	}
}

func tokenizeAttention(e *Effects, ok, nok State) State {
	var (
		marker Code
		size   int
		inside State
	)

	start := func(c Code) State {
		marker = c
		e.Enter(TypeAttentionSequence)
		return inside(c)
	}

	inside = func(c Code) State {
		if c == marker {
			e.Consume(c)
			size++
			return inside
		}

		tok := e.Exit(TypeAttentionSequence)

		before := Classify(LastCode(e.input, tok.Span.Start))
		after := Classify(c)

		tok.Open, tok.Close = Flanking(marker, before, after)

		if marker == SymbolTilde && size != 2 {
			tok.Open, tok.Close = false, false
		}

		return ok(c)
	}

	return start
}

// Flanking returns whether a run of marker between codes of the classes before and after
// may open and close emphasis.
func Flanking(marker Code, before, after Class) (canOpen, canClose bool) {
	left := after != ClassWhitespace &&
		(after != ClassPunctuation || before != ClassOther)

	right := before != ClassWhitespace &&
		(before != ClassPunctuation || after != ClassOther)

	if marker != SymbolUnderscore {
		return left, right
	}

	canOpen = left && (!right || before == ClassPunctuation)
	canClose = right && (!left || after == ClassPunctuation)

	return canOpen, canClose
}
