package markup

// labelStartConstruct recognizes the [SymbolLabelStart] of a possible link. Whether it
// really starts a link is decided by the tree builder, once the matching label end is known.
func labelStartConstruct() Construct {
	return Construct{
		Name:     "labelStart",
		Triggers: string(SymbolLabelStart),
		Tokenize: tokenizeLabelStart,
	}
}

func tokenizeLabelStart(e *Effects, ok, _ State) State {
	return func(c Code) State {
		e.Enter(TypeLabelStart)
		e.Consume(c)
		e.Exit(TypeLabelStart)
		return ok
	}
}

// labelEndConstruct recognizes "](destination)", the end of a possible link.
//
// Behaviour:
//
// The destination may be empty, and may contain backslash escapes. Whitespace, a nested
// [SymbolResourceStart] or the end of the range make the construct fail, and the characters
// stay plain text.
func labelEndConstruct() Construct {
	return Construct{
		Name:     "labelEnd",
		Triggers: string(SymbolLabelEnd),
		Tokenize: tokenizeLabelEnd,
	}
}

func tokenizeLabelEnd(e *Effects, ok, nok State) State {
	var afterMarker, destinationStart, destination, destinationEscape, end State

	start := func(c Code) State {
		e.Enter(TypeLabelEnd)
		e.Consume(c)
		return afterMarker
	}

	afterMarker = func(c Code) State {
		if c != SymbolResourceStart {
			return nok(c)
		}

		e.Enter(TypeResource)
		e.Consume(c)
		return destinationStart
	}

	destinationStart = func(c Code) State {
		e.Enter(TypeDestination)
		return destination(c)
	}

	destination = func(c Code) State {
		switch {
		case c == SymbolResourceEnd:
			e.Exit(TypeDestination)
			return end(c)
		case IsWhitespace(c), c == SymbolResourceStart:
			return nok(c)
		case c == SymbolEscape:
			e.Consume(c)
			return destinationEscape
		}

		e.Consume(c)
		return destination
	}

	destinationEscape = func(c Code) State {
		if IsASCIIPunctuation(c) {
			e.Consume(c)
			return destination
		}

		return destination(c)
	}

	end = func(c Code) State {
		e.Consume(c)
		e.Exit(TypeResource)
		e.Exit(TypeLabelEnd)
		return ok
	}

	return start
}
