package markup

// Characters the core constructs are triggered by or look for.
const (
	SymbolEscape        = '\\'
	SymbolCode          = '`'
	SymbolAsterisk      = '*'
	SymbolUnderscore    = '_'
	SymbolTilde         = '~'
	SymbolLabelStart    = '['
	SymbolLabelEnd      = ']'
	SymbolResourceStart = '('
	SymbolResourceEnd   = ')'
)

// CoreConstructs returns the constructs every Parser is created with.
func CoreConstructs() []Construct {
	return []Construct{
		escapeConstruct(),
		codeConstruct(),
		attentionConstruct(),
		labelStartConstruct(),
		labelEndConstruct(),
	}
}
