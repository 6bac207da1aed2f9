package markup

import "fmt"

// Issue describes the kind of problem detected during the configuration or the parsing,
// e.g. unclosed emphasis, redundant escape, duplicate construct, etc.
type Issue int

const (
	// IssueRedundantEscape occurs when a backslash is followed by a code which can not be
	// escaped. The backslash stays in the text as is.
	IssueRedundantEscape Issue = iota

	// IssueUnclosedCode occurs when a backtick run has no closing run of the same width.
	IssueUnclosedCode

	// IssueUnmatchedDelimiter occurs when an emphasis or strikethrough run found no partner
	// and was turned into plain text.
	IssueUnmatchedDelimiter

	// IssueUnmatchedLabel occurs when a link label start or end found no partner.
	IssueUnmatchedLabel

	// IssueInvalidTrigger occurs when a construct is registered for a byte which is not
	// printable ASCII.
	IssueInvalidTrigger

	// IssueDuplicateConstruct occurs when a construct with the same name is already registered.
	IssueDuplicateConstruct

	// IssueMissingTokenizer occurs when a construct has no Tokenizer.
	IssueMissingTokenizer

	// IssueDuplicateType occurs when two extensions claim the same token type or node kind.
	IssueDuplicateType

	// IssueReservedType occurs when an extension claims a token type or node kind reserved by the host.
	IssueReservedType

	// IssueUndeclaredType occurs when an extension registers a handler for a token type or
	// node kind it did not declare.
	IssueUndeclaredType

	// IssueDuplicateExtension occurs when two extensions have the same name.
	IssueDuplicateExtension

	// IssueMissingHandle occurs when an extension node kind has no serializer handle.
	IssueMissingHandle
)

var issueNames = map[Issue]string{
	IssueRedundantEscape:    "redundant escape",
	IssueUnclosedCode:       "unclosed code",
	IssueUnmatchedDelimiter: "unmatched delimiter",
	IssueUnmatchedLabel:     "unmatched label",
	IssueInvalidTrigger:     "invalid trigger",
	IssueDuplicateConstruct: "duplicate construct",
	IssueMissingTokenizer:   "missing tokenizer",
	IssueDuplicateType:      "duplicate type",
	IssueReservedType:       "reserved type",
	IssueUndeclaredType:     "undeclared type",
	IssueDuplicateExtension: "duplicate extension",
	IssueMissingHandle:      "missing handle",
}

func (i Issue) String() string {
	if s, ok := issueNames[i]; ok {
		return s
	}
	return fmt.Sprintf("issue(%d)", int(i))
}

// Warning describes a non-critical problem found in the input. Parsing still succeeds,
// the problematic part simply stays plain text.
type Warning struct {
	// Issue defines the type of the problem.
	Issue Issue `json:"issue" yaml:"issue"`

	// Pos defines the byte position in the input string at which the problem occured.
	Pos int `json:"pos" yaml:"pos"`

	// Description is a human-readable story of what went wrong.
	Description string `json:"description" yaml:"description"`
}

// Warnings collects the Warnings of one parse.
type Warnings struct {
	list []Warning
}

// Add records w.
func (w *Warnings) Add(warning Warning) {
	w.list = append(w.list, warning)
}

// List returns the recorded Warnings in the order they were added.
func (w *Warnings) List() []Warning {
	return w.list
}

// Len returns the number of recorded Warnings.
func (w *Warnings) Len() int {
	return len(w.list)
}

// ConfigError describes an error which occurs during the configuration of a Parser or a
// pipeline, like an improperly defined construct.
type ConfigError struct {
	Issue Issue // Issue is the kind of the problem.
	Err   error // Err contains the original error.
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Issue, e.Err)
}

// NewConfigError is a factory function for creating a *ConfigError.
func NewConfigError(issue Issue, err error) *ConfigError {
	return &ConfigError{
		Issue: issue,
		Err:   err,
	}
}

func newInvalidTriggerError(name string, trigger byte) error {
	return NewConfigError(
		IssueInvalidTrigger,
		fmt.Errorf("construct %q: trigger expected to be a printable ASCII character, got %q", name, trigger),
	)
}

func newDuplicateConstructError(name string) error {
	return NewConfigError(IssueDuplicateConstruct, fmt.Errorf("construct %q already registered", name))
}

func newMissingTokenizerError(name string) error {
	return NewConfigError(IssueMissingTokenizer, fmt.Errorf("construct %q has no tokenizer", name))
}
