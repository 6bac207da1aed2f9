package content

import (
	"errors"
	"fmt"
)

// Kind defines the type of the section, e.g. "default", "gallery", "faq"
type Kind string

const (
	KindDefault Kind = "default"
)

type Type string

const (
	TypeParagraph Type = "paragraph"
	TypeImage     Type = "image"
	TypeList      Type = "list"
	TypeCode      Type = "code"
	TypeQuote     Type = "quote"
	TypeDivider   Type = "divider"
)

// ErrInvalidBody is wrapped by every error Parse returns.
var ErrInvalidBody = errors.New("invalid body")

// ValidationError reports the part of the body which failed, Path is empty for the
// whole body.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidBody, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidBody, e.Path, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidBody, e.Err}
}

func newValidationError(path string, err error) *ValidationError {
	return &ValidationError{Path: path, Err: err}
}
