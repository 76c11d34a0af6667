package markup

import (
	"errors"
	"fmt"
)

// Kind tells whether a formatter only escapes text or performs a real markup transformation.
type Kind int

const (
	// Custom formatters render their own markup; autolinking is never applied to their output.
	Custom Kind = iota
	// EscapingOnly formatters do nothing beyond escaping special characters.
	EscapingOnly
)

func (k Kind) String() string {
	switch k {
	case EscapingOnly:
		return "escaping-only"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Formatter translates raw text into display markup.
type Formatter interface {
	Translate(text string) (string, error)
	Kind() Kind
}

var ErrUnknownFormatter = errors.New("unknown markup formatter")

// TranslationError is returned when a formatter cannot translate its input.
type TranslationError struct {
	Formatter string
	Err       error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("error translating markup with %s formatter: %v", e.Formatter, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

const (
	NameEscaped  = "escaped"
	NameMarkdown = "markdown"
	NameSafeHTML = "safe-html"
)

// New returns the formatter registered under name. An empty name selects the escaped formatter.
func New(name string) (Formatter, error) {
	switch name {
	case "", NameEscaped:
		return Escaped{}, nil
	case NameMarkdown:
		return NewMarkdown(), nil
	case NameSafeHTML:
		return NewSafeHTML(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormatter, name)
}
