package markup

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders CommonMark with the GitHub extensions. Raw HTML in the input is not rendered.
type Markdown struct {
	md goldmark.Markdown
}

func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (m *Markdown) Kind() Kind {
	return Custom
}

func (m *Markdown) Translate(text string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(text), &buf); err != nil {
		return "", &TranslationError{Formatter: NameMarkdown, Err: err}
	}
	return buf.String(), nil
}
