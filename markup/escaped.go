package markup

import "strings"

// Escaped is the plain text formatter. It escapes HTML special characters,
// turns newlines into <br> and keeps runs of spaces visible with &nbsp;.
type Escaped struct{}

func (Escaped) Kind() Kind {
	return EscapingOnly
}

func (Escaped) Translate(text string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(text) + 64)

	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '\n':
			sb.WriteString("<br>")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '&':
			sb.WriteString("&amp;")
		case '"':
			sb.WriteString("&quot;")
		case '\'':
			sb.WriteString("&#039;")
		case ' ':
			// every space of a run except the last one, so the text can still wrap
			if i+1 < len(text) && text[i+1] == ' ' {
				sb.WriteString("&nbsp;")
			} else {
				sb.WriteByte(' ')
			}
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String(), nil
}
