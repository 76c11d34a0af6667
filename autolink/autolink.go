package autolink

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/guidograzioli/build-failure-analyzer-plugin/markup"
)

const (
	linkFormat = "<a target='_blank' href='%s'>%s</a>"

	// DefaultMatchTimeout bounds a single match or replace pass of the configured pattern.
	DefaultMatchTimeout = time.Second
)

// FormatterProvider returns the markup formatter that is active at call time.
type FormatterProvider interface {
	MarkupFormatter() markup.Formatter
}

// ConfigProvider returns the autolink settings. The URL is a replacement
// template, so $1 or ${name} inside it expand per match.
type ConfigProvider interface {
	AutolinkPattern() string
	AutolinkURL() string
}

// PatternError reports an autolink pattern that could not be compiled or evaluated.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("error evaluating autolink pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

type Processor struct {
	formatters   FormatterProvider
	config       ConfigProvider
	matchTimeout time.Duration
}

type Option func(*Processor)

// WithMatchTimeout overrides DefaultMatchTimeout. Zero or negative disables the timeout.
func WithMatchTimeout(d time.Duration) Option {
	return func(p *Processor) {
		p.matchTimeout = d
	}
}

func NewProcessor(formatters FormatterProvider, config ConfigProvider, opts ...Option) *Processor {
	p := &Processor{
		formatters:   formatters,
		config:       config,
		matchTimeout: DefaultMatchTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process translates a failure cause description into display markup.
//
// Autolinking is only attempted for escaping-only formatters: the translated
// text must match the pattern as a whole, after which every match of the
// pattern is replaced by a link. Other formatters return their translation
// untouched. On any failure the original description is returned.
func (p *Processor) Process(description string) string {
	formatter := p.formatters.MarkupFormatter()

	translated, err := formatter.Translate(description)
	if err != nil {
		slog.Warn("Couldn't transform markup", "error", err)
		return description
	}

	if formatter.Kind() != markup.EscapingOnly {
		return translated
	}

	linked, ok, err := p.Link(translated)
	if err != nil {
		slog.Warn("Couldn't parse autolink regular expression", "error", err)
		return description
	}
	if !ok {
		return description
	}

	return linked
}

// Link applies the autolink pattern to already translated text. The boolean
// is false when the text as a whole does not match the pattern, or when no
// pattern is configured.
func (p *Processor) Link(translated string) (string, bool, error) {
	pattern := p.config.AutolinkPattern()
	if pattern == "" {
		return "", false, nil
	}

	re, err := p.compile(pattern, regexp2.None)
	if err != nil {
		return "", false, err
	}
	// the whole text has to match, with . crossing line breaks
	whole, err := p.compile(`\A(?:`+pattern+`)\z`, regexp2.Singleline)
	if err != nil && freeSpacing(pattern) {
		// a trailing # comment swallows the anchors unless the line is closed
		whole, err = p.compile(`\A(?:`+pattern+"\n"+`)\z`, regexp2.Singleline)
	}
	if err != nil {
		return "", false, err
	}

	matched, err := whole.FindStringMatch(translated)
	if err != nil {
		return "", false, &PatternError{Pattern: pattern, Err: err}
	}
	if matched == nil {
		return "", false, nil
	}

	label := strings.ReplaceAll(matched.String(), "$", "$$")
	if groupCount(re) > 0 {
		// expanded per match by the replace pass below
		label = "$1"
	}

	// independent of the match above; it may fire on a different set of matches
	linked, err := re.Replace(translated, fmt.Sprintf(linkFormat, p.config.AutolinkURL(), label), -1, -1)
	if err != nil {
		return "", false, &PatternError{Pattern: pattern, Err: err}
	}

	return linked, true, nil
}

func (p *Processor) compile(expr string, opts regexp2.RegexOptions) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, &PatternError{Pattern: expr, Err: err}
	}
	if p.matchTimeout > 0 {
		re.MatchTimeout = p.matchTimeout
	}
	return re, nil
}

var freeSpacingFlag = regexp2.MustCompile(`\(\?[a-z]*x`, regexp2.None)

func freeSpacing(pattern string) bool {
	ok, _ := freeSpacingFlag.MatchString(pattern)
	return ok
}

// groupCount returns the number of capturing groups, group 0 excluded.
func groupCount(re *regexp2.Regexp) int {
	return len(re.GetGroupNumbers()) - 1
}
