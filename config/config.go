package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/guidograzioli/build-failure-analyzer-plugin/markup"
)

// Settings is the on-disk configuration. Every field is optional.
type Settings struct {
	RootURL         string   `yaml:"root_url"`
	MarkupFormatter string   `yaml:"markup_formatter"`
	Autolink        Autolink `yaml:"autolink"`
}

type Autolink struct {
	Pattern      string        `yaml:"pattern"`
	URL          string        `yaml:"url"`
	MatchTimeout time.Duration `yaml:"match_timeout"`
}

// Load reads settings from a YAML file. An empty path yields empty settings.
func Load(path string) (*Settings, error) {
	s := &Settings{}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	return s, nil
}

// Merge overrides s with every non-empty field of other.
func (s *Settings) Merge(other Settings) {
	if other.RootURL != "" {
		s.RootURL = other.RootURL
	}
	if other.MarkupFormatter != "" {
		s.MarkupFormatter = other.MarkupFormatter
	}
	if other.Autolink.Pattern != "" {
		s.Autolink.Pattern = other.Autolink.Pattern
	}
	if other.Autolink.URL != "" {
		s.Autolink.URL = other.Autolink.URL
	}
	if other.Autolink.MatchTimeout != 0 {
		s.Autolink.MatchTimeout = other.Autolink.MatchTimeout
	}
}

// Environment resolves the settings into the capabilities the hostname and
// autolink packages read at call time. The formatter is resolved once here.
func (s *Settings) Environment() (*Environment, error) {
	formatter, err := markup.New(s.MarkupFormatter)
	if err != nil {
		return nil, err
	}

	return &Environment{
		rootURL:      s.RootURL,
		formatter:    formatter,
		pattern:      s.Autolink.Pattern,
		url:          s.Autolink.URL,
		matchTimeout: s.Autolink.MatchTimeout,
	}, nil
}

// Environment is immutable once built and safe for concurrent use.
type Environment struct {
	rootURL      string
	formatter    markup.Formatter
	pattern      string
	url          string
	matchTimeout time.Duration
}

func (e *Environment) RootURL() (string, bool) {
	return e.rootURL, e.rootURL != ""
}

func (e *Environment) MarkupFormatter() markup.Formatter {
	return e.formatter
}

func (e *Environment) AutolinkPattern() string {
	return e.pattern
}

func (e *Environment) AutolinkURL() string {
	return e.url
}

// MatchTimeout is zero when the settings leave the autolink default in place.
func (e *Environment) MatchTimeout() time.Duration {
	return e.matchTimeout
}
