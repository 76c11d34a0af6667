package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidograzioli/build-failure-analyzer-plugin/markup"
)

const sampleConfig = `
root_url: https://jenkins.example.com/
markup_formatter: markdown
autolink:
  pattern: '.*?([A-Z]+-\d+)'
  url: https://issues.example.com/browse/$1
  match_timeout: 250ms
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bfa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	s, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "https://jenkins.example.com/", s.RootURL)
	assert.Equal(t, "markdown", s.MarkupFormatter)
	assert.Equal(t, `.*?([A-Z]+-\d+)`, s.Autolink.Pattern)
	assert.Equal(t, "https://issues.example.com/browse/$1", s.Autolink.URL)
	assert.Equal(t, 250*time.Millisecond, s.Autolink.MatchTimeout)
}

func TestLoadEmptyPath(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, s)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "root_url: [unterminated"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	s := Settings{
		RootURL:         "https://file.example.com/",
		MarkupFormatter: "markdown",
		Autolink:        Autolink{Pattern: "a", URL: "u", MatchTimeout: time.Second},
	}

	s.Merge(Settings{RootURL: "https://flag.example.com/", Autolink: Autolink{Pattern: "b"}})

	assert.Equal(t, Settings{
		RootURL:         "https://flag.example.com/",
		MarkupFormatter: "markdown",
		Autolink:        Autolink{Pattern: "b", URL: "u", MatchTimeout: time.Second},
	}, s)
}

func TestEnvironment(t *testing.T) {
	s := Settings{
		RootURL:  "https://jenkins.example.com/",
		Autolink: Autolink{Pattern: "p", URL: "u", MatchTimeout: 2 * time.Second},
	}

	env, err := s.Environment()
	require.NoError(t, err)

	rootURL, ok := env.RootURL()
	assert.True(t, ok)
	assert.Equal(t, "https://jenkins.example.com/", rootURL)
	assert.Equal(t, markup.EscapingOnly, env.MarkupFormatter().Kind())
	assert.Equal(t, "p", env.AutolinkPattern())
	assert.Equal(t, "u", env.AutolinkURL())
	assert.Equal(t, 2*time.Second, env.MatchTimeout())

	empty, err := (&Settings{}).Environment()
	require.NoError(t, err)
	_, ok = empty.RootURL()
	assert.False(t, ok)
}

func TestEnvironmentUnknownFormatter(t *testing.T) {
	_, err := (&Settings{MarkupFormatter: "wiki"}).Environment()
	assert.ErrorIs(t, err, markup.ErrUnknownFormatter)
}
