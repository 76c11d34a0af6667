package hostname

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticRootURL struct {
	url string
	set bool
}

func (s staticRootURL) RootURL() (string, bool) {
	return s.url, s.set
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestResolve(t *testing.T) {
	testCases := []struct {
		name       string
		provider   staticRootURL
		expected   string
		expectedOK bool
	}{
		{
			name:       "https root url",
			provider:   staticRootURL{url: "https://jenkins.example.com/", set: true},
			expected:   "jenkins.example.com",
			expectedOK: true,
		},
		{
			name:       "port and context path",
			provider:   staticRootURL{url: "http://ci.example.com:8080/jenkins/", set: true},
			expected:   "ci.example.com",
			expectedOK: true,
		},
		{
			name:       "ipv6 host",
			provider:   staticRootURL{url: "http://[::1]:8080/", set: true},
			expected:   "::1",
			expectedOK: true,
		},
		{
			name:       "empty host",
			provider:   staticRootURL{url: "file:///var/lib/ci", set: true},
			expected:   "",
			expectedOK: true,
		},
		{
			name:       "not configured",
			provider:   staticRootURL{},
			expectedOK: false,
		},
		{
			name:       "missing scheme",
			provider:   staticRootURL{url: "jenkins.example.com", set: true},
			expectedOK: false,
		},
		{
			name:       "host and port without scheme",
			provider:   staticRootURL{url: "jenkins.example.com:8080", set: true},
			expectedOK: false,
		},
		{
			name:       "host, port and path without scheme",
			provider:   staticRootURL{url: "localhost:8080/jenkins/", set: true},
			expectedOK: false,
		},
		{
			name:       "malformed",
			provider:   staticRootURL{url: "http://[::1", set: true},
			expectedOK: false,
		},
		{
			name:       "invalid host character",
			provider:   staticRootURL{url: "http://a b.com/", set: true},
			expectedOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureLogs(t)

			host, ok := Resolve(tc.provider)

			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expected, host)
			if tc.expectedOK {
				assert.Empty(t, logs.String())
			} else {
				assert.Contains(t, logs.String(), "level=WARN")
			}
		})
	}
}

func TestResolveNotConfiguredLogsReason(t *testing.T) {
	logs := captureLogs(t)

	_, ok := Resolve(staticRootURL{})

	assert.False(t, ok)
	assert.Contains(t, logs.String(), "root url is not configured")
}

func TestParse(t *testing.T) {
	host, err := Parse("https://build.example.org/job/x/")
	assert.NoError(t, err)
	assert.Equal(t, "build.example.org", host)

	_, err = Parse("://nope")
	assert.Error(t, err)

	_, err = Parse("nope")
	assert.ErrorIs(t, err, errNoScheme)

	_, err = Parse("build.example.org:8443")
	assert.ErrorIs(t, err, errNoScheme)
}
