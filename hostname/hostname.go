package hostname

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
)

// RootURLProvider exposes the configured root URL of the CI instance.
// The boolean is false when no root URL is configured.
type RootURLProvider interface {
	RootURL() (string, bool)
}

var errNoScheme = errors.New("missing protocol")

// Resolve returns the host name of the configured root URL.
// A missing or malformed root URL is logged and reported as false.
func Resolve(provider RootURLProvider) (string, bool) {
	rootURL, ok := provider.RootURL()
	if !ok {
		slog.Warn("Couldn't get host name: root url is not configured")
		return "", false
	}

	host, err := Parse(rootURL)
	if err != nil {
		slog.Warn("Couldn't get host name", "root_url", rootURL, "error", err)
		return "", false
	}

	return host, true
}

// Parse extracts the host component of an absolute URL. Ports and IPv6 brackets are stripped.
func Parse(rootURL string) (string, error) {
	u, err := url.Parse(rootURL)
	if err != nil {
		return "", fmt.Errorf("error parsing root url: %w", err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("error parsing root url %q: %w", rootURL, errNoScheme)
	}
	// "host:8080" parses as scheme "host" with opaque data
	if u.Opaque != "" && u.Host == "" {
		return "", fmt.Errorf("error parsing root url %q: %w", rootURL, errNoScheme)
	}

	return u.Hostname(), nil
}
