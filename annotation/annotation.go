package annotation

import (
	"fmt"
	"strings"

	"github.com/google/go-github/v51/github"
)

const (
	startMarker = "<!-- bfa:start -->"
	endMarker   = "<!-- bfa:end -->"
)

// Info is the content of a failure cause annotation. Cause is already display markup.
type Info struct {
	Cause    string
	Host     string
	BuildURL string
}

// Build renders the annotation block, including its markers.
func Build(info Info) string {
	var sb strings.Builder
	sb.WriteString(startMarker)
	sb.WriteString("\n### Build failure cause\n")
	sb.WriteString(info.Cause)
	sb.WriteString("\n")

	var details []string
	if info.BuildURL != "" {
		details = append(details, fmt.Sprintf("[build](%s)", info.BuildURL))
	}
	if info.Host != "" {
		details = append(details, fmt.Sprintf("analyzed on `%s`", info.Host))
	}
	if len(details) > 0 {
		sb.WriteString("\n<sub>")
		sb.WriteString(strings.Join(details, " · "))
		sb.WriteString("</sub>\n")
	}

	sb.WriteString(endMarker)
	return sb.String()
}

// BuildUpdatedPullRequest replaces the annotation block of a pull request body, or appends one.
func BuildUpdatedPullRequest(body string, info Info) *github.PullRequest {
	block := Build(info)

	start := strings.Index(body, startMarker)
	end := -1
	if start >= 0 {
		if i := strings.Index(body[start:], endMarker); i >= 0 {
			end = start + i
		}
	}
	var updated string
	switch {
	case end >= 0:
		updated = body[:start] + block + body[end+len(endMarker):]
	case body == "":
		updated = block
	default:
		updated = strings.TrimRight(body, "\n") + "\n\n" + block
	}

	return &github.PullRequest{Body: &updated}
}
