package markup

import "github.com/microcosm-cc/bluemonday"

// SafeHTML accepts user supplied HTML and strips everything outside the user generated content policy.
type SafeHTML struct {
	policy *bluemonday.Policy
}

func NewSafeHTML() *SafeHTML {
	return &SafeHTML{policy: bluemonday.UGCPolicy()}
}

func (s *SafeHTML) Kind() Kind {
	return Custom
}

func (s *SafeHTML) Translate(text string) (string, error) {
	return s.policy.Sanitize(text), nil
}
