package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders is the set of lowercase HTTP header names whose values are
// never logged. The HTTP middleware's RedactHeaders reads the same set.
// X-Caller is not here: the caller identity is public and is what operators
// search logs by.
var SensitiveHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"cookie":        true,
}

var (
	// redactedFields are attribute keys redacted in addition to the headers.
	redactedFields = []string{"password", "secret", "token"}

	// redactedPrefixes catch key variants such as secret_key or api_key_v2.
	redactedPrefixes = []string{"secret_", "api_key"}

	// redactedValues catch credentials that reach a log line as a raw value.
	redactedValues = []*regexp.Regexp{
		regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
		// JWT: three dot-separated segments of 10+ characters, so version
		// strings do not match.
		regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
		regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
	}
)

// newRedactAttr returns the masq ReplaceAttr function installed by New.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0,
		len(SensitiveHeaders)+len(redactedFields)+len(redactedPrefixes)+len(redactedValues))

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range redactedFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, p := range redactedPrefixes {
		opts = append(opts, masq.WithFieldPrefix(p))
	}
	for _, re := range redactedValues {
		opts = append(opts, masq.WithRegex(re))
	}

	return masq.New(opts...)
}
