package middleware

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/clubstate/internal/platform/logging"
)

const redacted = "[REDACTED]"

// RedactHeaders turns request headers into log attributes sorted by name.
// Values of logging.SensitiveHeaders become "[REDACTED]"; multi-value headers
// are joined with a comma.
func RedactHeaders(headers http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(headers))
	for _, key := range slices.Sorted(maps.Keys(headers)) {
		val := strings.Join(headers[key], ",")
		if logging.SensitiveHeaders[strings.ToLower(key)] {
			val = redacted
		}
		attrs = append(attrs, slog.String(key, val))
	}
	return attrs
}
