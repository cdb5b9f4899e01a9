package clubapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/clubstate/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 64 << 10

type problemDetail struct {
	Detail string        `json:"detail"`
	Errors []errorDetail `json:"errors"`
}

type errorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// TranslateHTTPError maps a problem+json response from the server back to
// the domain error the server started from, so callers can keep using
// errors.Is and errors.As. op names the command or query that was sent and
// becomes AuthorizationError.Command on a 403.
func TranslateHTTPError(resp *http.Response, op string) error {
	pd := parseProblemDetail(resp)

	detail := pd.Detail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		if len(pd.Errors) > 0 {
			return toValidationError(pd.Errors)
		}
		return &domain.ValidationError{Fields: map[string]string{"request": detail}}

	case resp.StatusCode == http.StatusForbidden:
		return &domain.AuthorizationError{Command: op, Reason: detail}

	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrUninitialized

	case resp.StatusCode == http.StatusConflict:
		return matchSentinel(detail, domain.ErrConflict, domain.ErrAlreadyInitialized, domain.ErrOverflow)

	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusGatewayTimeout:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)

	case resp.StatusCode >= http.StatusInternalServerError:
		return matchSentinel(detail, domain.ErrStorage, domain.ErrCorrupted)

	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// matchSentinel returns the first specific sentinel whose message appears in
// detail, or detail wrapped in fallback.
func matchSentinel(detail string, fallback error, specific ...error) error {
	for _, s := range specific {
		if strings.Contains(detail, s.Error()) {
			return s
		}
	}
	return fmt.Errorf("%s: %w", detail, fallback)
}

func parseProblemDetail(resp *http.Response) problemDetail {
	if resp.Body == nil {
		return problemDetail{}
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/problem+json") {
		return problemDetail{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return problemDetail{}
	}

	var pd problemDetail
	if err := json.Unmarshal(body, &pd); err != nil {
		return problemDetail{}
	}
	return pd
}

// toValidationError strips the "body." prefix the server adds to locations.
func toValidationError(details []errorDetail) *domain.ValidationError {
	fields := make(map[string]string, len(details))
	for _, d := range details {
		fields[strings.TrimPrefix(d.Location, "body.")] = d.Message
	}
	return &domain.ValidationError{Fields: fields}
}
