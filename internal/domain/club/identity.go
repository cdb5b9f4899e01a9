// Package club holds the club state entity, its command catalog, and the
// per-command authorization rules. Everything here is pure: no I/O, no
// logging, no clocks. Persistence and transport live in the adapters.
package club

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jsamuelsen11/clubstate/internal/domain"
)

// Identity bounds. The upper bound matches the longest bech32 address.
const (
	minIdentityLen = 3
	maxIdentityLen = 90
)

// Identity is a validated caller address. Equality is exact string match.
type Identity string

// String implements fmt.Stringer.
func (id Identity) String() string {
	return string(id)
}

// ParseIdentity validates raw as a well-formed identity. The field name is
// used as the key of the returned *domain.ValidationError.
func ParseIdentity(field, raw string) (Identity, error) {
	if msg := identityProblem(raw); msg != "" {
		return "", &domain.ValidationError{Fields: map[string]string{field: msg}}
	}
	return Identity(raw), nil
}

// ParseIdentities validates every entry of raw. All problems are reported
// together, keyed as field[i].
func ParseIdentities(field string, raw []string) ([]Identity, error) {
	ids := make([]Identity, 0, len(raw))
	fields := make(map[string]string)
	for i, r := range raw {
		if msg := identityProblem(r); msg != "" {
			fields[fmt.Sprintf("%s[%d]", field, i)] = msg
			continue
		}
		ids = append(ids, Identity(r))
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	return ids, nil
}

func identityProblem(raw string) string {
	switch {
	case strings.TrimSpace(raw) == "":
		return "is required"
	case len(raw) < minIdentityLen || len(raw) > maxIdentityLen:
		return fmt.Sprintf("must be %d-%d characters, got %d", minIdentityLen, maxIdentityLen, len(raw))
	case strings.ToLower(raw) != raw:
		return "must be lowercase"
	}
	for _, r := range raw {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return fmt.Sprintf("invalid character %q", r)
		}
	}
	return ""
}

// hasX is the lexical authorization route: the identity's text contains 'x'.
func hasX(id Identity) bool {
	return strings.Contains(string(id), "x")
}

func contains(list []Identity, id Identity) bool {
	return slices.Contains(list, id)
}
