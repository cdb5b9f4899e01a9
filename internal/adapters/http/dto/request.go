package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jsamuelsen11/clubstate/internal/domain"
	"github.com/jsamuelsen11/clubstate/internal/domain/club"
)

const (
	msgRequired   = "is required"
	msgOneVariant = "must contain exactly one command"
)

// InstantiateRequest represents the JSON body for creating the club record.
// A missing members_list means "seed with the caller"; an explicit empty list
// is rejected by the domain.
type InstantiateRequest struct {
	Count       *int32   `json:"count"`
	XFactor     *int32   `json:"x_factor"`
	MembersList []string `json:"members_list"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *InstantiateRequest) Validate() error {
	fields := make(map[string]string)

	if r.Count == nil {
		fields["count"] = msgRequired
	}
	if r.XFactor == nil {
		fields["x_factor"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Params maps the request onto domain instantiation parameters.
// Call Validate first.
func (r *InstantiateRequest) Params() club.InstantiateParams {
	p := club.InstantiateParams{Members: r.MembersList}
	if r.Count != nil {
		p.Count = *r.Count
	}
	if r.XFactor != nil {
		p.XFactor = *r.XFactor
	}
	return p
}

// ExecuteRequest is an externally tagged command: a JSON object with exactly
// one key naming the command and an object payload, e.g. {"reset":{"count":5}}.
type ExecuteRequest map[string]json.RawMessage

type prospectPayload struct {
	Prospect *string `json:"prospect"`
}

type countPayload struct {
	Count *int32 `json:"count"`
}

type xFactorPayload struct {
	XFactor *int32 `json:"x_factor"`
}

// Command decodes the request into a domain command. The command's own
// arguments are checked by the domain when it is applied.
func (r ExecuteRequest) Command() (club.Command, error) {
	name, payload, err := singleVariant(r)
	if err != nil {
		return club.Command{}, err
	}

	kind := club.CommandKind(name)
	if !kind.IsValid() {
		return club.Command{}, &domain.ValidationError{
			Fields: map[string]string{"command": fmt.Sprintf("unknown command %q", name)},
		}
	}

	switch kind {
	case club.KindAddMemberToClub:
		var p prospectPayload
		if err := decodePayload(name, payload, &p); err != nil {
			return club.Command{}, err
		}
		if p.Prospect == nil {
			return club.Command{}, missing(name + ".prospect")
		}
		return club.AddMemberToClub(club.Identity(*p.Prospect)), nil
	case club.KindReset:
		var p countPayload
		if err := decodePayload(name, payload, &p); err != nil {
			return club.Command{}, err
		}
		if p.Count == nil {
			return club.Command{}, missing(name + ".count")
		}
		return club.Reset(*p.Count), nil
	case club.KindResetXFactor:
		var p xFactorPayload
		if err := decodePayload(name, payload, &p); err != nil {
			return club.Command{}, err
		}
		if p.XFactor == nil {
			return club.Command{}, missing(name + ".x_factor")
		}
		return club.ResetXFactor(*p.XFactor), nil
	default:
		if err := decodePayload(name, payload, &struct{}{}); err != nil {
			return club.Command{}, err
		}
		return club.Command{Kind: kind}, nil
	}
}

// NewExecuteRequest encodes cmd in the externally tagged form accepted by
// ExecuteRequest.Command.
func NewExecuteRequest(cmd club.Command) (ExecuteRequest, error) {
	var payload any = struct{}{}
	switch cmd.Kind {
	case club.KindAddMemberToClub:
		prospect := cmd.Prospect.String()
		payload = prospectPayload{Prospect: &prospect}
	case club.KindReset:
		payload = countPayload{Count: &cmd.Count}
	case club.KindResetXFactor:
		payload = xFactorPayload{XFactor: &cmd.XFactor}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", cmd.Kind, err)
	}
	return ExecuteRequest{cmd.Kind.String(): raw}, nil
}

// QueryRequest is an externally tagged query, e.g. {"get_count":{}}.
type QueryRequest map[string]json.RawMessage

// Query decodes the request into a domain query kind.
func (r QueryRequest) Query() (club.QueryKind, error) {
	name, payload, err := singleVariant(r)
	if err != nil {
		return "", err
	}

	kind := club.QueryKind(name)
	if !kind.IsValid() {
		return "", &domain.ValidationError{
			Fields: map[string]string{"query": fmt.Sprintf("unknown query %q", name)},
		}
	}
	if err := decodePayload(name, payload, &struct{}{}); err != nil {
		return "", err
	}
	return kind, nil
}

func singleVariant(m map[string]json.RawMessage) (string, json.RawMessage, error) {
	if len(m) != 1 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		msg := msgOneVariant
		if len(keys) > 0 {
			msg += ", got " + strings.Join(keys, ", ")
		}
		return "", nil, &domain.ValidationError{Fields: map[string]string{"body": msg}}
	}
	for name, payload := range m {
		return name, payload, nil
	}
	panic("unreachable")
}

// decodePayload strictly decodes a variant payload. The payload must be a
// JSON object.
func decodePayload(name string, payload json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &domain.ValidationError{Fields: map[string]string{name: "payload must be a JSON object"}}
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &domain.ValidationError{Fields: map[string]string{name: "invalid payload: " + err.Error()}}
	}
	return nil
}

func missing(field string) error {
	return &domain.ValidationError{Fields: map[string]string{field: msgRequired}}
}
