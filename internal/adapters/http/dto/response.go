package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jsamuelsen11/clubstate/internal/domain/club"
)

// CountResponse is the body of get_count.
type CountResponse struct {
	Count int32 `json:"count"`
}

// XFactorResponse is the body of get_x_factor.
type XFactorResponse struct {
	XFactor int32 `json:"x_factor"`
}

// MembersOnlyCountResponse is the body of get_members_only_count.
type MembersOnlyCountResponse struct {
	MembersOnlyCount int32 `json:"members_only_count"`
}

// MemberListResponse is the body of get_member_list.
type MemberListResponse struct {
	MembersList []string `json:"members_list"`
}

// WaitingListResponse is the body of get_waiting_list.
type WaitingListResponse struct {
	WaitingList []string `json:"waiting_list"`
}

// ToAnswerResponse converts a domain answer to the response record for its
// query. Lists are always encoded as arrays, never null.
func ToAnswerResponse(a club.Answer) any {
	switch a.Kind {
	case club.QueryCount:
		return CountResponse{Count: a.Value}
	case club.QueryXFactor:
		return XFactorResponse{XFactor: a.Value}
	case club.QueryMembersOnlyCount:
		return MembersOnlyCountResponse{MembersOnlyCount: a.Value}
	case club.QueryMemberList:
		return MemberListResponse{MembersList: identities(a.Identities)}
	case club.QueryWaitingList:
		return WaitingListResponse{WaitingList: identities(a.Identities)}
	default:
		return nil
	}
}

func identities(ids []club.Identity) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// DecodeAnswer parses the response record for kind back into a domain answer.
func DecodeAnswer(kind club.QueryKind, body []byte) (club.Answer, error) {
	a := club.Answer{Kind: kind}

	var err error
	switch kind {
	case club.QueryCount:
		var r CountResponse
		err = decodeStrict(body, &r)
		a.Value = r.Count
	case club.QueryXFactor:
		var r XFactorResponse
		err = decodeStrict(body, &r)
		a.Value = r.XFactor
	case club.QueryMembersOnlyCount:
		var r MembersOnlyCountResponse
		err = decodeStrict(body, &r)
		a.Value = r.MembersOnlyCount
	case club.QueryMemberList:
		var r MemberListResponse
		err = decodeStrict(body, &r)
		a.Identities = toIdentities(r.MembersList)
	case club.QueryWaitingList:
		var r WaitingListResponse
		err = decodeStrict(body, &r)
		a.Identities = toIdentities(r.WaitingList)
	default:
		return club.Answer{}, fmt.Errorf("unknown query %q", kind)
	}
	if err != nil {
		return club.Answer{}, fmt.Errorf("decoding %s answer: %w", kind, err)
	}
	return a, nil
}

func decodeStrict(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func toIdentities(ids []string) []club.Identity {
	out := make([]club.Identity, len(ids))
	for i, id := range ids {
		out[i] = club.Identity(id)
	}
	return out
}
