package club

import (
	"fmt"
	"slices"

	"github.com/jsamuelsen11/clubstate/internal/domain"
)

// QueryKind names a read-only query. Values match the original wire names.
type QueryKind string

const (
	QueryCount            QueryKind = "get_count"
	QueryXFactor          QueryKind = "get_x_factor"
	QueryMembersOnlyCount QueryKind = "get_members_only_count"
	QueryMemberList       QueryKind = "get_member_list"
	QueryWaitingList      QueryKind = "get_waiting_list"
)

// QueryKinds lists every query in catalog order.
var QueryKinds = []QueryKind{
	QueryCount,
	QueryXFactor,
	QueryMembersOnlyCount,
	QueryMemberList,
	QueryWaitingList,
}

// IsValid returns true if the kind is part of the query catalog.
func (k QueryKind) IsValid() bool {
	return slices.Contains(QueryKinds, k)
}

// String implements fmt.Stringer.
func (k QueryKind) String() string {
	return string(k)
}

// Answer is the result of a query. Scalar queries populate Value; roster
// queries populate Identities.
type Answer struct {
	Kind       QueryKind
	Value      int32
	Identities []Identity
}

// Read answers the query against s. Returned rosters are copies.
func Read(s State, kind QueryKind) (Answer, error) {
	a := Answer{Kind: kind}
	switch kind {
	case QueryCount:
		a.Value = s.Count
	case QueryXFactor:
		a.Value = s.XFactor
	case QueryMembersOnlyCount:
		a.Value = s.MembersOnlyCount
	case QueryMemberList:
		a.Identities = nonNil(s.Members)
	case QueryWaitingList:
		a.Identities = nonNil(s.WaitingList)
	default:
		return Answer{}, &domain.ValidationError{
			Fields: map[string]string{"query": fmt.Sprintf("unknown: %q", kind)},
		}
	}
	return a, nil
}

func nonNil(ids []Identity) []Identity {
	if ids == nil {
		return []Identity{}
	}
	return slices.Clone(ids)
}
