package club

import (
	"slices"

	"github.com/jsamuelsen11/clubstate/internal/domain"
)

// State is the single persisted club record.
type State struct {
	Count            int32
	XFactor          int32
	MembersOnlyCount int32
	Owner            Identity
	Members          []Identity
	WaitingList      []Identity
}

// Clone returns a deep copy so that a mutation never aliases the rosters of
// the snapshot it was derived from.
func (s State) Clone() State {
	s.Members = slices.Clone(s.Members)
	s.WaitingList = slices.Clone(s.WaitingList)
	return s
}

// IsMember reports whether id is on the members list.
func (s *State) IsMember(id Identity) bool {
	return contains(s.Members, id)
}

// IsWaiting reports whether id is on the waiting list.
func (s *State) IsWaiting(id Identity) bool {
	return contains(s.WaitingList, id)
}

// InstantiateParams carries the raw instantiation input. A nil Members
// slice means the list was omitted.
type InstantiateParams struct {
	Count   int32
	XFactor int32
	Members []string
}

// New builds the initial state for the given creator. Every supplied member
// is validated; an omitted list seeds the roster with the creator alone.
func New(creator Identity, p InstantiateParams) (State, error) {
	members := []Identity{creator}
	if p.Members != nil {
		if len(p.Members) == 0 {
			return State{}, &domain.ValidationError{
				Fields: map[string]string{"members_list": "must not be empty when provided"},
			}
		}
		ids, err := ParseIdentities("members_list", p.Members)
		if err != nil {
			return State{}, err
		}
		members = ids
	}

	return State{
		Count:            p.Count,
		XFactor:          p.XFactor,
		MembersOnlyCount: 0,
		Owner:            creator,
		Members:          members,
		WaitingList:      []Identity{},
	}, nil
}
