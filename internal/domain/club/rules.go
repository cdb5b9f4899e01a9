package club

import (
	"fmt"
	"math"

	"github.com/jsamuelsen11/clubstate/internal/domain"
)

// predicate gates a command. It sees the caller and the pre-mutation state.
type predicate func(caller Identity, s *State) bool

// mutation applies a command's effect to a private copy of the state.
type mutation func(s *State, caller Identity, cmd Command) error

// rule pairs a command's authorization predicate with its mutation.
type rule struct {
	allow  predicate
	denied string // reason reported when allow returns false
	apply  mutation
	done   string // success message for the debug log
}

var rules = map[CommandKind]rule{
	KindIncrement: {
		allow: anyone,
		apply: func(s *State, _ Identity, _ Command) error {
			return increment(&s.Count, "count")
		},
		done: "count incremented successfully",
	},
	KindIncrementXFactor: {
		allow:  func(caller Identity, _ *State) bool { return hasX(caller) },
		denied: "You need an x in your address to increment count",
		apply: func(s *State, _ Identity, _ Command) error {
			return increment(&s.XFactor, "x_factor")
		},
		done: "x factor incremented successfully",
	},
	KindIncrementMembersOnlyCount: {
		allow:  member,
		denied: "You need to be on the members list to increment count",
		apply: func(s *State, _ Identity, _ Command) error {
			return increment(&s.MembersOnlyCount, "members_only_count")
		},
		done: "Members only count incremented successfully",
	},
	KindResetMembersOnlyCount: {
		allow:  member,
		denied: "You need to be on the members list to reset this count",
		apply: func(s *State, _ Identity, _ Command) error {
			s.MembersOnlyCount = 0
			return nil
		},
		done: "Members only count reset successfully",
	},
	KindAddMeToWaitingList: {
		allow: func(caller Identity, s *State) bool {
			return !s.IsMember(caller) && !s.IsWaiting(caller)
		},
		denied: "You are already part of the waiting list or members list!",
		apply: func(s *State, caller Identity, _ Command) error {
			s.WaitingList = append(s.WaitingList, caller)
			return nil
		},
		done: "You have been added to the waiting list!",
	},
	KindAddMemberToClub: {
		allow:  member,
		denied: "Only club members can add a new member!",
		apply: func(s *State, _ Identity, cmd Command) error {
			s.Members = append(s.Members, cmd.Prospect)
			return nil
		},
		done: "Member added to club",
	},
	KindAddWaitingListToClub: {
		allow:  member,
		denied: "Only club members can do this action!",
		apply: func(s *State, _ Identity, _ Command) error {
			s.Members = append(s.Members, s.WaitingList...)
			s.WaitingList = []Identity{}
			return nil
		},
		done: "Waiting list added to club.",
	},
	// Owner AND NOT member, kept exactly as the original contract wrote it.
	// An owner seeded onto the roster at instantiation can never reset.
	KindReset: {
		allow: func(caller Identity, s *State) bool {
			return caller == s.Owner && !s.IsMember(caller)
		},
		denied: "Only the owner can reset count",
		apply: func(s *State, _ Identity, cmd Command) error {
			s.Count = cmd.Count
			return nil
		},
		done: "count reset successfully",
	},
	// Two independent routes: the lexical one and the membership one.
	KindResetXFactor: {
		allow: func(caller Identity, s *State) bool {
			return hasX(caller) || s.IsMember(caller)
		},
		denied: "You need an x in your address to reset count",
		apply: func(s *State, _ Identity, cmd Command) error {
			s.XFactor = cmd.XFactor
			return nil
		},
		done: "X factor reset successfully",
	},
}

func anyone(Identity, *State) bool { return true }

func member(caller Identity, s *State) bool { return s.IsMember(caller) }

func increment(v *int32, field string) error {
	if *v == math.MaxInt32 {
		return fmt.Errorf("%w: %s", domain.ErrOverflow, field)
	}
	*v++
	return nil
}

// Apply authorizes cmd for caller against s and returns the next state.
// The predicate is evaluated on s before any mutation; s itself is never
// modified, so a failed command leaves the caller's snapshot intact.
func Apply(s State, caller Identity, cmd Command) (State, error) {
	if err := cmd.Validate(); err != nil {
		return State{}, err
	}
	r := rules[cmd.Kind]

	if !r.allow(caller, &s) {
		return State{}, &domain.AuthorizationError{Command: cmd.Kind.String(), Reason: r.denied}
	}

	next := s.Clone()
	if err := r.apply(&next, caller, cmd); err != nil {
		return State{}, err
	}
	return next, nil
}

// SuccessMessage returns the human-readable acknowledgment logged after a
// command of the given kind commits.
func SuccessMessage(kind CommandKind) string {
	return rules[kind].done
}
