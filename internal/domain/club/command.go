package club

import (
	"fmt"

	"github.com/jsamuelsen11/clubstate/internal/domain"
)

// CommandKind names an execute command. Values match the snake_case wire
// names of the original message catalog.
type CommandKind string

const (
	KindIncrement                 CommandKind = "increment"
	KindIncrementXFactor          CommandKind = "increment_x_factor"
	KindIncrementMembersOnlyCount CommandKind = "increment_members_only_count"
	KindResetMembersOnlyCount     CommandKind = "reset_members_only_count"
	KindAddMeToWaitingList        CommandKind = "add_me_to_waiting_list"
	KindAddMemberToClub           CommandKind = "add_member_to_club"
	KindAddWaitingListToClub      CommandKind = "add_waiting_list_to_club"
	KindReset                     CommandKind = "reset"
	KindResetXFactor              CommandKind = "reset_x_factor"
)

// CommandKinds lists every command in catalog order.
var CommandKinds = []CommandKind{
	KindIncrement,
	KindIncrementXFactor,
	KindIncrementMembersOnlyCount,
	KindResetMembersOnlyCount,
	KindAddMeToWaitingList,
	KindAddMemberToClub,
	KindAddWaitingListToClub,
	KindReset,
	KindResetXFactor,
}

// IsValid returns true if the kind is part of the command catalog.
func (k CommandKind) IsValid() bool {
	_, ok := rules[k]
	return ok
}

// String implements fmt.Stringer.
func (k CommandKind) String() string {
	return string(k)
}

// Command is a tagged union: Kind selects the variant and only the fields
// that variant declares are meaningful.
type Command struct {
	Kind     CommandKind
	Prospect Identity // add_member_to_club
	Count    int32    // reset
	XFactor  int32    // reset_x_factor
}

func Increment() Command                 { return Command{Kind: KindIncrement} }
func IncrementXFactor() Command          { return Command{Kind: KindIncrementXFactor} }
func IncrementMembersOnlyCount() Command { return Command{Kind: KindIncrementMembersOnlyCount} }
func ResetMembersOnlyCount() Command     { return Command{Kind: KindResetMembersOnlyCount} }
func AddMeToWaitingList() Command        { return Command{Kind: KindAddMeToWaitingList} }
func AddWaitingListToClub() Command      { return Command{Kind: KindAddWaitingListToClub} }

func AddMemberToClub(prospect Identity) Command {
	return Command{Kind: KindAddMemberToClub, Prospect: prospect}
}

func Reset(count int32) Command {
	return Command{Kind: KindReset, Count: count}
}

func ResetXFactor(xFactor int32) Command {
	return Command{Kind: KindResetXFactor, XFactor: xFactor}
}

// Validate checks the command's kind and arguments.
// Returns a *domain.ValidationError if any checks fail.
func (c Command) Validate() error {
	if !c.Kind.IsValid() {
		return &domain.ValidationError{
			Fields: map[string]string{"command": fmt.Sprintf("unknown: %q", c.Kind)},
		}
	}
	if c.Kind == KindAddMemberToClub {
		if _, err := ParseIdentity("prospect", string(c.Prospect)); err != nil {
			return err
		}
	}
	return nil
}
