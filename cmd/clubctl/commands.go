package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jsamuelsen11/clubstate/internal/adapters/http/dto"
	"github.com/jsamuelsen11/clubstate/internal/domain/club"
)

func newInstantiateCmd(opts *globalOptions) *cobra.Command {
	var (
		count   int32
		xFactor int32
		members []string
	)

	cmd := &cobra.Command{
		Use:   "instantiate",
		Short: "Create the club record with the caller as owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			caller, err := opts.requireCaller()
			if err != nil {
				return err
			}

			params := club.InstantiateParams{Count: count, XFactor: xFactor}
			if cmd.Flags().Changed("member") {
				params.Members = members
			}

			return withSession(cmd, opts, func(s *session) error {
				if err := s.svc.Instantiate(cmd.Context(), caller, params); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "instantiated with owner %s\n", caller)
				return nil
			})
		},
	}

	cmd.Flags().Int32Var(&count, "count", 0, "initial count")
	cmd.Flags().Int32Var(&xFactor, "x-factor", 0, "initial x factor")
	cmd.Flags().StringArrayVar(&members, "member", nil, "initial member (repeatable); defaults to the caller")
	_ = cmd.MarkFlagRequired("count")
	_ = cmd.MarkFlagRequired("x-factor")
	return cmd
}

func newExecuteCmd(opts *globalOptions) *cobra.Command {
	var (
		prospect string
		count    int32
		xFactor  int32
	)

	kinds := make([]string, len(club.CommandKinds))
	for i, k := range club.CommandKinds {
		kinds[i] = k.String()
	}

	cmd := &cobra.Command{
		Use:       "execute <command>",
		Short:     "Run one command on behalf of the caller",
		Long:      "Run one command on behalf of the caller.\n\nCommands: " + strings.Join(kinds, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := opts.requireCaller()
			if err != nil {
				return err
			}

			c, err := buildCommand(club.CommandKind(args[0]), cmd.Flags(), prospect, count, xFactor)
			if err != nil {
				return err
			}

			return withSession(cmd, opts, func(s *session) error {
				if err := s.svc.Execute(cmd.Context(), caller, c); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), club.SuccessMessage(c.Kind))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&prospect, "prospect", "", "identity to admit (add_member_to_club)")
	cmd.Flags().Int32Var(&count, "count", 0, "new count (reset)")
	cmd.Flags().Int32Var(&xFactor, "x-factor", 0, "new x factor (reset_x_factor)")
	return cmd
}

// buildCommand maps a command name and its flags onto a club.Command. Each
// argument flag is required by exactly one command and rejected by the rest.
func buildCommand(kind club.CommandKind, flags *pflag.FlagSet, prospect string, count, xFactor int32) (club.Command, error) {
	if !kind.IsValid() {
		return club.Command{}, fmt.Errorf("unknown command %q", kind)
	}

	owners := map[string]club.CommandKind{
		"prospect": club.KindAddMemberToClub,
		"count":    club.KindReset,
		"x-factor": club.KindResetXFactor,
	}
	for flag, owner := range owners {
		switch {
		case kind == owner && !flags.Changed(flag):
			return club.Command{}, fmt.Errorf("%s requires --%s", kind, flag)
		case kind != owner && flags.Changed(flag):
			return club.Command{}, fmt.Errorf("--%s does not apply to %s", flag, kind)
		}
	}

	switch kind {
	case club.KindAddMemberToClub:
		return club.AddMemberToClub(club.Identity(prospect)), nil
	case club.KindReset:
		return club.Reset(count), nil
	case club.KindResetXFactor:
		return club.ResetXFactor(xFactor), nil
	default:
		return club.Command{Kind: kind}, nil
	}
}

func newQueryCmd(opts *globalOptions) *cobra.Command {
	kinds := make([]string, len(club.QueryKinds))
	for i, k := range club.QueryKinds {
		kinds[i] = k.String()
	}

	return &cobra.Command{
		Use:       "query <query>",
		Short:     "Print a query's response record as JSON",
		Long:      "Print a query's response record as JSON.\n\nQueries: " + strings.Join(kinds, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := club.QueryKind(args[0])
			if !kind.IsValid() {
				return fmt.Errorf("unknown query %q", kind)
			}

			return withSession(cmd, opts, func(s *session) error {
				a, err := s.svc.Query(cmd.Context(), kind)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.ToAnswerResponse(a))
			})
		},
	}
}
