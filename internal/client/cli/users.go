package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/userkeeper/internal/client/api"
)

func newUsersCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts (requires a token)",
	}

	cmd.AddCommand(newUsersListCmd(o))
	cmd.AddCommand(newUsersUpdateCmd(o))
	cmd.AddCommand(newUsersDeleteCmd(o))

	return cmd
}

func newUsersListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := o.client().ListUsers(cmd.Context(), o.token)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL")
			for _, u := range list {
				fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Name, u.Email)
			}
			return w.Flush()
		},
	}
}

func newUsersUpdateCmd(o *options) *cobra.Command {
	var (
		req         api.UpdateRequest
		askPassword bool
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change name, email or password of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if askPassword && req.Password == "" {
				if req.Password, err = getPassword(cmd.ErrOrStderr()); err != nil {
					return err
				}
			}

			res, err := o.client().UpdateUser(cmd.Context(), o.token, id, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "new display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "new email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "new password")
	cmd.Flags().BoolVar(&askPassword, "ask-password", false, "prompt for the new password")

	return cmd
}

func newUsersDeleteCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete your own account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			msg, err := o.client().DeleteUser(cmd.Context(), o.token, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}
