package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type credentials struct {
	name     string
	email    string
	password string
}

func newRegisterCmd(o *options) *cobra.Command {
	in := &credentials{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := o.text(cmd, in.name, "Enter name")
			if err != nil {
				return err
			}
			email, err := o.text(cmd, in.email, "Enter email")
			if err != nil {
				return err
			}
			password, err := o.password(cmd, in.password)
			if err != nil {
				return err
			}

			msg, err := o.client().Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.name, "name", "", "display name")
	cmd.Flags().StringVar(&in.email, "email", "", "email address")
	cmd.Flags().StringVar(&in.password, "password", "", "password (prompted when empty)")

	return cmd
}

// newLoginCmd prints only the token on stdout so it can be captured with
// export USERKEEPER_TOKEN=$(userkeeper login ...).
func newLoginCmd(o *options) *cobra.Command {
	in := &credentials{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain a bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := o.text(cmd, in.email, "Enter email")
			if err != nil {
				return err
			}
			password, err := o.password(cmd, in.password)
			if err != nil {
				return err
			}

			token, err := o.client().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.email, "email", "", "email address")
	cmd.Flags().StringVar(&in.password, "password", "", "password (prompted when empty)")

	return cmd
}
