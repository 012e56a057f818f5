package cli

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/userkeeper/internal/client/api"
)

const (
	defaultServer = "http://localhost:5000"
	tokenEnv      = "USERKEEPER_TOKEN"
)

// options are the global flags shared by all subcommands.
type options struct {
	server string
	token  string
	reader *bufio.Reader
}

func (o *options) client() *api.Client {
	return api.New(o.server)
}

// password returns flagValue when set, otherwise prompts on the terminal.
func (o *options) password(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return getPassword(cmd.ErrOrStderr())
}

// text returns flagValue when set, otherwise reads a line from stdin.
func (o *options) text(cmd *cobra.Command, flagValue, prompt string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return getSimpleText(o.reader, prompt, cmd.ErrOrStderr())
}

// getSimpleText and getPassword point to the interactive helpers and are
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// NewRootCmd creates the root command for the userkeeper client.
func NewRootCmd() *cobra.Command {
	o := &options{reader: bufio.NewReader(os.Stdin)}

	cmd := &cobra.Command{
		Use:           "userkeeper",
		Short:         "userkeeper - client for the userkeeper identity service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&o.server, "server", defaultServer, "server base URL")
	cmd.PersistentFlags().StringVar(&o.token, "token", os.Getenv(tokenEnv), "bearer token (default $"+tokenEnv+")")

	cmd.AddCommand(newRegisterCmd(o))
	cmd.AddCommand(newLoginCmd(o))
	cmd.AddCommand(newUsersCmd(o))

	return cmd
}
