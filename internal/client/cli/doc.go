// Package cli provides the userkeeper command-line client.
//
// Commands:
//   - register: create an account
//   - login: print a bearer token for later commands
//   - users list / update ID / delete ID: manage accounts with a token
//
// The token comes from --token or the USERKEEPER_TOKEN environment variable.
// Passwords not given by flag are read from the terminal without echo.
package cli
