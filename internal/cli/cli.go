// Package cli implements blogdeskctl, the operator command line for
// migrations, seeding, account management and analytics summaries. It
// reads the same environment configuration as the API server.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Migrate    *MigrateCommand
	Seed       *SeedCommand
	CreateUser *CreateUserCommand
	ListUsers  *ListUsersCommand
	ResetTwoFA *ResetTwoFACommand
	Stats      *StatsCommand
	Version    *VersionCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "blogdeskctl"
	parser.LongDescription = "Operator tools for the blogdesk content API."

	cmds := &commands{
		Migrate:    &MigrateCommand{globals: &globals},
		Seed:       &SeedCommand{globals: &globals},
		CreateUser: &CreateUserCommand{globals: &globals},
		ListUsers:  &ListUsersCommand{globals: &globals},
		ResetTwoFA: &ResetTwoFACommand{globals: &globals},
		Stats:      &StatsCommand{globals: &globals},
		Version:    &VersionCommand{globals: &globals, version: version},
	}

	parser.AddCommand("migrate", "Apply database migrations", "Apply all pending PostgreSQL migrations and print the schema version.", cmds.Migrate)
	parser.AddCommand("seed", "Create the first admin and default categories", "Create an admin account when no users exist, then the default categories.", cmds.Seed)
	parser.AddCommand("create-user", "Add an admin or editor account", "Add an admin or editor account with a bcrypt-hashed password.", cmds.CreateUser)
	parser.AddCommand("list-users", "List accounts", "List every account with its role and two-factor status.", cmds.ListUsers)
	parser.AddCommand("reset-2fa", "Turn off two-factor authentication for an account", "Clear the TOTP secret of an account whose authenticator was lost.", cmds.ResetTwoFA)
	parser.AddCommand("stats", "Show page analytics", "Show visit counts and time-on-page per page, or totals for one page.", cmds.Stats)
	parser.AddCommand("version", "Print the version", "Print the blogdeskctl version.", cmds.Version)

	return parser, &globals, cmds
}

// Run is the main entry point for blogdeskctl using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// go-flags requires a subcommand, but --version is valid without one.
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("blogdeskctl %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		var flagsErr *goflags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == goflags.ErrHelp {
			return nil
		}
		return err
	}
	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Execute implements the go-flags Commander interface for VersionCommand.
func (c *VersionCommand) Execute(args []string) error {
	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]string{"version": c.version})
	}
	fmt.Printf("blogdeskctl %s\n", c.version)
	return nil
}
