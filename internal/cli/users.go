package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"blogdesk/internal/models"
)

// Execute implements the go-flags Commander interface for CreateUserCommand.
func (c *CreateUserCommand) Execute(args []string) error {
	ctx := context.Background()
	b, done, err := open(ctx, c.backend)
	if err != nil {
		return err
	}
	defer done()

	user, err := b.auth.CreateUser(ctx, c.Email, c.Password, c.Name, models.Role(c.Role))
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(user)
	}
	fmt.Printf("Created %s %s (%s)\n", user.Role, user.Email, user.ID)
	return nil
}

// Execute implements the go-flags Commander interface for ListUsersCommand.
func (c *ListUsersCommand) Execute(args []string) error {
	ctx := context.Background()
	b, done, err := open(ctx, c.backend)
	if err != nil {
		return err
	}
	defer done()

	users, err := b.auth.ListUsers(ctx)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		if users == nil {
			users = []models.User{}
		}
		return printJSON(users)
	}
	if len(users) == 0 {
		fmt.Println("No users")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tNAME\tROLE\t2FA\tCREATED")
	for _, u := range users {
		twoFA := "off"
		if u.TOTPEnabled {
			twoFA = "on"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.Email, u.DisplayName, u.Role, twoFA, u.CreatedAt.Local().Format(time.DateOnly))
	}
	return w.Flush()
}

// Execute implements the go-flags Commander interface for ResetTwoFACommand.
func (c *ResetTwoFACommand) Execute(args []string) error {
	ctx := context.Background()
	b, done, err := open(ctx, c.backend)
	if err != nil {
		return err
	}
	defer done()

	if err := b.auth.ResetTOTP(ctx, c.Email); err != nil {
		return err
	}
	fmt.Printf("Two-factor authentication reset for %s\n", c.Email)
	return nil
}
