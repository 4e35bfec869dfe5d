package cli

import (
	"context"
	"fmt"

	"blogdesk/internal/database"
	"blogdesk/internal/models"
	"blogdesk/internal/service"
)

type seedJSON struct {
	AdminCreated      bool `json:"admin_created"`
	CategoriesCreated int  `json:"categories_created"`
}

// Execute implements the go-flags Commander interface for SeedCommand.
func (c *SeedCommand) Execute(args []string) error {
	ctx := context.Background()
	b, done, err := open(ctx, c.backend)
	if err != nil {
		return err
	}
	defer done()

	var out seedJSON
	if out.AdminCreated, err = c.seedAdmin(ctx, b); err != nil {
		return err
	}
	if !c.SkipCategories {
		if out.CategoriesCreated, err = b.categories.EnsureDefaults(ctx, service.DefaultCategories); err != nil {
			return err
		}
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(out)
	}
	if out.AdminCreated {
		fmt.Println("Admin account created")
	} else {
		fmt.Println("Users already exist, admin not created")
	}
	fmt.Printf("Categories created: %d\n", out.CategoriesCreated)
	return nil
}

// seedAdmin creates the first admin when there are no accounts. It reports
// whether an account was created.
func (c *SeedCommand) seedAdmin(ctx context.Context, b *backend) (bool, error) {
	users, err := b.auth.ListUsers(ctx)
	if err != nil {
		return false, err
	}
	if len(users) > 0 {
		return false, nil
	}

	if b.db != nil {
		return true, database.Seed(b.db, c.Email, c.Password)
	}

	email, password := c.Email, c.Password
	if email == "" {
		email = database.DefaultAdminEmail
	}
	if password == "" {
		password = database.DefaultAdminPassword
	}
	if _, err := b.auth.CreateUser(ctx, email, password, "Admin", models.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}
