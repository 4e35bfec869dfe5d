package cli

import (
	"context"
	"errors"
	"fmt"

	"blogdesk/internal/database"
)

var errNoDatabase = errors.New("this command requires STORE_BACKEND=postgres")

// Execute implements the go-flags Commander interface for MigrateCommand.
func (c *MigrateCommand) Execute(args []string) error {
	b, done, err := open(context.Background(), c.backend)
	if err != nil {
		return err
	}
	defer done()

	if b.db == nil {
		return errNoDatabase
	}
	if err := database.Migrate(b.db); err != nil {
		return err
	}
	version, err := database.Version(b.db)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]int64{"version": version})
	}
	fmt.Printf("Schema at version %d\n", version)
	return nil
}
