package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	JSON    bool `long:"json" description:"Output in JSON format"`
	Version bool `long:"version" description:"Show version and exit"`
}

// MigrateCommand applies pending database migrations.
type MigrateCommand struct {
	globals *GlobalFlags
	backend *backend // injectable for testing; nil means open from the environment
}

// SeedCommand creates the first admin account and the default categories.
type SeedCommand struct {
	Email          string `long:"email" description:"Admin email (default admin@blogdesk.local)"`
	Password       string `long:"password" description:"Admin password (default changeme-admin)"`
	SkipCategories bool   `long:"skip-categories" description:"Do not create the default categories"`

	globals *GlobalFlags
	backend *backend
}

// CreateUserCommand adds an admin or editor account.
type CreateUserCommand struct {
	Email    string `long:"email" description:"Login email" required:"yes"`
	Password string `long:"password" description:"Password, at least 8 characters" required:"yes"`
	Name     string `long:"name" description:"Display name (defaults to the email)"`
	Role     string `long:"role" description:"admin or editor" default:"editor" choice:"admin" choice:"editor"`

	globals *GlobalFlags
	backend *backend
}

// ListUsersCommand prints every account.
type ListUsersCommand struct {
	globals *GlobalFlags
	backend *backend
}

// ResetTwoFACommand turns two-factor authentication off for one account.
type ResetTwoFACommand struct {
	Email string `long:"email" description:"Account email" required:"yes"`

	globals *GlobalFlags
	backend *backend
}

// StatsCommand prints the page analytics summary.
type StatsCommand struct {
	Page string `long:"page" description:"Show totals for a single page path"`

	globals *GlobalFlags
	backend *backend
}

// VersionCommand prints the build version.
type VersionCommand struct {
	globals *GlobalFlags
	version string
}
