package config

import (
	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/paths"
	"github.com/gobwas/glob"
)

// Output formats accepted by output.format
var Formats = []string{"auto", "term", "text", "json", "yaml"}

// Config is the effective modup configuration.
type Config struct {
	Paths     Paths     `koanf:"paths" toml:"paths"`
	Archives  Archives  `koanf:"archives" toml:"archives"`
	Migration Migration `koanf:"migration" toml:"migration"`
	Update    Update    `koanf:"update" toml:"update"`
	Output    Output    `koanf:"output" toml:"output"`
}

// Paths holds the staging and installation directories
type Paths struct {
	Staging string `koanf:"staging" toml:"staging"`
	Install string `koanf:"install" toml:"install"`
}

// Archives selects which files in the staging directory are processed
type Archives struct {
	Pattern string `koanf:"pattern" toml:"pattern"`
}

// Migration controls how the user's config file survives an update
type Migration struct {
	ConfigFile string   `koanf:"config_file" toml:"config_file"`
	Exclude    []string `koanf:"exclude" toml:"exclude"`
}

// Update holds concurrency settings
type Update struct {
	Workers    int  `koanf:"workers" toml:"workers"`
	LockByName bool `koanf:"lock_by_name" toml:"lock_by_name"`
}

// Output selects how reports are rendered
type Output struct {
	Format string `koanf:"format" toml:"format"`
}

// Validate rejects values no command can work with.
func (c *Config) Validate() error {
	if c.Update.Workers < 0 {
		return invalid("update.workers", c.Update.Workers, "must not be negative")
	}
	if c.Archives.Pattern == "" {
		return invalid("archives.pattern", c.Archives.Pattern, "must not be empty")
	}
	if _, err := glob.Compile(c.Archives.Pattern); err != nil {
		return invalid("archives.pattern", c.Archives.Pattern, err.Error())
	}
	if err := paths.ValidateName(c.Migration.ConfigFile); err != nil {
		return invalid("migration.config_file", c.Migration.ConfigFile, "must be a plain file name")
	}
	if !validFormat(c.Output.Format) {
		return invalid("output.format", c.Output.Format, "unknown format")
	}
	return nil
}

// Layout resolves the configured directories.
func (c *Config) Layout() (*paths.Layout, error) {
	return paths.New(c.Paths.Staging, c.Paths.Install)
}

func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

func invalid(key string, value interface{}, reason string) error {
	return errors.Newf(errors.ErrConfigValid, "invalid %s: %s", key, reason).
		WithDetail("key", key).
		WithDetail("value", value)
}
