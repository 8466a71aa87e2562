package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/modup/pkg/errors"
)

// Environment variable names
const (
	// EnvModupConfigDir overrides the XDG config directory for modup
	EnvModupConfigDir = "MODUP_CONFIG_DIR"
)

// Default directories and files
const (
	// ModupDirName is the directory name for modup-specific files
	ModupDirName = "modup"

	// UserConfigFile is the name of the per-user configuration file
	UserConfigFile = "config.toml"

	// StagingConfigFile is the name of the per-staging-directory configuration file
	StagingConfigFile = "modup.toml"
)

// Layout maps package names to their locations in the staging and
// installation directories. It performs no I/O.
type Layout struct {
	staging string
	install string
}

// New creates a Layout. An empty staging defaults to the current working
// directory; an empty install defaults to the parent of staging.
func New(staging, install string) (*Layout, error) {
	if staging == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to determine working directory")
		}
		staging = cwd
	}

	absStaging, err := filepath.Abs(staging)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for staging directory %s", staging)
	}

	if install == "" {
		install = filepath.Dir(absStaging)
	}
	absInstall, err := filepath.Abs(install)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for install directory %s", install)
	}

	if absInstall == absStaging {
		return nil, errors.New(errors.ErrInvalidInput, "staging and install directories must differ").
			WithDetail("path", absStaging)
	}

	return &Layout{staging: absStaging, install: absInstall}, nil
}

// Staging returns the absolute staging directory
func (l *Layout) Staging() string {
	return l.staging
}

// Install returns the absolute installation directory
func (l *Layout) Install() string {
	return l.install
}

// ExtractedPath returns where an archive's package lands after extraction.
func (l *Layout) ExtractedPath(name string) string {
	return filepath.Join(l.staging, name)
}

// InstalledPath returns where an installed copy of the package lives.
func (l *Layout) InstalledPath(name string) string {
	return filepath.Join(l.install, name)
}

// ConfigPath returns the path of the config file inside a package directory.
func (l *Layout) ConfigPath(packageDir, configFile string) string {
	return filepath.Join(packageDir, configFile)
}

// ValidateName checks that name is a single, plausible path component.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.Newf(errors.ErrInvalidInput, "invalid package name %q", name)
	case filepath.IsAbs(name), strings.ContainsAny(name, `/\`):
		return errors.Newf(errors.ErrInvalidInput, "package name %q is not a single directory", name)
	}
	return nil
}

// UserConfigDir returns the per-user configuration directory, respecting
// MODUP_CONFIG_DIR and XDG_CONFIG_HOME.
func UserConfigDir() string {
	if dir := os.Getenv(EnvModupConfigDir); dir != "" {
		return dir
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, ModupDirName)
	}
	return filepath.Join(xdg.ConfigHome, ModupDirName)
}

// UserConfigPath returns the path of the per-user configuration file.
func UserConfigPath() string {
	return filepath.Join(UserConfigDir(), UserConfigFile)
}
