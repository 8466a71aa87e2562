// Package migrate carries a package's user-editable config file from its
// old installation into the freshly extracted replacement.
package migrate

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/logging"
	"github.com/arthur-debert/modup/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultConfigFile is the config file name mods persist their settings in.
const DefaultConfigFile = "config.json"

// DefaultExclude lists packages that are always deployed fresh. The core
// patch framework ships no user config.
var DefaultExclude = []string{"ContentPatcher"}

// Migrator moves config files between installations.
type Migrator struct {
	fs         types.FS
	configFile string
	exclude    map[string]struct{}
	logger     zerolog.Logger
}

// New creates a Migrator moving configFile and skipping the excluded
// package names. An empty configFile means DefaultConfigFile.
func New(fs types.FS, configFile string, exclude []string) *Migrator {
	if configFile == "" {
		configFile = DefaultConfigFile
	}
	set := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		set[name] = struct{}{}
	}
	return &Migrator{
		fs:         fs,
		configFile: configFile,
		exclude:    set,
		logger:     logging.GetLogger("migrate"),
	}
}

// Excluded reports whether name never carries a config over.
func (m *Migrator) Excluded(name string) bool {
	_, ok := m.exclude[name]
	return ok
}

// ConfigFile returns the config file name being migrated.
func (m *Migrator) ConfigFile() string {
	return m.configFile
}

// Migrate moves InstalledPath/<config> to ExtractedPath/<config>, replacing
// any default config the new version bundles. It returns false without
// touching the filesystem for excluded packages. The old config becomes
// the new one verbatim.
func (m *Migrator) Migrate(pkg types.Package) (bool, error) {
	if m.Excluded(pkg.Name) {
		m.logger.Debug().Str("package", pkg.Name).Msg("Package excluded from config migration")
		return false, nil
	}

	src := filepath.Join(pkg.InstalledPath, m.configFile)
	dst := filepath.Join(pkg.ExtractedPath, m.configFile)

	info, err := m.fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return false, errors.Wrapf(err, errors.ErrConfigMissing, "no %s in previous installation of %s", m.configFile, pkg.Name).
				WithDetail("package", pkg.Name).
				WithDetail("path", src)
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src).
			WithDetail("package", pkg.Name).
			WithDetail("path", src)
	}
	if info.IsDir() {
		return false, errors.Newf(errors.ErrConfigMissing, "%s is a directory, not a config file", src).
			WithDetail("package", pkg.Name).
			WithDetail("path", src)
	}

	m.logger.Info().Str("package", pkg.Name).Msg("Relocating config file")

	if err := m.fs.Rename(src, dst); err != nil {
		if os.IsNotExist(err) {
			// Removed between the stat and the move
			return false, errors.Wrapf(err, errors.ErrConfigMissing, "config of %s disappeared during migration", pkg.Name).
				WithDetail("package", pkg.Name).
				WithDetail("path", src)
		}
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to move %s to %s", src, dst).
			WithDetail("package", pkg.Name).
			WithDetail("path", src)
	}

	return true, nil
}
