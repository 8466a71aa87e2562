package pipeline

import (
	"os"
	"time"

	"github.com/arthur-debert/modup/pkg/archive"
	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/install"
	"github.com/arthur-debert/modup/pkg/logging"
	"github.com/arthur-debert/modup/pkg/migrate"
	"github.com/arthur-debert/modup/pkg/paths"
	"github.com/arthur-debert/modup/pkg/types"
	"github.com/rs/zerolog"
)

// Locker serializes runs that resolve to the same package name. Lock
// blocks until name is free and returns the matching unlock function.
type Locker interface {
	Lock(name string) func()
}

// Options configures a Pipeline
type Options struct {
	FileSystem types.FS
	Layout     *paths.Layout

	// ConfigFile is the config file carried over between versions.
	ConfigFile string

	// Exclude lists packages whose config is never carried over.
	Exclude []string

	// Locker is optional.
	Locker Locker
}

// Pipeline updates one package per Run call. It is safe for concurrent
// use; every Run works on its own Package.
type Pipeline struct {
	fs        types.FS
	layout    *paths.Layout
	inspector *archive.Inspector
	migrator  *migrate.Migrator
	remover   *install.Remover
	replacer  *install.Replacer
	locker    Locker
	logger    zerolog.Logger
}

// New creates a Pipeline from opts.
func New(opts Options) (*Pipeline, error) {
	if opts.FileSystem == nil {
		return nil, errors.New(errors.ErrInvalidInput, "pipeline requires a filesystem")
	}
	if opts.Layout == nil {
		return nil, errors.New(errors.ErrInvalidInput, "pipeline requires a path layout")
	}

	return &Pipeline{
		fs:        opts.FileSystem,
		layout:    opts.Layout,
		inspector: archive.NewInspector(opts.FileSystem),
		migrator:  migrate.New(opts.FileSystem, opts.ConfigFile, opts.Exclude),
		remover:   install.NewRemover(opts.FileSystem),
		replacer:  install.NewReplacer(opts.FileSystem),
		locker:    opts.Locker,
		logger:    logging.GetLogger("pipeline"),
	}, nil
}

// Run updates the package held in archivePath and reports how far it got.
// Failures are returned inside the result, never as a panic or a separate
// error, so callers can run many archives and inspect every outcome.
func (p *Pipeline) Run(archivePath string) types.UpdateResult {
	r := p.newRun(archivePath)

	// Extracting
	name, err := p.inspector.Inspect(archivePath)
	if err != nil {
		return r.fail(err)
	}
	r.setPackage(p.packageFor(name, archivePath))

	if p.locker != nil {
		unlock := p.locker.Lock(name)
		defer unlock()
	}

	r.logger.Info().Msg("Extracting archive")
	if err := p.inspector.Extract(archivePath, p.layout.Staging()); err != nil {
		return r.fail(err)
	}

	// LocatingInstallation
	if err := r.advance(types.StageLocatingInstallation); err != nil {
		return r.fail(err)
	}
	stale, err := p.installationExists(r.result.Package)
	if err != nil {
		return r.fail(err)
	}
	r.result.Stale = stale

	if stale {
		if err := r.advance(types.StageMigratingConfig); err != nil {
			return r.fail(err)
		}
		migrated, err := p.migrator.Migrate(r.result.Package)
		if err != nil {
			return r.fail(err)
		}
		r.result.ConfigMigrated = migrated

		if err := r.advance(types.StageRemovingStale); err != nil {
			return r.fail(err)
		}
		if err := p.remover.Remove(r.result.Package.InstalledPath); err != nil {
			return r.fail(err)
		}
	} else {
		r.logger.Debug().Msg("No previous installation found")
		if err := r.advance(types.StageIdle); err != nil {
			return r.fail(err)
		}
	}

	if err := r.advance(types.StageReplacing); err != nil {
		return r.fail(err)
	}
	if err := p.replacer.Replace(r.result.Package.ExtractedPath, r.result.Package.InstalledPath); err != nil {
		return r.fail(err)
	}

	if err := r.advance(types.StageDone); err != nil {
		return r.fail(err)
	}
	return r.finish("Package updated")
}

// Plan predicts what Run would do with archivePath without mutating the
// filesystem. Only the archive listing and the installation directory are
// read. A predicted failure, such as a missing config, is reported the
// same way Run would report it.
func (p *Pipeline) Plan(archivePath string) types.UpdateResult {
	r := p.newRun(archivePath)

	name, err := p.inspector.Inspect(archivePath)
	if err != nil {
		return r.fail(err)
	}
	r.setPackage(p.packageFor(name, archivePath))

	if err := r.advance(types.StageLocatingInstallation); err != nil {
		return r.fail(err)
	}
	stale, err := p.installationExists(r.result.Package)
	if err != nil {
		return r.fail(err)
	}
	r.result.Stale = stale

	if stale {
		if err := r.advance(types.StageMigratingConfig); err != nil {
			return r.fail(err)
		}
		if !p.migrator.Excluded(name) {
			if err := p.checkConfig(r.result.Package); err != nil {
				return r.fail(err)
			}
			r.result.ConfigMigrated = true
		}
		if err := r.advance(types.StageRemovingStale); err != nil {
			return r.fail(err)
		}
	} else if err := r.advance(types.StageIdle); err != nil {
		return r.fail(err)
	}

	if err := r.advance(types.StageReplacing); err != nil {
		return r.fail(err)
	}
	if err := r.advance(types.StageDone); err != nil {
		return r.fail(err)
	}
	return r.finish("Update planned")
}

// checkConfig fails the way Migrate would when the installed package has
// no config file to carry over.
func (p *Pipeline) checkConfig(pkg types.Package) error {
	src := p.layout.ConfigPath(pkg.InstalledPath, p.migrator.ConfigFile())
	info, err := p.fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrConfigMissing, "no %s in previous installation of %s", p.migrator.ConfigFile(), pkg.Name).
				WithDetail("path", src)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src).
			WithDetail("path", src)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrConfigMissing, "%s is a directory, not a config file", src).
			WithDetail("path", src)
	}
	return nil
}

func (p *Pipeline) packageFor(name, archivePath string) types.Package {
	return types.Package{
		Name:          name,
		ArchivePath:   archivePath,
		ExtractedPath: p.layout.ExtractedPath(name),
		InstalledPath: p.layout.InstalledPath(name),
	}
}

// installationExists is the sole trigger for migrating and removing.
func (p *Pipeline) installationExists(pkg types.Package) (bool, error) {
	_, err := p.fs.Lstat(pkg.InstalledPath)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to check installation of %s", pkg.Name).
			WithDetail("path", pkg.InstalledPath)
	}
}

func (p *Pipeline) newRun(archivePath string) *run {
	return &run{
		start:  time.Now(),
		stage:  types.StageExtracting,
		logger: p.logger.With().Str("archive", archivePath).Logger(),
		result: types.UpdateResult{
			Archive: archivePath,
			Package: types.Package{ArchivePath: archivePath},
		},
	}
}
