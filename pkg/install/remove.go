package install

import (
	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/logging"
	"github.com/arthur-debert/modup/pkg/types"
	"github.com/rs/zerolog"
)

// Remover deletes stale installations.
type Remover struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewRemover creates a Remover backed by fs.
func NewRemover(fs types.FS) *Remover {
	return &Remover{fs: fs, logger: logging.GetLogger("install.remove")}
}

// Remove recursively deletes the directory tree at installedPath. It must
// only run once the package's config has been migrated out of it.
func (r *Remover) Remove(installedPath string) error {
	r.logger.Info().Str("path", installedPath).Msg("Removing old version")

	if err := r.fs.RemoveAll(installedPath); err != nil {
		return errors.Wrapf(err, errors.ErrRemoval, "failed to remove %s", installedPath).
			WithDetail("path", installedPath)
	}
	return nil
}
