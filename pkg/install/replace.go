package install

import (
	"os"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/logging"
	"github.com/arthur-debert/modup/pkg/types"
	"github.com/rs/zerolog"
)

// Replacer moves extracted packages into place.
type Replacer struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewReplacer creates a Replacer backed by fs.
func NewReplacer(fs types.FS) *Replacer {
	return &Replacer{fs: fs, logger: logging.GetLogger("install.replace")}
}

// Replace renames extractedPath to installedPath. The destination must not
// exist. A rename across filesystems is not emulated with a copy; it fails
// like any other move error.
func (r *Replacer) Replace(extractedPath, installedPath string) error {
	if _, err := r.fs.Lstat(installedPath); err == nil {
		return errors.Newf(errors.ErrMove, "destination %s already exists", installedPath).
			WithDetail("source", extractedPath).
			WithDetail("path", installedPath)
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrMove, "failed to check destination %s", installedPath).
			WithDetail("source", extractedPath).
			WithDetail("path", installedPath)
	}

	r.logger.Info().
		Str("source", extractedPath).
		Str("path", installedPath).
		Msg("Moving package into place")

	if err := r.fs.Rename(extractedPath, installedPath); err != nil {
		return errors.Wrapf(err, errors.ErrMove, "failed to move %s to %s", extractedPath, installedPath).
			WithDetail("source", extractedPath).
			WithDetail("path", installedPath)
	}
	return nil
}
