package archive

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/logging"
	"github.com/arthur-debert/modup/pkg/paths"
	"github.com/arthur-debert/modup/pkg/types"
	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"
)

const (
	defaultDirPerm  os.FileMode = 0755
	defaultFilePerm os.FileMode = 0644
)

// Inspector reads package archives through a types.FS.
type Inspector struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewInspector creates an Inspector backed by fs.
func NewInspector(fs types.FS) *Inspector {
	return &Inspector{
		fs:     fs,
		logger: logging.GetLogger("archive"),
	}
}

// Inspect derives the package name from the archive without extracting it.
func (i *Inspector) Inspect(archivePath string) (string, error) {
	reader, closer, err := i.open(archivePath)
	if err != nil {
		return "", err
	}
	defer closer.Close()

	return packageName(archivePath, reader)
}

// Extract writes every entry of the archive under dest. Extraction is not
// atomic: entries written before a failure stay on disk.
func (i *Inspector) Extract(archivePath, dest string) error {
	reader, closer, err := i.open(archivePath)
	if err != nil {
		return err
	}
	defer closer.Close()

	i.logger.Debug().
		Str("archive", archivePath).
		Int("entries", len(reader.File)).
		Msg("Extracting archive")

	return i.extractAll(archivePath, reader, dest)
}

func (i *Inspector) open(archivePath string) (*zip.Reader, io.Closer, error) {
	f, err := i.fs.Open(archivePath)
	if err != nil {
		return nil, nil, readError(err, archivePath, "failed to open archive")
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, readError(err, archivePath, "failed to stat archive")
	}

	reader, err := zip.NewReader(f, info.Size())
	if err != nil {
		_ = f.Close()
		return nil, nil, readError(err, archivePath, "failed to read archive")
	}

	if len(reader.File) == 0 {
		_ = f.Close()
		return nil, nil, errors.New(errors.ErrArchiveRead, "archive has no entries").
			WithDetail("archive", archivePath)
	}

	return reader, f, nil
}

// packageName returns the top-level directory of the first listed entry,
// normalized for the host path syntax.
func packageName(archivePath string, reader *zip.Reader) (string, error) {
	first := reader.File[0].Name
	entry := path.Clean(strings.ReplaceAll(first, `\`, "/"))

	dir := path.Dir(entry)
	if strings.HasSuffix(first, "/") || strings.HasSuffix(first, `\`) {
		// A directory entry names the root itself
		dir = entry
	}

	top := strings.SplitN(dir, "/", 2)[0]
	name := filepath.FromSlash(top)

	if err := paths.ValidateName(name); err != nil {
		return "", errors.Wrapf(err, errors.ErrArchiveRead, "first entry %q does not name a package directory", first).
			WithDetail("archive", archivePath).
			WithDetail("entry", first)
	}
	return name, nil
}

func (i *Inspector) extractAll(archivePath string, reader *zip.Reader, dest string) error {
	for _, f := range reader.File {
		target, err := entryTarget(dest, f.Name)
		if err != nil {
			return errors.Wrap(err, errors.ErrArchiveRead, "unsafe archive entry").
				WithDetail("archive", archivePath).
				WithDetail("entry", f.Name)
		}

		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			if err := i.fs.MkdirAll(target, defaultDirPerm); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", target).
					WithDetail("archive", archivePath)
			}
			continue
		}

		if err := i.extractFile(f, target); err != nil {
			return errors.Wrapf(err, errors.ErrArchiveRead, "failed to extract %s", f.Name).
				WithDetail("archive", archivePath).
				WithDetail("entry", f.Name)
		}
	}

	i.logger.Trace().Str("archive", archivePath).Str("dest", dest).Msg("Archive extracted")
	return nil
}

func (i *Inspector) extractFile(f *zip.File, target string) error {
	if err := i.fs.MkdirAll(filepath.Dir(target), defaultDirPerm); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = defaultFilePerm
	}

	dst, err := i.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// entryTarget maps an archive entry name onto dest, refusing names that
// would land outside it.
func entryTarget(dest, name string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") || filepath.VolumeName(clean) != "" {
		return "", errors.Newf(errors.ErrInvalidInput, "entry %q escapes the extraction directory", name)
	}
	return filepath.Join(dest, filepath.FromSlash(clean)), nil
}

func readError(err error, archivePath, message string) error {
	return errors.Wrap(err, errors.ErrArchiveRead, message).
		WithDetail("archive", archivePath)
}
