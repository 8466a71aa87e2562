package types

// Package is the unit of update: one archive and the paths its contents
// move through. A Package is built fresh by each pipeline run and is never
// shared between runs, although the paths it names live in directories
// that all concurrent runs share.
type Package struct {
	// Name is the top-level directory of the archive's first entry.
	Name string `json:"name" yaml:"name"`

	// ArchivePath is the source archive, consumed once.
	ArchivePath string `json:"archive" yaml:"archive"`

	// ExtractedPath is where the package lands after extraction,
	// <staging>/<Name>.
	ExtractedPath string `json:"extractedPath" yaml:"extractedPath"`

	// InstalledPath is where the package lives once installed,
	// <staging>/../<Name>.
	InstalledPath string `json:"installedPath" yaml:"installedPath"`
}
