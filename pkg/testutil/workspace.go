package testutil

import (
	"path/filepath"
	"sort"
	"testing"
)

// Workspace is an installation directory with a staging directory inside
// it, mirroring a Mods folder with an "updates" folder for downloads.
type Workspace struct {
	Install string
	Staging string
}

// NewWorkspace creates an empty workspace under a fresh temp directory.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()

	install := filepath.Join(t.TempDir(), "Mods")
	staging := CreateDir(t, install, "updates")
	return &Workspace{Install: install, Staging: staging}
}

// Installed returns the installed path of a package.
func (w *Workspace) Installed(parts ...string) string {
	return filepath.Join(append([]string{w.Install}, parts...)...)
}

// Staged returns a path inside the staging directory.
func (w *Workspace) Staged(parts ...string) string {
	return filepath.Join(append([]string{w.Staging}, parts...)...)
}

// InstallPackage creates an installed package holding files.
func (w *Workspace) InstallPackage(t *testing.T, name string, files map[string]string) string {
	t.Helper()

	dir := CreateDir(t, w.Install, name)
	for _, rel := range sortedKeys(files) {
		CreateFile(t, dir, rel, files[rel])
	}
	return dir
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
