package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

// ZipEntry is one archive member. Names ending in "/" are directories.
type ZipEntry struct {
	Name string
	Body string
}

// BuildZip returns a zip archive holding entries in the given order.
func BuildZip(t *testing.T, entries ...ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.Create(e.Name)
		if err != nil {
			t.Fatalf("Failed to add %s to archive: %v", e.Name, err)
		}
		if e.Body != "" {
			if _, err := f.Write([]byte(e.Body)); err != nil {
				t.Fatalf("Failed to write %s to archive: %v", e.Name, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish archive: %v", err)
	}
	return buf.Bytes()
}

// WriteZip writes an archive holding entries to dir/name and returns its path.
func WriteZip(t *testing.T, dir, name string, entries ...ZipEntry) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, BuildZip(t, entries...), 0644); err != nil {
		t.Fatalf("Failed to write archive %s: %v", path, err)
	}
	return path
}

// PackageZip writes an archive for a package named pkg whose root
// directory is listed first, followed by files relative to that root.
func PackageZip(t *testing.T, dir, name, pkg string, files map[string]string) string {
	t.Helper()

	entries := []ZipEntry{{Name: pkg + "/"}}
	for _, rel := range sortedKeys(files) {
		entries = append(entries, ZipEntry{Name: pkg + "/" + rel, Body: files[rel]})
	}
	return WriteZip(t, dir, name, entries...)
}
