package archive

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/filesystem"
	"github.com/arthur-debert/modup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_PackageName(t *testing.T) {
	tests := []struct {
		name    string
		entries []testutil.ZipEntry
		want    string
	}{
		{
			name:    "file_first",
			entries: []testutil.ZipEntry{{Name: "Alpha/manifest.json", Body: "{}"}},
			want:    "Alpha",
		},
		{
			name:    "directory_first",
			entries: []testutil.ZipEntry{{Name: "Alpha/"}, {Name: "Alpha/manifest.json", Body: "{}"}},
			want:    "Alpha",
		},
		{
			name:    "nested_first_entry_uses_top_level",
			entries: []testutil.ZipEntry{{Name: "Alpha/assets/icon.png", Body: "png"}},
			want:    "Alpha",
		},
		{
			name:    "dot_prefixed_entry",
			entries: []testutil.ZipEntry{{Name: "./Beta/manifest.json", Body: "{}"}},
			want:    "Beta",
		},
		{
			name:    "name_with_spaces",
			entries: []testutil.ZipEntry{{Name: "Better Crafting/manifest.json", Body: "{}"}},
			want:    "Better Crafting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			archivePath := testutil.WriteZip(t, dir, "pkg.zip", tt.entries...)

			name, err := NewInspector(filesystem.NewOS()).Inspect(archivePath)
			require.NoError(t, err)
			assert.Equal(t, tt.want, name)

			// Inspect never extracts
			assert.NoDirExists(t, filepath.Join(dir, tt.want))
		})
	}
}

func TestInspect_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := testutil.WriteZip(t, dir, "empty.zip")
	corrupt := testutil.CreateFile(t, dir, "corrupt.zip", "this is not a zip file")
	rootFile := testutil.WriteZip(t, dir, "root.zip", testutil.ZipEntry{Name: "readme.txt", Body: "hi"})
	escaping := testutil.WriteZip(t, dir, "escape.zip", testutil.ZipEntry{Name: "../evil/file", Body: "x"})

	tests := []struct {
		name string
		path string
	}{
		{"empty_archive", empty},
		{"corrupt_archive", corrupt},
		{"missing_archive", filepath.Join(dir, "missing.zip")},
		{"first_entry_at_root", rootFile},
		{"first_entry_escapes", escaping},
	}

	inspector := NewInspector(filesystem.NewOS())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := inspector.Inspect(tt.path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveRead), "got %v", err)
			assert.Equal(t, tt.path, errors.GetErrorDetails(err)["archive"])
		})
	}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	archivePath := testutil.PackageZip(t, dir, "Alpha-2.0.0.zip", "Alpha", map[string]string{
		"manifest.json":    `{"Name":"Alpha"}`,
		"config.json":      `{"volume":10}`,
		"assets/sound.ogg": "ogg",
	})

	require.NoError(t, NewInspector(filesystem.NewOS()).Extract(archivePath, dir))

	testutil.AssertFileContent(t, filepath.Join(dir, "Alpha", "manifest.json"), `{"Name":"Alpha"}`)
	testutil.AssertFileContent(t, filepath.Join(dir, "Alpha", "config.json"), `{"volume":10}`)
	testutil.AssertFileContent(t, filepath.Join(dir, "Alpha", "assets", "sound.ogg"), "ogg")
}

func TestExtract_OverwritesLeftovers(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, filepath.Join("Alpha", "manifest.json"), "stale")
	archivePath := testutil.PackageZip(t, dir, "Alpha.zip", "Alpha", map[string]string{
		"manifest.json": "fresh",
	})

	require.NoError(t, NewInspector(filesystem.NewOS()).Extract(archivePath, dir))
	testutil.AssertFileContent(t, filepath.Join(dir, "Alpha", "manifest.json"), "fresh")
}

func TestExtract_RejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	dest := testutil.CreateDir(t, dir, "staging")
	archivePath := testutil.WriteZip(t, dir, "sneaky.zip",
		testutil.ZipEntry{Name: "Alpha/manifest.json", Body: "{}"},
		testutil.ZipEntry{Name: "Alpha/../../outside.txt", Body: "pwned"},
	)

	err := NewInspector(filesystem.NewOS()).Extract(archivePath, dest)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveRead))
	assert.NoFileExists(t, filepath.Join(dir, "outside.txt"))
}

func TestInspectThenExtract_MemoryFS(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/staging", 0755))
	data := testutil.BuildZip(t,
		testutil.ZipEntry{Name: "Gamma/"},
		testutil.ZipEntry{Name: "Gamma/manifest.json", Body: "gamma"},
	)
	require.NoError(t, fsys.WriteFile("/staging/Gamma.zip", data, 0644))

	inspector := NewInspector(fsys)
	name, err := inspector.Inspect("/staging/Gamma.zip")
	require.NoError(t, err)
	assert.Equal(t, "Gamma", name)
	require.NoError(t, inspector.Extract("/staging/Gamma.zip", "/staging"))

	content, err := fsys.ReadFile("/staging/Gamma/manifest.json")
	require.NoError(t, err)
	assert.Equal(t, "gamma", string(content))
}
