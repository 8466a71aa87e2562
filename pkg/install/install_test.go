package install

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/filesystem"
	"github.com/arthur-debert/modup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemove(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	dir := ws.InstallPackage(t, "Alpha", map[string]string{
		"manifest.json":     "{}",
		"assets/deep/a.png": "png",
		"assets/deep/b.png": "png",
	})

	require.NoError(t, NewRemover(filesystem.NewOS()).Remove(dir))
	testutil.AssertNotExists(t, dir)
	testutil.AssertDirExists(t, ws.Staging)
}

func TestRemove_MissingIsNoError(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	assert.NoError(t, NewRemover(filesystem.NewOS()).Remove(ws.Installed("Ghost")))
}

func TestRemove_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	ws := testutil.NewWorkspace(t)
	dir := ws.InstallPackage(t, "Alpha", map[string]string{"locked/file.txt": "x"})
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Chmod(locked, 0555))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	err := NewRemover(filesystem.NewOS()).Remove(dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRemoval))
	assert.Equal(t, dir, errors.GetErrorDetails(err)["path"])
}

func TestReplace(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	src := testutil.CreateDir(t, ws.Staging, "Alpha")
	testutil.CreateFile(t, src, "manifest.json", "new")

	require.NoError(t, NewReplacer(filesystem.NewOS()).Replace(src, ws.Installed("Alpha")))

	testutil.AssertNotExists(t, src)
	testutil.AssertFileContent(t, ws.Installed("Alpha", "manifest.json"), "new")
}

func TestReplace_DestinationExists(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	src := testutil.CreateDir(t, ws.Staging, "Alpha")
	ws.InstallPackage(t, "Alpha", map[string]string{"manifest.json": "old"})

	err := NewReplacer(filesystem.NewOS()).Replace(src, ws.Installed("Alpha"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMove))

	// Nothing moved
	testutil.AssertDirExists(t, src)
	testutil.AssertFileContent(t, ws.Installed("Alpha", "manifest.json"), "old")
}

func TestReplace_MissingSource(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	err := NewReplacer(filesystem.NewOS()).Replace(ws.Staged("Alpha"), ws.Installed("Alpha"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMove))
}
