package testutil

import (
	"testing"
)

// AssertFileExists checks that a file exists.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if !FileExists(t, path) {
		t.Errorf("File does not exist: %s", path)
	}
}

// AssertDirExists checks that a directory exists.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	if !DirExists(t, path) {
		t.Errorf("Directory does not exist: %s", path)
	}
}

// AssertNotExists checks that nothing exists at path.
func AssertNotExists(t *testing.T, path string) {
	t.Helper()
	if PathExists(t, path) {
		t.Errorf("Path should not exist: %s", path)
	}
}

// AssertFileContent checks that the file at path holds exactly want.
func AssertFileContent(t *testing.T, path, want string) {
	t.Helper()
	if !FileExists(t, path) {
		t.Errorf("File does not exist: %s", path)
		return
	}
	if got := ReadFile(t, path); got != want {
		t.Errorf("File %s content = %q, want %q", path, got, want)
	}
}
