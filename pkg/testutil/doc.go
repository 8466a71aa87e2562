// Package testutil provides utilities for testing modup components.
//
// Key components:
//   - Workspace: a staging directory nested in an installation directory,
//     laid out the way modup expects on disk
//   - WriteZip / BuildZip: archive fixtures with a controlled entry order
//   - File and directory assertions
//
// All test data is defined inline; each test gets its own temp directory.
package testutil
