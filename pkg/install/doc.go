// Package install removes stale package installations and moves freshly
// extracted packages into the installation directory.
//
// Neither operation is retried; callers decide what a failure means for
// the package being updated.
package install
