// Package driver discovers pending archives in the staging directory and
// runs one update pipeline per archive on a bounded worker pool.
//
// The archive listing is taken once, before any pipeline starts; archives
// that appear later are left for the next run. Pipelines are not ordered
// relative to each other and a failing pipeline never stops its siblings:
// every outcome is collected into a types.Report once all have finished.
//
// Package names must be unique across the archive set. The driver does
// not coordinate access to the shared directories unless name locking is
// enabled, see NameLocks.
package driver
