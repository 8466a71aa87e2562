// Package types defines the core types and interfaces used throughout modup.
// This includes the FS abstraction every component works against, the
// Package value built for each archive, the pipeline Stage enum and the
// per-archive UpdateResult collected into a Report.
package types
