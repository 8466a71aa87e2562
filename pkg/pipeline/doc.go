// Package pipeline runs the per-archive update sequence:
//
//	Extracting -> LocatingInstallation -> {Idle | MigratingConfig -> RemovingStale} -> Replacing -> Done
//
// Any step can fail, which ends the run in StageFailed. There is no
// rollback: an extracted directory, a migrated config or a removed
// installation stays as it is, and the result records the stage that
// failed so an operator can finish or revert the package by hand.
//
// Each run owns its Package value. The staging and installation
// directories are shared with every other run, so two archives that
// resolve to the same package name must not run at the same time; pass
// a Locker to serialize them when that cannot be guaranteed.
package pipeline
