package types

// Stage is a state of the per-archive update state machine:
//
//	Extracting -> LocatingInstallation -> {Idle | MigratingConfig -> RemovingStale} -> Replacing -> Done
//
// Failed is reachable from every non-terminal stage.
type Stage int

const (
	StageExtracting Stage = iota
	StageLocatingInstallation
	StageIdle
	StageMigratingConfig
	StageRemovingStale
	StageReplacing
	StageDone
	StageFailed
)

var stageNames = map[Stage]string{
	StageExtracting:           "extracting",
	StageLocatingInstallation: "locating-installation",
	StageIdle:                 "idle",
	StageMigratingConfig:      "migrating-config",
	StageRemovingStale:        "removing-stale",
	StageReplacing:            "replacing",
	StageDone:                 "done",
	StageFailed:               "failed",
}

// String returns the stage name used in logs and reports
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further transition can happen from s.
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageFailed
}

// allowedTransitions lists, for every non-terminal stage, the stages it may
// move to besides StageFailed.
var allowedTransitions = map[Stage][]Stage{
	StageExtracting:           {StageLocatingInstallation},
	StageLocatingInstallation: {StageIdle, StageMigratingConfig},
	StageIdle:                 {StageReplacing},
	StageMigratingConfig:      {StageRemovingStale},
	StageRemovingStale:        {StageReplacing},
	StageReplacing:            {StageDone},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to Stage) bool {
	if from.IsTerminal() {
		return false
	}
	if to == StageFailed {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
