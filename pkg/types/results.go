package types

import (
	"sort"
	"time"
)

// UpdateResult is the outcome of one pipeline run over one archive.
type UpdateResult struct {
	Archive string
	Package Package

	// Stage is the final stage, StageDone or StageFailed.
	Stage Stage

	// FailedAt is the stage that was running when the pipeline failed.
	// Operators use it to tell how far the filesystem was mutated.
	FailedAt Stage

	// Stale is true when a prior installation was found.
	Stale bool

	// ConfigMigrated is true when the old config file was carried over.
	ConfigMigrated bool

	Err      error
	Duration time.Duration
}

// Succeeded reports whether the pipeline reached StageDone.
func (r UpdateResult) Succeeded() bool {
	return r.Stage == StageDone && r.Err == nil
}

// DisplayName returns the package name, falling back to the archive when
// the name could not be derived.
func (r UpdateResult) DisplayName() string {
	if r.Package.Name != "" {
		return r.Package.Name
	}
	return r.Archive
}

// Report collects every archive's result once all pipelines finished.
type Report struct {
	Results   []UpdateResult
	DryRun    bool
	Timestamp time.Time
}

// Succeeded returns the results that reached StageDone
func (r *Report) Succeeded() []UpdateResult {
	var out []UpdateResult
	for _, res := range r.Results {
		if res.Succeeded() {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the results that ended in StageFailed
func (r *Report) Failed() []UpdateResult {
	var out []UpdateResult
	for _, res := range r.Results {
		if !res.Succeeded() {
			out = append(out, res)
		}
	}
	return out
}

// HasFailures reports whether any archive failed to update.
func (r *Report) HasFailures() bool {
	return len(r.Failed()) > 0
}

// Sort orders results by archive path so reports are stable regardless of
// which pipeline finished first.
func (r *Report) Sort() {
	sort.SliceStable(r.Results, func(i, j int) bool {
		return r.Results[i].Archive < r.Results[j].Archive
	})
}
