package ui

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/types"
)

// Actions reported per archive
const (
	ActionInstalled   = "installed"
	ActionUpdated     = "updated"
	ActionWillInstall = "will install"
	ActionWillUpdate  = "will update"
	ActionFailed      = "failed"
)

// ReportView is the serializable form of a types.Report.
type ReportView struct {
	DryRun    bool         `json:"dryRun" yaml:"dryRun"`
	Timestamp time.Time    `json:"timestamp" yaml:"timestamp"`
	Succeeded int          `json:"succeeded" yaml:"succeeded"`
	Failed    int          `json:"failed" yaml:"failed"`
	Results   []ResultView `json:"results" yaml:"results"`
}

// ResultView describes one archive's outcome.
type ResultView struct {
	Archive        string     `json:"archive" yaml:"archive"`
	Package        string     `json:"package,omitempty" yaml:"package,omitempty"`
	InstalledPath  string     `json:"installedPath,omitempty" yaml:"installedPath,omitempty"`
	Action         string     `json:"action" yaml:"action"`
	Stale          bool       `json:"stale" yaml:"stale"`
	ConfigMigrated bool       `json:"configMigrated" yaml:"configMigrated"`
	FailedAt       string     `json:"failedAt,omitempty" yaml:"failedAt,omitempty"`
	Error          *ErrorView `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMs     int64      `json:"durationMs" yaml:"durationMs"`
}

// ErrorView carries a failure's kind, code and details.
type ErrorView struct {
	Kind    string                 `json:"kind" yaml:"kind"`
	Code    string                 `json:"code" yaml:"code"`
	Message string                 `json:"message" yaml:"message"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// NewReportView converts report for rendering.
func NewReportView(report *types.Report) ReportView {
	view := ReportView{
		DryRun:    report.DryRun,
		Timestamp: report.Timestamp,
		Results:   make([]ResultView, 0, len(report.Results)),
	}
	for _, r := range report.Results {
		rv := newResultView(r, report.DryRun)
		if rv.Error != nil {
			view.Failed++
		} else {
			view.Succeeded++
		}
		view.Results = append(view.Results, rv)
	}
	return view
}

func newResultView(r types.UpdateResult, dryRun bool) ResultView {
	rv := ResultView{
		Archive:        r.Archive,
		Package:        r.Package.Name,
		InstalledPath:  r.Package.InstalledPath,
		Action:         action(r, dryRun),
		Stale:          r.Stale,
		ConfigMigrated: r.ConfigMigrated,
		DurationMs:     r.Duration.Milliseconds(),
	}
	if !r.Succeeded() {
		rv.FailedAt = r.FailedAt.String()
		rv.Error = newErrorView(r.Err)
	}
	return rv
}

func newErrorView(err error) *ErrorView {
	if err == nil {
		return &ErrorView{Kind: string(errors.ErrUnknown), Code: string(errors.ErrUnknown), Message: "unknown failure"}
	}
	return &ErrorView{
		Kind:    errors.Kind(err),
		Code:    string(errors.GetErrorCode(err)),
		Message: err.Error(),
		Details: errors.GetErrorDetails(err),
	}
}

func action(r types.UpdateResult, dryRun bool) string {
	switch {
	case !r.Succeeded():
		return ActionFailed
	case dryRun && r.Stale:
		return ActionWillUpdate
	case dryRun:
		return ActionWillInstall
	case r.Stale:
		return ActionUpdated
	default:
		return ActionInstalled
	}
}

// configNote summarizes what happened to the user's config file.
func configNote(rv ResultView, dryRun bool) string {
	switch {
	case rv.Error != nil, !rv.Stale:
		return "-"
	case rv.ConfigMigrated && dryRun:
		return "will keep"
	case rv.ConfigMigrated:
		return "kept"
	default:
		return "excluded"
	}
}

func archiveName(path string) string {
	return filepath.Base(path)
}
