package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/types"
	"github.com/arthur-debert/modup/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport(dryRun bool) *types.Report {
	return &types.Report{
		DryRun:    dryRun,
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Results: []types.UpdateResult{
			{
				Archive:        "/mods/updates/Alpha-2.0.0.zip",
				Package:        types.Package{Name: "Alpha", InstalledPath: "/mods/Alpha"},
				Stage:          types.StageDone,
				Stale:          true,
				ConfigMigrated: true,
				Duration:       1500 * time.Millisecond,
			},
			{
				Archive: "/mods/updates/Beta.zip",
				Package: types.Package{Name: "Beta", InstalledPath: "/mods/Beta"},
				Stage:   types.StageDone,
			},
			{
				Archive:  "/mods/updates/Broken.zip",
				Package:  types.Package{ArchivePath: "/mods/updates/Broken.zip"},
				Stage:    types.StageFailed,
				FailedAt: types.StageExtracting,
				Err: errors.New(errors.ErrArchiveRead, "not a valid zip archive").
					WithDetail("archive", "/mods/updates/Broken.zip"),
			},
		},
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{ui.FormatAuto, "auto"},
		{ui.FormatTerminal, "term"},
		{ui.FormatText, "text"},
		{ui.FormatJSON, "json"},
		{ui.FormatYAML, "yaml"},
		{ui.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{input: "", expected: ui.FormatAuto},
		{input: "auto", expected: ui.FormatAuto},
		{input: "TERM", expected: ui.FormatTerminal},
		{input: "terminal", expected: ui.FormatTerminal},
		{input: "plain", expected: ui.FormatText},
		{input: "json", expected: ui.FormatJSON},
		{input: "yml", expected: ui.FormatYAML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewRenderer_AutoOnBufferIsText(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatAuto, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderReport(sampleReport(false)))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestNewRenderer_UnknownFormat(t *testing.T) {
	_, err := ui.NewRenderer(ui.Format(42), &bytes.Buffer{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderReport(sampleReport(false)))
	out := buf.String()

	assert.Contains(t, out, "Update results")
	assert.Contains(t, out, "Alpha-2.0.0.zip")
	assert.Contains(t, out, "updated")
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "installed")
	assert.Contains(t, out, "ArchiveReadError at extracting")
	assert.Contains(t, out, "2 succeeded, 1 failed")
	assert.NotContains(t, out, "\x1b[")
}

func TestTextRenderer_DryRun(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderReport(sampleReport(true)))
	out := buf.String()

	assert.Contains(t, out, "Planned updates (dry run)")
	assert.Contains(t, out, "will update")
	assert.Contains(t, out, "will install")
	assert.Contains(t, out, "2 ready, 1 failed")
}

func TestTextRenderer_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderReport(&types.Report{}))
	assert.Equal(t, "No archives to process.\n", buf.String())
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderReport(sampleReport(false)))
	assert.Contains(t, buf.String(), "Alpha")
	assert.Contains(t, buf.String(), "Broken.zip")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderReport(sampleReport(false)))

	var view ui.ReportView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &view))
	assert.Equal(t, 2, view.Succeeded)
	assert.Equal(t, 1, view.Failed)
	require.Len(t, view.Results, 3)

	assert.Equal(t, ui.ActionUpdated, view.Results[0].Action)
	assert.Equal(t, int64(1500), view.Results[0].DurationMs)
	assert.Nil(t, view.Results[0].Error)

	failed := view.Results[2]
	assert.Equal(t, ui.ActionFailed, failed.Action)
	assert.Equal(t, "extracting", failed.FailedAt)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "ArchiveReadError", failed.Error.Kind)
	assert.Equal(t, "ARCHIVE_READ", failed.Error.Code)
	assert.Equal(t, "/mods/updates/Broken.zip", failed.Error.Details["archive"])
}

func TestJSONRenderer_Error(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderError(errors.New(errors.ErrConfigValid, "bad workers")))

	var out map[string]ui.ErrorView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "CONFIG_INVALID", out["error"].Code)
}

func TestYAMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatYAML, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderReport(sampleReport(true)))

	var view ui.ReportView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &view))
	assert.True(t, view.DryRun)
	require.Len(t, view.Results, 3)
	assert.Equal(t, ui.ActionWillUpdate, view.Results[0].Action)
	assert.Equal(t, ui.ActionWillInstall, view.Results[1].Action)
	assert.Equal(t, "Alpha", view.Results[0].Package)
}

func TestStyles(t *testing.T) {
	styles := ui.DefaultStyles()
	for _, name := range []string{"Title", "Package", "Muted", "Installed", "Updated", "Planned", "Failed", "ErrorKind", "Summary"} {
		assert.Contains(t, styles, name)
	}

	assert.Equal(t, "plain", styles.Render("NoSuchStyle", "plain"))

	_, err := ui.ParseStyles([]byte("colors: ["))
	assert.Error(t, err)
}
