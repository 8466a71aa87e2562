// Package ui renders update reports in the format the user asked for:
// a styled table for terminals, the same table without styling for pipes,
// or JSON and YAML for scripts.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/types"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderReport renders the outcome of an update or plan
	RenderReport(report *types.Report) error

	// RenderError renders an error that stopped the command
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto inspects output when it is a file and falls back to text.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return &tableRenderer{output: output, styles: DefaultStyles()}, nil
	case FormatText:
		return &tableRenderer{output: output, plain: true}, nil
	case FormatJSON:
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return &jsonRenderer{encoder: encoder}, nil
	case FormatYAML:
		return &yamlRenderer{output: output}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

// tableRenderer prints one row per archive followed by a summary line.
type tableRenderer struct {
	output io.Writer
	styles Styles
	plain  bool
}

func (r *tableRenderer) style(name, text string) string {
	if r.plain {
		return text
	}
	return r.styles.Render(name, text)
}

func (r *tableRenderer) RenderReport(report *types.Report) error {
	view := NewReportView(report)

	if len(view.Results) == 0 {
		return r.RenderMessage("No archives to process.")
	}

	title := "Update results"
	if view.DryRun {
		title = "Planned updates (dry run)"
	}
	if _, err := fmt.Fprintln(r.output, r.style("Title", title)); err != nil {
		return err
	}

	data := pterm.TableData{{"Package", "Archive", "Action", "Config", "Details"}}
	for _, rv := range view.Results {
		data = append(data, []string{
			r.style("Package", displayName(rv)),
			r.style("Muted", archiveName(rv.Archive)),
			r.style(actionStyle(rv.Action), rv.Action),
			configNote(rv, view.DryRun),
			r.details(rv),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	if r.plain {
		table = pterm.RemoveColorFromString(table)
	}
	if _, err := fmt.Fprintln(r.output, table); err != nil {
		return err
	}

	_, err = fmt.Fprintln(r.output, r.style("Summary", summary(view)))
	return err
}

func (r *tableRenderer) details(rv ResultView) string {
	if rv.Error == nil {
		return ""
	}
	return fmt.Sprintf("%s at %s: %s", r.style("ErrorKind", rv.Error.Kind), rv.FailedAt, rv.Error.Message)
}

func (r *tableRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %v\n", r.style("Failed", "Error:"), err)
	return werr
}

func (r *tableRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

type jsonRenderer struct {
	encoder *json.Encoder
}

func (r *jsonRenderer) RenderReport(report *types.Report) error {
	return r.encoder.Encode(NewReportView(report))
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]interface{}{"error": newErrorView(err)})
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}

type yamlRenderer struct {
	output io.Writer
}

func (r *yamlRenderer) encode(v interface{}) error {
	encoder := yaml.NewEncoder(r.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

func (r *yamlRenderer) RenderReport(report *types.Report) error {
	return r.encode(NewReportView(report))
}

func (r *yamlRenderer) RenderError(err error) error {
	return r.encode(map[string]interface{}{"error": newErrorView(err)})
}

func (r *yamlRenderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}

func displayName(rv ResultView) string {
	if rv.Package != "" {
		return rv.Package
	}
	return "?"
}

func actionStyle(action string) string {
	switch action {
	case ActionInstalled:
		return "Installed"
	case ActionUpdated:
		return "Updated"
	case ActionFailed:
		return "Failed"
	default:
		return "Planned"
	}
}

func summary(view ReportView) string {
	var parts []string
	verb := "succeeded"
	if view.DryRun {
		verb = "ready"
	}
	parts = append(parts, fmt.Sprintf("%d %s", view.Succeeded, verb))
	if view.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", view.Failed))
	}
	return strings.Join(parts, ", ")
}
