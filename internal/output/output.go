package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/monogen-dev/monogen/internal/generator"
	"github.com/monogen-dev/monogen/internal/validation"
	"github.com/monogen-dev/monogen/internal/workspace"
)

// Response is the front-end view of one request.
type Response struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Result  *generator.Result  `json:"result,omitempty"`
	Preview *generator.Preview `json:"preview,omitempty"`
	Error   *ErrorDetail       `json:"error,omitempty"`
}

// ErrorDetail carries the structured parts of a failure.
type ErrorDetail struct {
	Stage        string             `json:"stage,omitempty"`
	Issues       []validation.Issue `json:"issues,omitempty"`
	FilesWritten []string           `json:"filesWritten,omitempty"`
}

// FromOutcome describes a successful run.
func FromOutcome(out *generator.Outcome) Response {
	kind := out.Library.LibraryType
	if out.Preview != nil {
		return Response{
			Success: true,
			Message: fmt.Sprintf("Dry run: would create %s library %s at %s (%d files)",
				kind, out.Preview.PackageName, out.Preview.ProjectRoot, len(out.Preview.Files)),
			Preview: out.Preview,
		}
	}
	return Response{
		Success: true,
		Message: fmt.Sprintf("Created %s library %s at %s (%d files)",
			kind, out.Result.PackageName, out.Result.ProjectRoot, len(out.Result.FilesGenerated)),
		Result: out.Result,
	}
}

// FromError describes a failed run.
func FromError(err error) Response {
	resp := Response{Message: err.Error()}

	var execErr *generator.ExecutionError
	if errors.As(err, &execErr) {
		resp.Error = &ErrorDetail{
			Stage:        string(execErr.Stage),
			FilesWritten: execErr.FilesWritten,
		}
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		if resp.Error == nil {
			resp.Error = &ErrorDetail{}
		}
		resp.Error.Issues = verr.Issues
	}
	return resp
}

// Text renders resp for a terminal. Color is forced on or off regardless
// of whether the output is a TTY.
func Text(resp Response, useColor bool) string {
	ok := newColor(useColor, color.FgGreen, color.Bold)
	fail := newColor(useColor, color.FgRed, color.Bold)
	head := newColor(useColor, color.Bold)
	dim := newColor(useColor, color.FgHiBlack)

	var b strings.Builder
	if resp.Success {
		ok.Fprint(&b, "✓ ")
	} else {
		fail.Fprint(&b, "✗ ")
	}
	b.WriteString(resp.Message + "\n")

	switch {
	case resp.Result != nil:
		fmt.Fprintf(&b, "  source root: %s\n", resp.Result.SourceRoot)
		b.WriteString("\n")
		head.Fprint(&b, "  Files:\n")
		for _, f := range resp.Result.FilesGenerated {
			fmt.Fprintf(&b, "    %s\n", f)
		}
	case resp.Preview != nil:
		b.WriteString("\n")
		head.Fprint(&b, "  Planned files:\n")
		for _, f := range resp.Preview.Files {
			fmt.Fprintf(&b, "    %s ", f.Path)
			dim.Fprintf(&b, "(%d bytes)", f.Bytes)
			b.WriteString("\n")
		}
	}

	if d := resp.Error; d != nil {
		if len(d.Issues) > 0 {
			b.WriteString("\n")
			head.Fprint(&b, "  Issues:\n")
			for _, issue := range d.Issues {
				fmt.Fprintf(&b, "    %s\n", issue.String())
			}
		}
		if len(d.FilesWritten) > 0 {
			b.WriteString("\n")
			head.Fprint(&b, "  Files written before the failure:\n")
			for _, f := range d.FilesWritten {
				fmt.Fprintf(&b, "    %s\n", f)
			}
		}
	}
	return b.String()
}

// Workspace renders a detected workspace for `monogen detect`.
func Workspace(ws *workspace.Context, useColor bool) string {
	key := newColor(useColor, color.FgCyan)
	rows := []struct{ k, v string }{
		{"root", ws.Root},
		{"type", string(ws.Type)},
		{"scope", ws.Scope},
		{"package manager", string(ws.PackageManager)},
		{"libraries root", ws.LibrariesRoot},
	}
	if ws.ToolVersion != "" {
		rows = append(rows, struct{ k, v string }{"nx", ws.ToolVersion})
	}

	var b strings.Builder
	for _, r := range rows {
		key.Fprintf(&b, "%-16s", r.k)
		b.WriteString(" " + r.v + "\n")
	}
	return b.String()
}

// JSON renders v, usually a Response, as indented JSON.
func JSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding response: %w", err)
	}
	return string(data) + "\n", nil
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
