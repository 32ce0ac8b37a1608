package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/monogen-dev/monogen/internal/generator"
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/output"
)

// Runner executes one generation request.
type Runner interface {
	Run(ctx context.Context, k library.Kind, input map[string]any) (*generator.Outcome, error)
}

// CreateTool handles create_<kind>_library.
type CreateTool struct {
	kind   library.Kind
	runner Runner
}

// NewCreateTool creates the tool for kind k.
func NewCreateTool(k library.Kind, r Runner) *CreateTool {
	return &CreateTool{kind: k, runner: r}
}

// ToolName returns the tool name for kind k, e.g. create_data_access_library.
func ToolName(k library.Kind) string {
	return "create_" + strings.ReplaceAll(string(k), "-", "_") + "_library"
}

// Definition returns the MCP tool definition.
func (t *CreateTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(fmt.Sprintf(
			"Create a %s library in the current workspace. Fails without writing if the library already exists.",
			t.kind.Label())),
	}
	for _, f := range library.Fields(t.kind) {
		props := []mcp.PropertyOption{mcp.Description(f.Description)}
		if f.Required {
			props = append(props, mcp.Required())
		}
		switch f.Type {
		case library.FieldBool:
			opts = append(opts, mcp.WithBoolean(f.Name, props...))
		default:
			if len(f.Enum) > 0 {
				props = append(props, mcp.Enum(f.Enum...))
			}
			opts = append(opts, mcp.WithString(f.Name, props...))
		}
	}
	return mcp.NewTool(ToolName(t.kind), opts...)
}

// Handle runs the generator with the call's arguments. Unknown or
// malformed arguments come back as validation issues.
func (t *CreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := make(map[string]any, len(req.GetArguments()))
	for k, v := range req.GetArguments() {
		input[k] = v
	}

	out, err := t.runner.Run(ctx, t.kind, input)
	if err != nil {
		return mcp.NewToolResultError(output.Text(output.FromError(err), false)), nil
	}
	return mcp.NewToolResultText(output.Text(output.FromOutcome(out), false)), nil
}
