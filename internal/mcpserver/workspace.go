package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/afero"

	"github.com/monogen-dev/monogen/internal/output"
	"github.com/monogen-dev/monogen/internal/workspace"
)

// workspaceTools serves the read-only workspace queries.
type workspaceTools struct {
	detector  *workspace.Detector
	tree      afero.Fs
	startPath string
}

func newWorkspaceTools(d *workspace.Detector, tree afero.Fs, start string) *workspaceTools {
	return &workspaceTools{detector: d, tree: tree, startPath: start}
}

func (w *workspaceTools) detectDefinition() mcp.Tool {
	return mcp.NewTool("detect_workspace",
		mcp.WithDescription("Detect the monorepo root, layout, npm scope and package manager."),
		mcp.WithString("path",
			mcp.Description("Directory to start from (default: the server's working directory)"),
		),
	)
}

func (w *workspaceTools) listDefinition() mcp.Tool {
	return mcp.NewTool("list_libraries",
		mcp.WithDescription("List the libraries already generated in the workspace, grouped by kind."),
		mcp.WithString("path",
			mcp.Description("Directory to start from (default: the server's working directory)"),
		),
	)
}

func (w *workspaceTools) handleDetect(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, ws, err := w.detect(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := output.JSON(ws)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (w *workspaceTools) handleList(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fs, ws, err := w.detect(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	libs, err := workspace.ListLibraries(fs, ws)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(libs) == 0 {
		return mcp.NewToolResultText("No libraries under " + ws.LibrariesRoot), nil
	}
	text, err := output.JSON(libs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (w *workspaceTools) detect(path string) (afero.Fs, *workspace.Context, error) {
	if path == "" {
		path = w.startPath
	}
	fs := w.tree
	if fs == nil {
		fs = afero.NewOsFs()
		if path == "" {
			path = "."
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		path = abs
	} else if path == "" {
		path = "/"
	}
	ws, err := w.detector.Detect(fs, path, workspace.InterfaceToolServer)
	if err != nil {
		return nil, nil, err
	}
	return fs, ws, nil
}
