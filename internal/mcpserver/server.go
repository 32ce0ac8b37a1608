package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/monogen-dev/monogen/internal/branding"
	"github.com/monogen-dev/monogen/internal/config"
	"github.com/monogen-dev/monogen/internal/generator"
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/workspace"
)

// Options configures the server.
type Options struct {
	Version  string
	Settings config.Settings
	Logger   *zap.Logger
	// Tree replaces the real disk. Tests use an in-memory tree.
	Tree afero.Fs
	// StartPath is where detection starts when a call names no
	// workspaceRoot.
	StartPath string
}

// New creates the MCP server with every tool registered.
func New(opts Options) *server.MCPServer {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Settings.Scope == "" {
		opts.Settings.Scope = branding.DefaultScope()
	}
	detector := workspace.NewDetector(opts.Settings.Scope, opts.Settings.LibrariesRoot)

	s := server.NewMCPServer(
		branding.MCPServerName(),
		opts.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions()),
	)

	exec := generator.New(generator.Options{
		Interface: workspace.InterfaceToolServer,
		Tree:      opts.Tree,
		StartPath: opts.StartPath,
		Detector:  detector,
		Logger:    opts.Logger.Named("mcp"),
	})
	for _, k := range library.Kinds {
		tool := NewCreateTool(k, exec)
		s.AddTool(tool.Definition(), tool.Handle)
	}

	ws := newWorkspaceTools(detector, opts.Tree, opts.StartPath)
	s.AddTool(ws.detectDefinition(), ws.handleDetect)
	s.AddTool(ws.listDefinition(), ws.handleList)

	return s
}

// Serve runs s over stdin and stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func instructions() string {
	return `Monogen scaffolds TypeScript libraries inside a JavaScript monorepo.

Library kinds, in dependency order:
- contract: domain errors, ports, events and optional CQRS/RPC schemas
- data-access: repository implementation of a contract
- feature: server service, layers and optional RPC handlers and client hooks
- provider: wrapper around an external service SDK
- infra: cross-cutting infrastructure (cache, database, logging, messaging, storage, metrics)

Use detect_workspace first to confirm the workspace root and npm scope.
Pass dryRun=true to preview files before writing. Generation never
overwrites an existing library directory.`
}
