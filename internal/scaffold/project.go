package scaffold

import (
	"encoding/json"
	"fmt"

	"github.com/monogen-dev/monogen/internal/metadata"
	"github.com/monogen-dev/monogen/internal/workspace"
)

// Target is one runnable project target in an nx workspace.
type Target struct {
	Executor string            `json:"executor"`
	Outputs  []string          `json:"outputs,omitempty"`
	Options  map[string]string `json:"options,omitempty"`
}

// ProjectConfig is the project descriptor written to project.json.
type ProjectConfig struct {
	Schema      string            `json:"$schema,omitempty"`
	Name        string            `json:"name"`
	SourceRoot  string            `json:"sourceRoot"`
	ProjectType string            `json:"projectType"`
	Tags        []string          `json:"tags"`
	Targets     map[string]Target `json:"targets,omitempty"`
}

// NewProjectConfig builds the descriptor for lib. Targets are only
// declared for nx workspaces.
func NewProjectConfig(lib metadata.Library, ws workspace.Context) ProjectConfig {
	cfg := ProjectConfig{
		Name:        lib.ProjectName,
		SourceRoot:  lib.SourceRoot,
		ProjectType: "library",
		Tags:        lib.Tags,
	}
	if ws.Type != workspace.TypeNx {
		return cfg
	}

	cfg.Schema = lib.OffsetFromRoot + "node_modules/nx/schemas/project-schema.json"
	cfg.Targets = map[string]Target{
		"build": {
			Executor: "@nx/js:tsc",
			Outputs:  []string{"{options.outputPath}"},
			Options: map[string]string{
				"outputPath": lib.DistRoot,
				"main":       lib.SourceRoot + "/index.ts",
				"tsConfig":   lib.ProjectRoot + "/tsconfig.lib.json",
			},
		},
		"test": {
			Executor: "@nx/vite:test",
			Outputs:  []string{"{workspaceRoot}/coverage/" + lib.ProjectRoot},
		},
		"lint": {
			Executor: "@nx/eslint:lint",
		},
	}
	return cfg
}

// ProjectJSON renders cfg the way it is stored on disk.
func ProjectJSON(cfg ProjectConfig) (string, error) {
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding project.json: %w", err)
	}
	return string(b) + "\n", nil
}
