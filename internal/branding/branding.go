// Package branding provides compile-time identity values for the CLI.
//
// Values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Forks change the YAML, not the code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	DefaultScope  string `yaml:"default_scope"`
	MCPServerName string `yaml:"mcp_server_name"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:       "monogen",
			DisplayName:   "Monogen",
			Description:   "Library scaffolding generator for JavaScript monorepos",
			HomeDir:       ".monogen",
			EnvPrefix:     "MONOGEN",
			DefaultScope:  "@workspace",
			MCPServerName: "monogen",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "monogen").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".monogen").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "MONOGEN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// DefaultScope returns the npm scope used when the workspace root
// package.json is not scoped.
func DefaultScope() string { load(); return defaults.DefaultScope }

// MCPServerName returns the name advertised by the MCP server.
func MCPServerName() string { load(); return defaults.MCPServerName }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("scope") → "MONOGEN_SCOPE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
