package workspace

// Type classifies the workspace layout.
type Type string

// Type constants.
const (
	TypeNx         Type = "nx"
	TypeStandalone Type = "standalone"
)

// PackageManager is the JavaScript package manager the workspace uses.
type PackageManager string

// PackageManager constants.
const (
	PackageManagerPnpm PackageManager = "pnpm"
	PackageManagerYarn PackageManager = "yarn"
	PackageManagerNpm  PackageManager = "npm"
)

// InterfaceType names the front end a request arrived through.
type InterfaceType string

// InterfaceType constants.
const (
	InterfaceCLI         InterfaceType = "cli"
	InterfaceToolServer  InterfaceType = "tool-protocol"
	InterfaceBuildPlugin InterfaceType = "build-plugin"
)

// Context describes a detected workspace. It is computed once per request
// and never mutated.
type Context struct {
	Root           string         `json:"root"`
	Type           Type           `json:"type"`
	Scope          string         `json:"scope"`
	PackageManager PackageManager `json:"packageManager"`
	InterfaceType  InterfaceType  `json:"interfaceType"`
	LibrariesRoot  string         `json:"librariesRoot"`
	// ToolVersion is the nx version declared in the root package.json,
	// empty when the workspace does not depend on nx.
	ToolVersion string `json:"toolVersion,omitempty"`
}
