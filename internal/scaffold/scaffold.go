package scaffold

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"text/template"

	"github.com/monogen-dev/monogen/internal/fsys"
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/metadata"
	"github.com/monogen-dev/monogen/internal/workspace"
)

//go:embed files/*.tmpl
var filesFS embed.FS

// Files lists the generated infrastructure files in write order.
var Files = []string{
	"package.json",
	"tsconfig.json",
	"tsconfig.lib.json",
	"tsconfig.spec.json",
	"project.json",
	"README.md",
}

// baseConfigName is the shared compiler config most JS monorepos keep at
// the workspace root.
const baseConfigName = "tsconfig.base.json"

var tmpl = template.Must(template.New("scaffold").Funcs(template.FuncMap{
	"json": toJSON,
}).ParseFS(filesFS, "files/*.tmpl"))

// Dependency is one runtime dependency of a generated package.
type Dependency struct {
	Name    string
	Version string
}

// Data holds every value the infrastructure templates read.
type Data struct {
	Lib          metadata.Library
	Nx           bool
	Runner       string
	BaseConfig   string
	Condition    string
	OutDir       string
	TSLib        []string
	Types        []string
	SpecTypes    []string
	Dependencies []Dependency
	Notes        []string
}

// NewData derives template data for lib. baseConfig is the workspace-root
// compiler config to extend, or "" when the workspace has none.
func NewData(lib metadata.Library, req library.Request, ws workspace.Context, baseConfig string) Data {
	d := Data{
		Lib:       lib,
		Nx:        ws.Type == workspace.TypeNx,
		Runner:    runner(ws.PackageManager),
		Condition: exportCondition(lib.Platform),
		OutDir:    lib.OffsetFromRoot + "dist/out-tsc",
		TSLib:     []string{"es2022"},
		Types:     []string{},
		SpecTypes: []string{"vitest/globals"},
		Notes:     notes(lib, req, ws),
	}
	if baseConfig != "" {
		d.BaseConfig = lib.OffsetFromRoot + baseConfig
	}
	if lib.Platform.IncludesDOM() {
		d.TSLib = append(d.TSLib, "dom", "dom.iterable")
	}
	if lib.Platform == library.PlatformNode || lib.Platform == library.PlatformUniversal {
		d.Types = append(d.Types, "node")
		d.SpecTypes = append(d.SpecTypes, "node")
	}
	d.Dependencies = dependencies(lib, req)
	return d
}

// Generate writes the infrastructure files for lib under its project root
// and returns the paths written, relative to the workspace root.
func Generate(fs fsys.Adapter, lib metadata.Library, req library.Request, ws workspace.Context) ([]string, error) {
	if err := fs.EnsureDir(lib.ProjectRoot); err != nil {
		return nil, fmt.Errorf("creating project root: %w", err)
	}

	baseConfig := ""
	hasBase, err := fs.Exists(baseConfigName)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", baseConfigName, err)
	}
	if hasBase {
		baseConfig = baseConfigName
	}
	data := NewData(lib, req, ws, baseConfig)

	var written []string
	for _, name := range Files {
		content, err := render(name, data, ws)
		if err != nil {
			return written, err
		}
		p := path.Join(lib.ProjectRoot, name)
		if err := fs.Write(p, content); err != nil {
			return written, fmt.Errorf("writing %s: %w", name, err)
		}
		written = append(written, p)
	}
	return written, nil
}

func render(name string, data Data, ws workspace.Context) (string, error) {
	if name == "project.json" {
		return ProjectJSON(NewProjectConfig(data.Lib, ws))
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func runner(pm workspace.PackageManager) string {
	switch pm {
	case workspace.PackageManagerPnpm:
		return "pnpm exec"
	case workspace.PackageManagerYarn:
		return "yarn"
	default:
		return "npx"
	}
}

// exportCondition is the package.json export condition that selects the
// platform build, or "" when the default condition is enough.
func exportCondition(p library.Platform) string {
	switch p {
	case library.PlatformNode:
		return "node"
	case library.PlatformBrowser:
		return "browser"
	case library.PlatformEdge:
		return "worker"
	default:
		return ""
	}
}

func dependencies(lib metadata.Library, req library.Request) []Dependency {
	deps := []Dependency{{Name: "effect", Version: "^3.10.0"}}
	switch lib.LibraryType {
	case library.KindContract:
		if req.IncludeRPC {
			deps = append(deps, Dependency{Name: "@effect/rpc", Version: "^0.51.0"})
		}
	case library.KindDataAccess:
		deps = append(deps, Dependency{Name: lib.Scope + "/contract-" + req.Contract(), Version: "workspace:*"})
	case library.KindFeature:
		if req.IncludeRPC {
			deps = append(deps, Dependency{Name: "@effect/rpc", Version: "^0.51.0"})
		}
		if req.IncludeClientServer {
			deps = append(deps, Dependency{Name: "react", Version: "^18.3.0"})
		}
	}
	deps = append(deps, Dependency{Name: "tslib", Version: "^2.3.0"})
	return deps
}

func notes(lib metadata.Library, req library.Request, ws workspace.Context) []string {
	var out []string
	switch lib.LibraryType {
	case library.KindContract:
		if req.IncludeCQRS {
			out = append(out, "Commands and queries are declared in `src/lib/commands.ts` and `src/lib/queries.ts`.")
		}
		if req.IncludeRPC {
			out = append(out, "RPC request schemas live in `src/lib/rpc.ts`.")
		}
	case library.KindDataAccess:
		out = append(out, fmt.Sprintf("Implements the repository port from `%s/contract-%s`.", ws.Scope, req.Contract()))
	case library.KindFeature:
		if req.IncludeClientServer {
			out = append(out, "Client hooks are exported from `src/lib/client/hooks.ts`.")
		}
	case library.KindProvider:
		out = append(out, fmt.Sprintf("Wraps the %s SDK behind an Effect service.", req.ExternalService))
	case library.KindInfra:
		out = append(out, fmt.Sprintf("Provides the %s infrastructure service.", req.InfraType))
	}
	return out
}
