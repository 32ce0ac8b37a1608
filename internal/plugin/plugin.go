package plugin

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/monogen-dev/monogen/internal/config"
	"github.com/monogen-dev/monogen/internal/generator"
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/workspace"
)

// Host receives each generated project so it can be added to the build
// graph.
type Host interface {
	generator.Registrar
}

// Task is what a generator hands back to the host.
type Task struct {
	Outcome *generator.Outcome
	// Next lists shell commands the host should run after committing the
	// tree. Empty for dry runs.
	Next []string
}

// GeneratorFunc generates one library into tree.
type GeneratorFunc func(tree afero.Fs, options map[string]any) (Task, error)

type options struct {
	host          Host
	logger        *zap.Logger
	configPath    string
	scope         string
	librariesRoot string
}

// Option customizes Generator.
type Option func(*options)

// WithHost registers generated projects with h.
func WithHost(h Host) Option { return func(o *options) { o.host = h } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

// WithConfigFile reads user settings from path instead of the default
// config file.
func WithConfigFile(path string) Option { return func(o *options) { o.configPath = path } }

// WithScope sets the npm scope used when the root package.json has none,
// overriding the configured scope.
func WithScope(scope string) Option { return func(o *options) { o.scope = scope } }

// WithLibrariesRoot overrides libraries root detection and the configured
// libraries root.
func WithLibrariesRoot(dir string) Option { return func(o *options) { o.librariesRoot = dir } }

// Generator returns the generator for kind k. Scope and libraries root come
// from the user config, as for the CLI and MCP server, unless set by
// options.
func Generator(k library.Kind, opts ...Option) GeneratorFunc {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return func(tree afero.Fs, input map[string]any) (Task, error) {
		detector, err := o.detector()
		if err != nil {
			return Task{}, err
		}
		gopts := generator.Options{
			Interface: workspace.InterfaceBuildPlugin,
			Tree:      tree,
			Detector:  detector,
			Logger:    o.logger.Named("plugin"),
		}
		if o.host != nil {
			gopts.Registrar = o.host
		}

		out, err := generator.New(gopts).Run(context.Background(), k, input)
		if err != nil {
			return Task{}, err
		}
		task := Task{Outcome: out}
		if !out.DryRun() {
			task.Next = []string{installCommand(out.Workspace.PackageManager)}
		}
		return task, nil
	}
}

// Collection returns a generator per kind, keyed by kind name, for hosts
// that register generators by name.
func Collection(opts ...Option) map[string]GeneratorFunc {
	c := make(map[string]GeneratorFunc, len(library.Kinds))
	for _, k := range library.Kinds {
		c[string(k)] = Generator(k, opts...)
	}
	return c
}

// detector applies explicit options over the configured settings. Settings
// are read per call so config edits reach a long-lived host.
func (o options) detector() (*workspace.Detector, error) {
	scope, root := o.scope, o.librariesRoot
	if scope == "" || root == "" {
		store, err := config.Load(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		st := store.Settings()
		if scope == "" {
			scope = st.Scope
		}
		if root == "" {
			root = st.LibrariesRoot
		}
	}
	return workspace.NewDetector(scope, root), nil
}

func installCommand(pm workspace.PackageManager) string {
	switch pm {
	case workspace.PackageManagerPnpm:
		return "pnpm install"
	case workspace.PackageManagerYarn:
		return "yarn install"
	default:
		return "npm install"
	}
}
