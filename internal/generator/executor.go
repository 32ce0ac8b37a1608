package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/monogen-dev/monogen/internal/branding"
	"github.com/monogen-dev/monogen/internal/fsys"
	"github.com/monogen-dev/monogen/internal/kinds"
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/metadata"
	"github.com/monogen-dev/monogen/internal/scaffold"
	"github.com/monogen-dev/monogen/internal/validation"
	"github.com/monogen-dev/monogen/internal/workspace"
)

// Validator decodes raw request fields for a kind.
type Validator interface {
	Decode(k library.Kind, input map[string]any) (library.Request, error)
}

// Detector locates the workspace a request targets.
type Detector interface {
	Detect(fs afero.Fs, startPath string, iface workspace.InterfaceType) (*workspace.Context, error)
}

// Registrar receives generated projects. Build-tool hosts implement it to
// add the project to their graph.
type Registrar interface {
	RegisterProject(lib metadata.Library, cfg scaffold.ProjectConfig) error
}

// Options configures an Executor. Zero values pick defaults.
type Options struct {
	// Interface names the calling front end.
	Interface workspace.InterfaceType
	// Tree is the virtual tree to generate into. Nil means the real disk.
	Tree afero.Fs
	// StartPath is where detection starts when the request has no
	// workspaceRoot. Defaults to "." on disk and "/" on a tree.
	StartPath string

	Validator Validator
	Detector  Detector
	Registrar Registrar
	Logger    *zap.Logger
}

// Executor runs generation requests. It holds no per-request state and
// may be reused.
type Executor struct {
	opts Options
}

// New returns an Executor.
func New(opts Options) *Executor {
	if opts.Validator == nil {
		opts.Validator = validation.NewRegistry()
	}
	if opts.Detector == nil {
		opts.Detector = workspace.NewDetector(branding.DefaultScope(), "")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Interface == "" {
		opts.Interface = workspace.InterfaceCLI
	}
	return &Executor{opts: opts}
}

// Result describes a generated library.
type Result struct {
	ProjectName    string   `json:"projectName"`
	ProjectRoot    string   `json:"projectRoot"`
	PackageName    string   `json:"packageName"`
	SourceRoot     string   `json:"sourceRoot"`
	FilesGenerated []string `json:"filesGenerated"`
}

// Preview describes what a dry run would have written.
type Preview struct {
	ProjectName string             `json:"projectName"`
	ProjectRoot string             `json:"projectRoot"`
	PackageName string             `json:"packageName"`
	Files       []fsys.PlannedFile `json:"files"`
}

// Outcome is the product of a successful run. Exactly one of Result and
// Preview is set.
type Outcome struct {
	Result    *Result           `json:"result,omitempty"`
	Preview   *Preview          `json:"preview,omitempty"`
	Library   metadata.Library  `json:"library"`
	Workspace workspace.Context `json:"workspace"`
}

// DryRun reports whether the outcome is a preview.
func (o *Outcome) DryRun() bool { return o.Preview != nil }

// run carries one request through the stages.
type run struct {
	*Executor
	ctx     context.Context
	kind    library.Kind
	log     *zap.Logger
	tracker *fsys.Tracker
}

// Run executes the pipeline for one request.
func (e *Executor) Run(ctx context.Context, k library.Kind, input map[string]any) (*Outcome, error) {
	r := &run{
		Executor: e,
		ctx:      ctx,
		kind:     k,
		log:      e.opts.Logger.With(zap.String("kind", string(k)), zap.String("interface", string(e.opts.Interface))),
	}
	return r.execute(input)
}

func (r *run) execute(input map[string]any) (*Outcome, error) {
	var req library.Request
	if err := r.stage(StageValidate, func() (err error) {
		req, err = r.opts.Validator.Decode(r.kind, input)
		return err
	}); err != nil {
		return nil, err
	}

	var ws *workspace.Context
	if err := r.stage(StageDetect, func() (err error) {
		ws, err = r.detect(req)
		return err
	}); err != nil {
		return nil, err
	}

	var plan *fsys.Plan
	if err := r.stage(StageAdapter, func() error {
		var base fsys.Adapter
		if r.opts.Tree != nil {
			base = fsys.NewVirtual(r.opts.Tree, ws.Root)
		} else {
			base = fsys.NewDisk(ws.Root)
		}
		if req.DryRun {
			plan = fsys.DryRun(base)
			base = plan
		}
		r.tracker = fsys.Track(base)
		return nil
	}); err != nil {
		return nil, err
	}

	var lib metadata.Library
	if err := r.stage(StageMetadata, func() error {
		lib = metadata.Compute(metadata.InputFrom(req), *ws)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.stage(StageCheckRoot, func() error {
		exists, err := r.tracker.Exists(lib.ProjectRoot)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%s: %w", lib.ProjectRoot, ErrProjectExists)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.stage(StageInfrastructure, func() error {
		_, err := scaffold.Generate(r.tracker, lib, req, *ws)
		return err
	}); err != nil {
		return nil, err
	}

	if err := r.stageLabelled(StageLibrary, fmt.Sprintf("generate %s library", r.kind), func() error {
		g, err := kinds.For(r.kind)
		if err != nil {
			return err
		}
		_, err = g.Generate(r.tracker, lib, req)
		return err
	}); err != nil {
		return nil, err
	}

	if r.opts.Registrar != nil && !req.DryRun {
		if err := r.stage(StageRegister, func() error {
			return r.opts.Registrar.RegisterProject(lib, scaffold.NewProjectConfig(lib, *ws))
		}); err != nil {
			return nil, err
		}
	}

	out := &Outcome{Library: lib, Workspace: *ws}
	if plan != nil {
		out.Preview = &Preview{
			ProjectName: lib.ProjectName,
			ProjectRoot: lib.ProjectRoot,
			PackageName: lib.PackageName,
			Files:       plan.Files(),
		}
		r.log.Info("dry run complete",
			zap.String("project", lib.ProjectName),
			zap.Int("files", len(out.Preview.Files)))
		return out, nil
	}

	out.Result = &Result{
		ProjectName:    lib.ProjectName,
		ProjectRoot:    lib.ProjectRoot,
		PackageName:    lib.PackageName,
		SourceRoot:     lib.SourceRoot,
		FilesGenerated: r.tracker.Written(),
	}
	r.log.Info("library generated",
		zap.String("project", lib.ProjectName),
		zap.String("root", lib.ProjectRoot),
		zap.Int("files", len(out.Result.FilesGenerated)))
	return out, nil
}

func (r *run) stage(s Stage, fn func() error) error {
	return r.stageLabelled(s, string(s), fn)
}

// stageLabelled runs fn as stage s. label prefixes the error message.
func (r *run) stageLabelled(s Stage, label string, fn func() error) error {
	if err := r.ctx.Err(); err != nil {
		return r.fail(s, label, err)
	}
	r.log.Debug("stage started", zap.String("stage", label))
	if err := fn(); err != nil {
		return r.fail(s, label, err)
	}
	return nil
}

func (r *run) fail(s Stage, label string, err error) error {
	var written []string
	if r.tracker != nil {
		written = r.tracker.Written()
	}
	r.log.Warn("stage failed",
		zap.String("stage", label),
		zap.Error(err),
		zap.Strings("filesWritten", written))
	return newExecutionError(s, label, err, written)
}

func (r *run) detect(req library.Request) (*workspace.Context, error) {
	start := req.WorkspaceRoot
	if start == "" {
		start = r.opts.StartPath
	}

	fs := r.opts.Tree
	if fs == nil {
		fs = afero.NewOsFs()
		if start == "" {
			start = "."
		}
		abs, err := filepath.Abs(start)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", start, err)
		}
		start = abs
	} else if start == "" {
		start = "/"
	}
	return r.opts.Detector.Detect(fs, start, r.opts.Interface)
}
