package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const schemaBaseURL = "https://monogen.dev/schemas/"

// sharedSchemas are referenced by the per-kind schemas.
var sharedSchemas = []string{"base.schema.json", "platform.schema.json"}

var printer = message.NewPrinter(language.English)

// forbidden explains the base schema's "not" constraints by field.
var forbidden = map[string]string{
	"/name":        "must not contain consecutive hyphens",
	"/description": "must not contain */",
	"/directory":   "must not contain . or .. segments",
}

// Issue is a single constraint violation.
type Issue struct {
	Path    string `json:"path"`    // JSON pointer of the field, e.g. "/name"
	Message string `json:"message"` // Human-readable constraint description
	Keyword string `json:"keyword"` // Schema keyword that failed, e.g. "pattern"
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Error is returned when a request fails its kind's schema.
type Error struct {
	Kind   library.Kind
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("invalid %s request: %s", e.Kind, strings.Join(parts, "; "))
}

// Registry holds the compiled schema for every library kind.
type Registry struct {
	once    sync.Once
	schemas map[library.Kind]*jsonschema.Schema
	err     error
}

// NewRegistry returns a registry that compiles its schemas on first use.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) compile() {
	r.once.Do(func() {
		c := jsonschema.NewCompiler()
		for _, name := range append(append([]string{}, sharedSchemas...), kindSchemaFiles()...) {
			data, err := schemaFS.ReadFile("schemas/" + name)
			if err != nil {
				r.err = fmt.Errorf("reading schema %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				r.err = fmt.Errorf("unmarshaling schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(schemaBaseURL+name, doc); err != nil {
				r.err = fmt.Errorf("adding schema resource %s: %w", name, err)
				return
			}
		}

		r.schemas = make(map[library.Kind]*jsonschema.Schema, len(library.Kinds))
		for _, k := range library.Kinds {
			sch, err := c.Compile(schemaBaseURL + schemaFile(k))
			if err != nil {
				r.err = fmt.Errorf("compiling %s schema: %w", k, err)
				return
			}
			r.schemas[k] = sch
		}
	})
}

func schemaFile(k library.Kind) string {
	return string(k) + ".schema.json"
}

func kindSchemaFiles() []string {
	files := make([]string, len(library.Kinds))
	for i, k := range library.Kinds {
		files[i] = schemaFile(k)
	}
	return files
}

// Decode validates input against the schema for k and converts it to a
// Request. Constraint violations return *Error; an error of any other type
// means the schemas themselves could not be loaded.
func (r *Registry) Decode(k library.Kind, input map[string]any) (library.Request, error) {
	r.compile()
	if r.err != nil {
		return library.Request{}, fmt.Errorf("loading schemas: %w", r.err)
	}
	sch, ok := r.schemas[k]
	if !ok {
		return library.Request{}, &Error{Kind: k, Issues: []Issue{{
			Message: fmt.Sprintf("unknown library kind %q", k),
			Keyword: "kind",
		}}}
	}

	if input == nil {
		input = map[string]any{}
	}
	jsonData, err := json.Marshal(input)
	if err != nil {
		return library.Request{}, &Error{Kind: k, Issues: []Issue{{
			Message: fmt.Sprintf("request is not JSON-compatible: %v", err),
			Keyword: "type",
		}}}
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return library.Request{}, fmt.Errorf("preparing request for validation: %w", err)
	}

	if err := sch.Validate(inst); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return library.Request{}, fmt.Errorf("unexpected validation error type: %w", err)
		}
		return library.Request{}, &Error{Kind: k, Issues: extractIssues(ve)}
	}

	req, err := toRequest(k, jsonData)
	if err != nil {
		return library.Request{}, err
	}
	if issues := checkVersion(req.Version); len(issues) > 0 {
		return library.Request{}, &Error{Kind: k, Issues: issues}
	}
	if req.Version == "" {
		req.Version = library.DefaultVersion
	}
	return req, nil
}

// wireRequest mirrors the schema's JSON shape.
type wireRequest struct {
	library.Request
	Tags string `json:"tags"`
}

func toRequest(k library.Kind, jsonData []byte) (library.Request, error) {
	var w wireRequest
	if err := json.Unmarshal(jsonData, &w); err != nil {
		return library.Request{}, fmt.Errorf("decoding validated request: %w", err)
	}
	req := w.Request
	req.Kind = k
	req.Tags = library.SplitTags(w.Tags)
	return req, nil
}

func checkVersion(v string) []Issue {
	if v == "" {
		return nil
	}
	if _, err := semver.StrictNewVersion(v); err != nil {
		return []Issue{{
			Path:    "/version",
			Message: fmt.Sprintf("%q is not a semantic version: %v", v, err),
			Keyword: "format",
		}}
	}
	return nil
}

// extractIssues walks the ValidationError tree and returns leaf issues,
// deduplicated.
func extractIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}
	return deduplicateIssues(issues)
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	// unevaluatedProperties: false reports each unknown field as a false
	// schema at the field's own location.
	if _, ok := ve.ErrorKind.(*kind.FalseSchema); ok {
		*issues = append(*issues, Issue{Path: path, Message: "is not a recognised field", Keyword: "unevaluatedProperties"})
		return
	}

	keyword := ""
	msg := ""
	if ve.ErrorKind != nil {
		if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
			keyword = kwPath[len(kwPath)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}

	// Container keywords only group their causes.
	if keyword == "allOf" || keyword == "$ref" || keyword == "" {
		return
	}

	if keyword == "not" {
		if m, ok := forbidden[path]; ok {
			msg = m
		}
	}

	if req, ok := ve.ErrorKind.(*kind.Required); ok {
		for _, missing := range req.Missing {
			*issues = append(*issues, Issue{Path: path + "/" + missing, Message: "is required", Keyword: keyword})
		}
		return
	}

	*issues = append(*issues, Issue{Path: path, Message: msg, Keyword: keyword})
}

func deduplicateIssues(issues []Issue) []Issue {
	seen := make(map[string]bool)
	var result []Issue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
