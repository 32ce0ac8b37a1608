package library

import (
	"fmt"
	"strings"
)

// Kind is a category of generated package with its own template set.
type Kind string

// Kind constants double as directory names under the libraries root.
const (
	KindContract   Kind = "contract"
	KindDataAccess Kind = "data-access"
	KindFeature    Kind = "feature"
	KindProvider   Kind = "provider"
	KindInfra      Kind = "infra"
)

// Kinds lists every kind in presentation order.
var Kinds = []Kind{
	KindContract,
	KindDataAccess,
	KindFeature,
	KindProvider,
	KindInfra,
}

// ParseKind converts a user-supplied string to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown library kind %q (valid: %s)", s, strings.Join(KindNames(), ", "))
}

// KindNames returns the kinds as strings.
func KindNames() []string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return names
}

// Label returns the human-readable noun used in descriptions, e.g. "data access".
func (k Kind) Label() string {
	return strings.ReplaceAll(string(k), "-", " ")
}

// HasPlatform reports whether requests of this kind accept a platform.
func (k Kind) HasPlatform() bool {
	return k == KindFeature || k == KindProvider || k == KindInfra
}

// DefaultPlatform is the platform assumed when a request leaves it unset.
// Kinds without a platform return "".
func (k Kind) DefaultPlatform() Platform {
	if k.HasPlatform() {
		return PlatformNode
	}
	return ""
}

// Platform is the runtime a generated library targets.
type Platform string

// Platform constants.
const (
	PlatformNode      Platform = "node"
	PlatformBrowser   Platform = "browser"
	PlatformUniversal Platform = "universal"
	PlatformEdge      Platform = "edge"
)

// IncludesDOM reports whether the platform needs DOM typings.
func (p Platform) IncludesDOM() bool {
	return p == PlatformBrowser || p == PlatformUniversal
}

// InfraType selects the infrastructure concern an infra library wraps.
type InfraType string

// InfraType constants.
const (
	InfraCache     InfraType = "cache"
	InfraDatabase  InfraType = "database"
	InfraLogging   InfraType = "logging"
	InfraMessaging InfraType = "messaging"
	InfraStorage   InfraType = "storage"
	InfraMetrics   InfraType = "metrics"
)

// DefaultVersion is the package version written when none is requested.
const DefaultVersion = "0.1.0"

// Request is a validated generation request. Fields that do not apply to
// the request's Kind are left at their zero value.
type Request struct {
	Kind          Kind     `yaml:"-" json:"-"`
	Name          string   `yaml:"name" json:"name"`
	WorkspaceRoot string   `yaml:"workspaceRoot,omitempty" json:"workspaceRoot,omitempty"`
	Description   string   `yaml:"description,omitempty" json:"description,omitempty"`
	Directory     string   `yaml:"directory,omitempty" json:"directory,omitempty"`
	Tags          []string `yaml:"-" json:"-"`
	DryRun        bool     `yaml:"dryRun,omitempty" json:"dryRun,omitempty"`
	Version       string   `yaml:"version,omitempty" json:"version,omitempty"`

	Platform            Platform  `yaml:"platform,omitempty" json:"platform,omitempty"`
	IncludeRPC          bool      `yaml:"includeRPC,omitempty" json:"includeRPC,omitempty"`
	IncludeCQRS         bool      `yaml:"includeCQRS,omitempty" json:"includeCQRS,omitempty"`
	IncludeClientServer bool      `yaml:"includeClientServer,omitempty" json:"includeClientServer,omitempty"`
	ContractLibrary     string    `yaml:"contractLibrary,omitempty" json:"contractLibrary,omitempty"`
	ExternalService     string    `yaml:"externalService,omitempty" json:"externalService,omitempty"`
	InfraType           InfraType `yaml:"infraType,omitempty" json:"infraType,omitempty"`
}

// Contract is the name of the contract library a data-access request
// implements: ContractLibrary when set, otherwise the request's own name.
func (r Request) Contract() string {
	if r.ContractLibrary != "" {
		return r.ContractLibrary
	}
	return r.Name
}

// SplitTags parses a comma-separated tag list, trimming blanks and dropping
// empty entries. Order is preserved.
func SplitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
