package library

// FieldType is the wire type of a request field.
type FieldType string

// FieldType constants.
const (
	FieldString FieldType = "string"
	FieldBool   FieldType = "boolean"
)

// Field describes one request field as the front ends expose it.
type Field struct {
	Name        string // request key, e.g. "dryRun"
	Flag        string // CLI flag, e.g. "dry-run"
	Type        FieldType
	Description string
	Required    bool
	Enum        []string
}

var baseFields = []Field{
	{Name: "name", Flag: "name", Type: FieldString, Required: true,
		Description: "Library name in kebab-case, e.g. product-review"},
	{Name: "workspaceRoot", Flag: "workspace-root", Type: FieldString,
		Description: "Directory to start workspace detection from (default: current directory)"},
	{Name: "description", Flag: "description", Type: FieldString,
		Description: "Package description (default: derived from the name)"},
	{Name: "directory", Flag: "directory", Type: FieldString,
		Description: "Parent directory for the library, relative to the workspace root"},
	{Name: "tags", Flag: "tags", Type: FieldString,
		Description: "Comma-separated project tags, e.g. team:catalog,layer:domain"},
	{Name: "dryRun", Flag: "dry-run", Type: FieldBool,
		Description: "Preview the files without writing them"},
	{Name: "version", Flag: "version", Type: FieldString,
		Description: "Initial package version (default: " + DefaultVersion + ")"},
}

var platformField = Field{
	Name: "platform", Flag: "platform", Type: FieldString,
	Description: "Target runtime (default: node)",
	Enum:        []string{string(PlatformNode), string(PlatformBrowser), string(PlatformUniversal), string(PlatformEdge)},
}

var kindFields = map[Kind][]Field{
	KindContract: {
		{Name: "includeCQRS", Flag: "include-cqrs", Type: FieldBool, Description: "Add command and query schemas"},
		{Name: "includeRPC", Flag: "include-rpc", Type: FieldBool, Description: "Add RPC request schemas"},
	},
	KindDataAccess: {
		{Name: "contractLibrary", Flag: "contract-library", Type: FieldString,
			Description: "Name of the contract library to implement (default: the library name)"},
	},
	KindFeature: {
		platformField,
		{Name: "includeRPC", Flag: "include-rpc", Type: FieldBool, Description: "Add RPC handlers"},
		{Name: "includeCQRS", Flag: "include-cqrs", Type: FieldBool, Description: "Add command handlers"},
		{Name: "includeClientServer", Flag: "include-client-server", Type: FieldBool, Description: "Add client hooks"},
	},
	KindProvider: {
		platformField,
		{Name: "externalService", Flag: "external-service", Type: FieldString, Required: true,
			Description: "Name of the external service the provider wraps, e.g. Stripe"},
	},
	KindInfra: {
		platformField,
		{Name: "infraType", Flag: "infra-type", Type: FieldString, Required: true,
			Description: "Infrastructure concern the library provides",
			Enum: []string{
				string(InfraCache), string(InfraDatabase), string(InfraLogging),
				string(InfraMessaging), string(InfraStorage), string(InfraMetrics),
			}},
	},
}

// Fields returns every field a request of kind k accepts, base fields
// first.
func Fields(k Kind) []Field {
	out := make([]Field, 0, len(baseFields)+len(kindFields[k]))
	out = append(out, baseFields...)
	return append(out, kindFields[k]...)
}
