package kinds

import (
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/templates"
)

func contractFiles(req library.Request) []File {
	files := []File{
		{Path: "lib/errors.ts", Definition: contractErrors},
		{Path: "lib/ports.ts", Definition: contractPorts},
		{Path: "lib/events.ts", Definition: contractEvents},
	}
	if req.IncludeCQRS {
		files = append(files,
			File{Path: "lib/commands.ts", Definition: contractCommands},
			File{Path: "lib/queries.ts", Definition: contractQueries},
		)
	}
	if req.IncludeRPC {
		files = append(files, File{Path: "lib/rpc.ts", Definition: contractRPC})
	}
	return files
}

var contractErrors = templates.Definition{
	ID: "contract/errors",
	Meta: templates.Meta{
		Title:       "{domainName} Contract Errors",
		Description: "Domain errors for the {domainName} bounded context.\n\nErrors are tagged so callers can recover with Effect.catchTag.",
		ModuleTag:   moduleTag("lib/errors.ts"),
	},
	Imports: []templates.Import{{From: "effect", Items: []string{"Data"}}},
	Sections: []templates.Section{
		{
			Title: "Domain Errors",
			Content: `export class {className}NotFoundError extends Data.TaggedError("{className}NotFoundError")<{
  readonly id: string
}> {}

export class {className}ValidationError extends Data.TaggedError("{className}ValidationError")<{
  readonly message: string
  readonly field?: string
}> {}

export class {className}ConflictError extends Data.TaggedError("{className}ConflictError")<{
  readonly id: string
}> {}
`,
		},
		{
			Title: "Error Union",
			Content: `export type {className}DomainError =
  | {className}NotFoundError
  | {className}ValidationError
  | {className}ConflictError
`,
		},
	},
}

var contractPorts = templates.Definition{
	ID: "contract/ports",
	Meta: templates.Meta{
		Title:       "{domainName} Ports",
		Description: "Entity shape and the repository and service ports other libraries implement.",
		ModuleTag:   moduleTag("lib/ports.ts"),
	},
	Imports: []templates.Import{
		{From: "effect", Items: []string{"Context"}},
		{From: "effect", Items: []string{"Effect", "Option"}, TypeOnly: true},
		{From: "./errors", Items: []string{"{className}NotFoundError", "{className}ValidationError"}, TypeOnly: true},
	},
	Sections: []templates.Section{
		{
			Title: "Entity",
			Content: `export interface {className} {
  readonly id: string
  readonly createdAt: Date
  readonly updatedAt: Date
}

export interface Create{className}Input {
  readonly id?: string
}

export interface Update{className}Input {
  readonly id: string
}
`,
		},
		{
			Title: "Repository Port",
			Content: `export interface {className}RepositoryShape {
  readonly findById: (id: string) => Effect.Effect<Option.Option<{className}>>
  readonly findAll: () => Effect.Effect<ReadonlyArray<{className}>>
  readonly create: (input: Create{className}Input) => Effect.Effect<{className}, {className}ValidationError>
  readonly update: (
    input: Update{className}Input
  ) => Effect.Effect<{className}, {className}NotFoundError | {className}ValidationError>
  readonly delete: (id: string) => Effect.Effect<void, {className}NotFoundError>
}

export class {className}Repository extends Context.Tag("{packageName}/{className}Repository")<
  {className}Repository,
  {className}RepositoryShape
>() {}
`,
		},
		{
			Title: "Service Port",
			Content: `export interface {className}ServiceShape {
  readonly get: (id: string) => Effect.Effect<{className}, {className}NotFoundError>
  readonly list: () => Effect.Effect<ReadonlyArray<{className}>>
  readonly create: (input: Create{className}Input) => Effect.Effect<{className}, {className}ValidationError>
}

export class {className}Service extends Context.Tag("{packageName}/{className}Service")<
  {className}Service,
  {className}ServiceShape
>() {}
`,
		},
	},
}

var contractEvents = templates.Definition{
	ID: "contract/events",
	Meta: templates.Meta{
		Title:       "{domainName} Events",
		Description: "Integration events published when a {domainName} changes.",
		ModuleTag:   moduleTag("lib/events.ts"),
	},
	Imports: []templates.Import{{From: "effect", Items: []string{"Schema"}}},
	Sections: []templates.Section{
		{
			Title:   "Topic",
			Content: `export const {constantName}_EVENT_TOPIC = "{name}.events"` + "\n",
		},
		{
			Title: "Events",
			Content: `export const {className}Created = Schema.TaggedStruct("{className}Created", {
  id: Schema.String,
  occurredAt: Schema.DateFromString
})
export type {className}Created = typeof {className}Created.Type

export const {className}Updated = Schema.TaggedStruct("{className}Updated", {
  id: Schema.String,
  occurredAt: Schema.DateFromString
})
export type {className}Updated = typeof {className}Updated.Type

export const {className}Deleted = Schema.TaggedStruct("{className}Deleted", {
  id: Schema.String,
  occurredAt: Schema.DateFromString
})
export type {className}Deleted = typeof {className}Deleted.Type

export const {className}Event = Schema.Union({className}Created, {className}Updated, {className}Deleted)
export type {className}Event = typeof {className}Event.Type
`,
		},
	},
}

var contractCommands = templates.Definition{
	ID: "contract/commands",
	Meta: templates.Meta{
		Title:       "{domainName} Commands",
		Description: "Write-side messages accepted by the {domainName} domain.",
		ModuleTag:   moduleTag("lib/commands.ts"),
	},
	Imports: []templates.Import{{From: "effect", Items: []string{"Schema"}}},
	Sections: []templates.Section{
		{
			Title: "Commands",
			Content: `export const Create{className}Command = Schema.TaggedStruct("Create{className}Command", {
  id: Schema.optional(Schema.String)
})
export type Create{className}Command = typeof Create{className}Command.Type

export const Update{className}Command = Schema.TaggedStruct("Update{className}Command", {
  id: Schema.String
})
export type Update{className}Command = typeof Update{className}Command.Type

export const Delete{className}Command = Schema.TaggedStruct("Delete{className}Command", {
  id: Schema.String
})
export type Delete{className}Command = typeof Delete{className}Command.Type

export const {className}Command = Schema.Union(
  Create{className}Command,
  Update{className}Command,
  Delete{className}Command
)
export type {className}Command = typeof {className}Command.Type
`,
		},
	},
}

var contractQueries = templates.Definition{
	ID: "contract/queries",
	Meta: templates.Meta{
		Title:       "{domainName} Queries",
		Description: "Read-side messages answered by the {domainName} domain.",
		ModuleTag:   moduleTag("lib/queries.ts"),
	},
	Imports: []templates.Import{{From: "effect", Items: []string{"Schema"}}},
	Sections: []templates.Section{
		{
			Title: "Queries",
			Content: `export const Get{className}Query = Schema.TaggedStruct("Get{className}Query", {
  id: Schema.String
})
export type Get{className}Query = typeof Get{className}Query.Type

export const List{className}Query = Schema.TaggedStruct("List{className}Query", {
  limit: Schema.optional(Schema.Number),
  cursor: Schema.optional(Schema.String)
})
export type List{className}Query = typeof List{className}Query.Type
`,
		},
	},
}

var contractRPC = templates.Definition{
	ID: "contract/rpc",
	Meta: templates.Meta{
		Title:       "{domainName} RPC",
		Description: "Request schemas shared by the {domainName} RPC server and its clients.",
		ModuleTag:   moduleTag("lib/rpc.ts"),
	},
	Imports: []templates.Import{{From: "effect", Items: []string{"Schema"}}},
	Sections: []templates.Section{
		{
			Title: "Schemas",
			Content: `export const {className}Schema = Schema.Struct({
  id: Schema.String,
  createdAt: Schema.DateFromString,
  updatedAt: Schema.DateFromString
})

export class {className}NotFound extends Schema.TaggedError<{className}NotFound>()("{className}NotFound", {
  id: Schema.String
}) {}
`,
		},
		{
			Title: "Requests",
			Content: `export class Get{className} extends Schema.TaggedRequest<Get{className}>()("Get{className}", {
  failure: {className}NotFound,
  success: {className}Schema,
  payload: { id: Schema.String }
}) {}

export class List{className} extends Schema.TaggedRequest<List{className}>()("List{className}", {
  failure: Schema.Never,
  success: Schema.Array({className}Schema),
  payload: {}
}) {}
`,
		},
	},
}
