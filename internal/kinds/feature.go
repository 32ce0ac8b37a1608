package kinds

import (
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/templates"
)

func featureFiles(req library.Request) []File {
	files := []File{
		{Path: "lib/shared/errors.ts", Definition: featureErrors},
		{Path: "lib/server/service.ts", Definition: featureService},
		{Path: "lib/server/layers.ts", Definition: featureLayers},
	}
	if req.IncludeRPC {
		files = append(files, File{Path: "lib/rpc/handlers.ts", Definition: featureHandlers})
	}
	if req.IncludeCQRS {
		files = append(files, File{Path: "lib/server/cqrs.ts", Definition: featureCQRS})
	}
	if req.IncludeClientServer {
		files = append(files, File{Path: "lib/client/hooks.ts", Definition: featureHooks})
	}
	return files
}

var featureErrors = templates.Definition{
	ID: "feature/errors",
	Meta: templates.Meta{
		Title:       "{domainName} Feature Errors",
		Description: "Errors shared by the server and client halves of the feature.",
		ModuleTag:   moduleTag("lib/shared/errors.ts"),
	},
	Imports: []templates.Import{{From: "effect", Items: []string{"Data"}}},
	Sections: []templates.Section{
		{
			Content: `export class {className}FeatureError extends Data.TaggedError("{className}FeatureError")<{
  readonly message: string
  readonly cause?: unknown
}> {}

export class {className}NotAllowedError extends Data.TaggedError("{className}NotAllowedError")<{
  readonly action: string
}> {}
`,
		},
	},
}

var featureService = templates.Definition{
	ID: "feature/service",
	Meta: templates.Meta{
		Title:       "{domainName} Service",
		Description: "Business logic for the {domainName} feature.",
		ModuleTag:   moduleTag("lib/server/service.ts"),
	},
	Imports: []templates.Import{
		{From: "effect", Items: []string{"Context", "Effect"}},
		{From: "../shared/errors", Items: []string{"{className}FeatureError"}, TypeOnly: true},
	},
	Sections: []templates.Section{
		{
			Title: "Types",
			Content: `export interface {className}Input {
  readonly id: string
}

export interface {className}Output {
  readonly id: string
  readonly status: "ok"
}
`,
		},
		{
			Title: "Service",
			Content: `export interface {className}ServiceShape {
  readonly execute: (input: {className}Input) => Effect.Effect<{className}Output, {className}FeatureError>
}

export class {className}Service extends Context.Tag("{packageName}/{className}Service")<
  {className}Service,
  {className}ServiceShape
>() {}

export const make{className}Service = Effect.gen(function* () {
  yield* Effect.logDebug("{domainName} service ready")

  return {className}Service.of({
    execute: (input: {className}Input) =>
      Effect.succeed({ id: input.id, status: "ok" as const }).pipe(Effect.withSpan("{className}Service.execute"))
  })
})
`,
		},
	},
}

var featureLayers = templates.Definition{
	ID: "feature/layers",
	Meta: templates.Meta{
		Title:     "{domainName} Layers",
		ModuleTag: moduleTag("lib/server/layers.ts"),
	},
	Imports: []templates.Import{
		{From: "effect", Items: []string{"Layer"}},
		{From: "./service", Items: []string{"{className}Service", "make{className}Service"}},
	},
	Sections: []templates.Section{
		{
			Content: `export const {className}ServiceLive = Layer.effect({className}Service, make{className}Service)
`,
		},
	},
}

var featureHandlers = templates.Definition{
	ID: "feature/rpc-handlers",
	Meta: templates.Meta{
		Title:       "{domainName} RPC Handlers",
		Description: "Handlers that expose {className}Service over RPC.",
		ModuleTag:   moduleTag("lib/rpc/handlers.ts"),
	},
	Imports: []templates.Import{
		{From: "effect", Items: []string{"Effect"}},
		{From: "../server/service", Items: []string{"{className}Service"}},
		{From: "../server/service", Items: []string{"{className}Input"}, TypeOnly: true},
	},
	Sections: []templates.Section{
		{
			Content: `export const {className}Handlers = {
  execute: (input: {className}Input) => Effect.flatMap({className}Service, (service) => service.execute(input))
} as const
`,
		},
	},
}

var featureCQRS = templates.Definition{
	ID: "feature/cqrs",
	Meta: templates.Meta{
		Title:       "{domainName} Command Handlers",
		Description: "Dispatches {domainName} commands to the service.",
		ModuleTag:   moduleTag("lib/server/cqrs.ts"),
	},
	Imports: []templates.Import{
		{From: "effect", Items: []string{"Effect"}},
		{From: "./service", Items: []string{"{className}Service"}},
	},
	Sections: []templates.Section{
		{
			Title: "Commands",
			Content: `export interface {className}Command {
  readonly _tag: "{className}Command"
  readonly id: string
}
`,
		},
		{
			Title: "Handlers",
			Content: `export const handle{className}Command = (command: {className}Command) =>
  Effect.flatMap({className}Service, (service) => service.execute({ id: command.id }))
`,
		},
	},
}

var featureHooks = templates.Definition{
	ID: "feature/client-hooks",
	Meta: templates.Meta{
		Title:       "{domainName} Client Hooks",
		Description: "React hooks for calling the {domainName} feature from the browser.",
		ModuleTag:   moduleTag("lib/client/hooks.ts"),
	},
	Imports: []templates.Import{
		{From: "react", Items: []string{"useCallback", "useState"}},
		{From: "../server/service", Items: []string{"{className}Output"}, TypeOnly: true},
	},
	Sections: []templates.Section{
		{
			Content: `export interface Use{className}State {
  readonly data: {className}Output | null
  readonly error: Error | null
  readonly loading: boolean
}

export const use{className} = (fetcher: (id: string) => Promise<{className}Output>) => {
  const [state, setState] = useState<Use{className}State>({ data: null, error: null, loading: false })

  const run = useCallback(
    async (id: string) => {
      setState((prev) => ({ ...prev, loading: true }))
      try {
        const data = await fetcher(id)
        setState({ data, error: null, loading: false })
      } catch (error) {
        setState({ data: null, error: error as Error, loading: false })
      }
    },
    [fetcher]
  )

  return { ...state, run } as const
}
`,
		},
	},
}
