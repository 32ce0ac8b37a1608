package kinds

import (
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/metadata"
	"github.com/monogen-dev/monogen/internal/templates"
)

func providerFiles(library.Request) []File {
	return []File{
		{Path: "lib/errors.ts", Definition: providerErrors},
		{Path: "lib/types.ts", Definition: providerTypes},
		{Path: "lib/service.ts", Definition: providerService},
		{Path: "lib/layers.ts", Definition: providerLayers},
	}
}

func providerVars(_ metadata.Library, req library.Request) templates.Map {
	return templates.Map{"externalService": req.ExternalService}
}

var providerErrors = templates.Definition{
	ID: "provider/errors",
	Meta: templates.Meta{
		Title:       "{domainName} Provider Errors",
		Description: "Failures raised while talking to {externalService}.",
		ModuleTag:   moduleTag("lib/errors.ts"),
	},
	Imports: []templates.Import{{From: "effect", Items: []string{"Data"}}},
	Sections: []templates.Section{
		{
			Content: `export class {className}ProviderError extends Data.TaggedError("{className}ProviderError")<{
  readonly message: string
  readonly cause?: unknown
}> {}

export class {className}RateLimitError extends Data.TaggedError("{className}RateLimitError")<{
  readonly retryAfterMs: number
}> {}

export class {className}AuthenticationError extends Data.TaggedError("{className}AuthenticationError")<{
  readonly message: string
}> {}
`,
		},
	},
}

var providerTypes = templates.Definition{
	ID: "provider/types",
	Meta: templates.Meta{
		Title:     "{domainName} Provider Types",
		ModuleTag: moduleTag("lib/types.ts"),
	},
	Sections: []templates.Section{
		{
			Content: `export interface {className}Config {
  readonly apiKey: string
  readonly baseUrl?: string
  readonly timeoutMs?: number
}

export interface {className}Client {
  readonly request: <A>(operation: string, payload?: unknown) => Promise<A>
}
`,
		},
	},
}

var providerService = templates.Definition{
	ID: "provider/service",
	Meta: templates.Meta{
		Title:       "{domainName} Provider Service",
		Description: "Effect service wrapping the {externalService} API.",
		ModuleTag:   moduleTag("lib/service.ts"),
	},
	Imports: []templates.Import{
		{From: "effect", Items: []string{"Context", "Effect"}},
		{From: "./errors", Items: []string{"{className}ProviderError"}},
		{From: "./types", Items: []string{"{className}Client", "{className}Config"}, TypeOnly: true},
	},
	Sections: []templates.Section{
		{
			Title: "Client",
			Content: `export const create{className}Client = (config: {className}Config): {className}Client => ({
  request: async <A>(operation: string, payload?: unknown): Promise<A> => {
    const response = await fetch((config.baseUrl ?? "") + "/" + operation, {
      method: "POST",
      headers: { "content-type": "application/json", authorization: "Bearer " + config.apiKey },
      body: JSON.stringify(payload ?? {}),
      signal: AbortSignal.timeout(config.timeoutMs ?? 10_000)
    })
    if (!response.ok) {
      throw new Error("{externalService} responded " + response.status)
    }
    return (await response.json()) as A
  }
})
`,
		},
		{
			Title: "Service",
			Content: `export interface {className}ServiceShape {
  readonly call: <A>(operation: string, payload?: unknown) => Effect.Effect<A, {className}ProviderError>
}

export class {className}Service extends Context.Tag("{packageName}/{className}Service")<
  {className}Service,
  {className}ServiceShape
>() {}

export const make{className}Service = (client: {className}Client) =>
  {className}Service.of({
    call: <A>(operation: string, payload?: unknown) =>
      Effect.tryPromise({
        try: () => client.request<A>(operation, payload),
        catch: (cause) => new {className}ProviderError({ message: "{externalService} " + operation + " failed", cause })
      })
  })
`,
		},
	},
}

var providerLayers = templates.Definition{
	ID: "provider/layers",
	Meta: templates.Meta{
		Title:     "{domainName} Provider Layers",
		ModuleTag: moduleTag("lib/layers.ts"),
	},
	Imports: []templates.Import{
		{From: "effect", Items: []string{"Context", "Effect", "Layer"}},
		{From: "./service", Items: []string{"{className}Service", "create{className}Client", "make{className}Service"}},
		{From: "./types", Items: []string{"{className}Config"}, TypeOnly: true},
	},
	Sections: []templates.Section{
		{
			Content: `export const {className}ConfigTag = Context.GenericTag<{className}Config>("{packageName}/{className}Config")

export const {className}ServiceLive = Layer.effect(
  {className}Service,
  Effect.map({className}ConfigTag, (config) => make{className}Service(create{className}Client(config)))
)

export const {className}ServiceTest = Layer.succeed(
  {className}Service,
  make{className}Service({ request: () => Promise.reject(new Error("{externalService} client not stubbed")) })
)
`,
		},
	},
}
