package kinds

import (
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/metadata"
	"github.com/monogen-dev/monogen/internal/templates"
)

// infraProfile is the part of an infra library that depends on its
// infrastructure type.
type infraProfile struct {
	configFields string
	configLoader string
	shape        string
	memory       string
	imports      []string
}

var infraProfiles = map[library.InfraType]infraProfile{
	library.InfraCache: {
		configFields: `  readonly url: string
  readonly ttlSeconds: number`,
		configLoader: `  url: Config.string("{constantName}_URL"),
  ttlSeconds: Config.integer("{constantName}_TTL_SECONDS").pipe(Config.withDefault(300))`,
		shape: `  readonly get: (key: string) => Effect.Effect<Option.Option<string>, {className}InfraError>
  readonly set: (key: string, value: string) => Effect.Effect<void, {className}InfraError>
  readonly delete: (key: string) => Effect.Effect<void, {className}InfraError>`,
		memory: `  const entries = new Map<string, string>()
  return {
    get: (key: string) => Effect.sync(() => Option.fromNullable(entries.get(key))),
    set: (key: string, value: string) => Effect.sync(() => void entries.set(key, value)),
    delete: (key: string) => Effect.sync(() => void entries.delete(key))
  }`,
		imports: []string{"Option"},
	},
	library.InfraDatabase: {
		configFields: `  readonly url: string
  readonly poolSize: number`,
		configLoader: `  url: Config.string("{constantName}_URL"),
  poolSize: Config.integer("{constantName}_POOL_SIZE").pipe(Config.withDefault(10))`,
		shape: `  readonly query: <A>(sql: string, params?: ReadonlyArray<unknown>) => Effect.Effect<ReadonlyArray<A>, {className}InfraError>
  readonly execute: (sql: string, params?: ReadonlyArray<unknown>) => Effect.Effect<number, {className}InfraError>`,
		memory: `  return {
    query: <A>(_sql: string) => Effect.succeed<ReadonlyArray<A>>([]),
    execute: (_sql: string) => Effect.succeed(0)
  }`,
	},
	library.InfraLogging: {
		configFields: `  readonly level: string
  readonly pretty: boolean`,
		configLoader: `  level: Config.string("{constantName}_LEVEL").pipe(Config.withDefault("info")),
  pretty: Config.boolean("{constantName}_PRETTY").pipe(Config.withDefault(false))`,
		shape: `  readonly log: (level: string, message: string, fields?: Record<string, unknown>) => Effect.Effect<void>`,
		memory: `  return {
    log: (level: string, message: string, fields?: Record<string, unknown>) =>
      Effect.logWithLevel(LogLevel.fromLiteral(level as LogLevel.Literal), message, fields ?? {})
  }`,
		imports: []string{"LogLevel"},
	},
	library.InfraMessaging: {
		configFields: `  readonly brokers: ReadonlyArray<string>
  readonly clientId: string`,
		configLoader: `  brokers: Config.array(Config.string(), "{constantName}_BROKERS"),
  clientId: Config.string("{constantName}_CLIENT_ID").pipe(Config.withDefault("{projectName}"))`,
		shape: `  readonly publish: (topic: string, payload: unknown) => Effect.Effect<void, {className}InfraError>
  readonly subscribe: (topic: string, handler: (payload: unknown) => Effect.Effect<void>) => Effect.Effect<void, {className}InfraError>`,
		memory: `  const handlers = new Map<string, Array<(payload: unknown) => Effect.Effect<void>>>()
  return {
    publish: (topic: string, payload: unknown) =>
      Effect.forEach(handlers.get(topic) ?? [], (handler) => handler(payload), { discard: true }),
    subscribe: (topic: string, handler: (payload: unknown) => Effect.Effect<void>) =>
      Effect.sync(() => void handlers.set(topic, [...(handlers.get(topic) ?? []), handler]))
  }`,
	},
	library.InfraStorage: {
		configFields: `  readonly bucket: string
  readonly region: string`,
		configLoader: `  bucket: Config.string("{constantName}_BUCKET"),
  region: Config.string("{constantName}_REGION").pipe(Config.withDefault("us-east-1"))`,
		shape: `  readonly put: (key: string, body: Uint8Array) => Effect.Effect<void, {className}InfraError>
  readonly get: (key: string) => Effect.Effect<Option.Option<Uint8Array>, {className}InfraError>`,
		memory: `  const objects = new Map<string, Uint8Array>()
  return {
    put: (key: string, body: Uint8Array) => Effect.sync(() => void objects.set(key, body)),
    get: (key: string) => Effect.sync(() => Option.fromNullable(objects.get(key)))
  }`,
		imports: []string{"Option"},
	},
	library.InfraMetrics: {
		configFields: `  readonly endpoint: string
  readonly intervalMs: number`,
		configLoader: `  endpoint: Config.string("{constantName}_ENDPOINT"),
  intervalMs: Config.integer("{constantName}_INTERVAL_MS").pipe(Config.withDefault(10_000))`,
		shape: `  readonly increment: (name: string, value?: number) => Effect.Effect<void>
  readonly gauge: (name: string, value: number) => Effect.Effect<void>`,
		memory: `  return {
    increment: (name: string, value = 1) => Metric.incrementBy(Metric.counter(name), value),
    gauge: (name: string, value: number) => Metric.set(Metric.gauge(name), value)
  }`,
		imports: []string{"Metric"},
	},
}

func infraFiles(req library.Request) []File {
	p, ok := infraProfiles[req.InfraType]
	if !ok {
		p = infraProfiles[library.InfraCache]
	}
	return []File{
		{Path: "lib/errors.ts", Definition: infraErrors},
		{Path: "lib/config.ts", Definition: infraConfig(p)},
		{Path: "lib/service.ts", Definition: infraService(p)},
		{Path: "lib/layers.ts", Definition: infraLayers},
	}
}

func infraVars(_ metadata.Library, req library.Request) templates.Map {
	return templates.Map{
		"infraType":  string(req.InfraType),
		"infraClass": metadata.ClassName(string(req.InfraType)),
	}
}

var infraErrors = templates.Definition{
	ID: "infra/errors",
	Meta: templates.Meta{
		Title:       "{domainName} Infrastructure Errors",
		Description: "Failures raised by the {infraType} infrastructure service.",
		ModuleTag:   moduleTag("lib/errors.ts"),
	},
	Imports: []templates.Import{{From: "effect", Items: []string{"Data"}}},
	Sections: []templates.Section{
		{
			Content: `export class {className}InfraError extends Data.TaggedError("{className}InfraError")<{
  readonly operation: string
  readonly cause: unknown
}> {}

export class {className}ConfigError extends Data.TaggedError("{className}ConfigError")<{
  readonly key: string
}> {}
`,
		},
	},
}

func infraConfig(p infraProfile) templates.Definition {
	return templates.Definition{
		ID: "infra/config",
		Meta: templates.Meta{
			Title:       "{domainName} Configuration",
			Description: "{infraClass} settings read from the environment.",
			ModuleTag:   moduleTag("lib/config.ts"),
		},
		Imports: []templates.Import{{From: "effect", Items: []string{"Config"}}},
		Sections: []templates.Section{
			{
				Content: "export interface {className}Config {\n" + p.configFields + "\n}\n\n" +
					"export const load{className}Config = Config.all({\n" + p.configLoader + "\n})\n",
			},
		},
	}
}

func infraService(p infraProfile) templates.Definition {
	return templates.Definition{
		ID: "infra/service",
		Meta: templates.Meta{
			Title:       "{domainName} Service",
			Description: "{infraClass} access for the workspace. The in-memory implementation is a starting point for tests.",
			ModuleTag:   moduleTag("lib/service.ts"),
		},
		Imports: []templates.Import{
			{From: "effect", Items: append([]string{"Context", "Effect"}, p.imports...)},
			{From: "./config", Items: []string{"{className}Config"}, TypeOnly: true},
			{From: "./errors", Items: []string{"{className}InfraError"}, TypeOnly: true},
		},
		Sections: []templates.Section{
			{
				Title: "Service",
				Content: "export interface {className}ServiceShape {\n" + p.shape + "\n}\n\n" +
					`export class {className}Service extends Context.Tag("{packageName}/{className}Service")<
  {className}Service,
  {className}ServiceShape
>() {}
`,
			},
			{
				Title: "Implementations",
				Content: "export const makeMemory{className}Service = (_config: {className}Config): {className}ServiceShape => {\n" +
					p.memory + "\n}\n",
			},
		},
	}
}

var infraLayers = templates.Definition{
	ID: "infra/layers",
	Meta: templates.Meta{
		Title:     "{domainName} Layers",
		ModuleTag: moduleTag("lib/layers.ts"),
	},
	Imports: []templates.Import{
		{From: "effect", Items: []string{"Effect", "Layer"}},
		{From: "./config", Items: []string{"load{className}Config"}},
		{From: "./errors", Items: []string{"{className}ConfigError"}},
		{From: "./service", Items: []string{"{className}Service", "makeMemory{className}Service"}},
	},
	Sections: []templates.Section{
		{
			Content: `export const {className}ServiceLive = Layer.effect(
  {className}Service,
  load{className}Config.pipe(
    Effect.mapError((error) => new {className}ConfigError({ key: String(error) })),
    Effect.map(makeMemory{className}Service)
  )
)
`,
		},
	},
}
