package kinds

import (
	"github.com/monogen-dev/monogen/internal/library"
	"github.com/monogen-dev/monogen/internal/metadata"
	"github.com/monogen-dev/monogen/internal/templates"
)

func dataAccessFiles(library.Request) []File {
	return []File{
		{Path: "lib/errors.ts", Definition: dataAccessErrors},
		{Path: "lib/repository.ts", Definition: dataAccessRepository},
		{Path: "lib/layers.ts", Definition: dataAccessLayers},
	}
}

// dataAccessVars points the repository at the contract it implements.
func dataAccessVars(lib metadata.Library, req library.Request) templates.Map {
	contract := req.Contract()
	return templates.Map{
		"contractPackage": lib.Scope + "/contract-" + contract,
		"contractClass":   metadata.ClassName(contract),
	}
}

var dataAccessErrors = templates.Definition{
	ID: "data-access/errors",
	Meta: templates.Meta{
		Title:       "{domainName} Data Access Errors",
		Description: "Infrastructure failures raised by the {domainName} repository.",
		ModuleTag:   moduleTag("lib/errors.ts"),
	},
	Imports: []templates.Import{{From: "effect", Items: []string{"Data"}}},
	Sections: []templates.Section{
		{
			Title: "Errors",
			Content: `export class {className}DatabaseError extends Data.TaggedError("{className}DatabaseError")<{
  readonly operation: string
  readonly cause: unknown
}> {}

export class {className}ConnectionError extends Data.TaggedError("{className}ConnectionError")<{
  readonly cause: unknown
}> {}

export type {className}DataAccessError = {className}DatabaseError | {className}ConnectionError
`,
		},
	},
}

var dataAccessRepository = templates.Definition{
	ID: "data-access/repository",
	Meta: templates.Meta{
		Title:       "{domainName} Repository",
		Description: "Implementation of the {contractClass}Repository port from {contractPackage}.\n\nThe default store is in memory; replace it with a database client.",
		ModuleTag:   moduleTag("lib/repository.ts"),
	},
	Imports: []templates.Import{
		{From: "effect", Items: []string{"Effect", "Option", "Ref"}},
		{From: "{contractPackage}", Items: []string{"{contractClass}", "Create{contractClass}Input", "Update{contractClass}Input"}, TypeOnly: true},
		{From: "{contractPackage}", Items: []string{"{contractClass}NotFoundError", "{contractClass}Repository"}},
	},
	Sections: []templates.Section{
		{
			Title: "Repository",
			Content: `export const make{className}Repository = Effect.gen(function* () {
  const store = yield* Ref.make(new Map<string, {contractClass}>())

  return {contractClass}Repository.of({
    findById: (id: string) => Ref.get(store).pipe(Effect.map((rows) => Option.fromNullable(rows.get(id)))),

    findAll: () => Ref.get(store).pipe(Effect.map((rows) => Array.from(rows.values()))),

    create: (input: Create{contractClass}Input) =>
      Effect.gen(function* () {
        const now = new Date()
        const row: {contractClass} = { id: input.id ?? crypto.randomUUID(), createdAt: now, updatedAt: now }
        yield* Ref.update(store, (rows) => new Map(rows).set(row.id, row))
        return row
      }),

    update: (input: Update{contractClass}Input) =>
      Effect.gen(function* () {
        const rows = yield* Ref.get(store)
        const existing = rows.get(input.id)
        if (existing === undefined) {
          return yield* Effect.fail(new {contractClass}NotFoundError({ id: input.id }))
        }
        const row: {contractClass} = { ...existing, ...input, updatedAt: new Date() }
        yield* Ref.update(store, (current) => new Map(current).set(row.id, row))
        return row
      }),

    delete: (id: string) =>
      Effect.gen(function* () {
        const rows = yield* Ref.get(store)
        if (!rows.has(id)) {
          return yield* Effect.fail(new {contractClass}NotFoundError({ id }))
        }
        yield* Ref.update(store, (current) => {
          const next = new Map(current)
          next.delete(id)
          return next
        })
      })
  })
})
`,
		},
	},
}

var dataAccessLayers = templates.Definition{
	ID: "data-access/layers",
	Meta: templates.Meta{
		Title:     "{domainName} Layers",
		ModuleTag: moduleTag("lib/layers.ts"),
	},
	Imports: []templates.Import{
		{From: "effect", Items: []string{"Layer"}},
		{From: "{contractPackage}", Items: []string{"{contractClass}Repository"}},
		{From: "./repository", Items: []string{"make{className}Repository"}},
	},
	Sections: []templates.Section{
		{
			Title: "Layers",
			Content: `export const {className}RepositoryLive = Layer.effect({contractClass}Repository, make{className}Repository)

export const {className}RepositoryTest = Layer.fresh({className}RepositoryLive)
`,
		},
	},
}
