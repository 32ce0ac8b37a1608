// Package cli defines the Cobra command tree for the monogen CLI. Each file
// in this package registers one top-level command (create, detect, list,
// mcp, config, version) with the root command. Commands delegate to the
// generator and workspace packages and only handle flag parsing, output
// formatting and exit status.
package cli
