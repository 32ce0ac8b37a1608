// Package output turns executor outcomes and errors into the shapes the
// front ends print: colored console text for the CLI, plain text for MCP
// tool results and JSON for machine consumers.
package output
