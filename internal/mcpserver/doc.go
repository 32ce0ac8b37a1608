// Package mcpserver exposes the generators as tools over the Model
// Context Protocol. Each library kind gets a create_<kind>_library tool
// whose arguments mirror the request fields; detect_workspace and
// list_libraries report on the workspace without writing anything.
//
// The server speaks stdio only. Handlers never return protocol errors for
// generation failures; they return a tool result flagged as an error so
// the calling agent can read the issues and retry.
package mcpserver
