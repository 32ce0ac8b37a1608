// Package logging builds the zap logger shared by the front ends. Logs go
// to stderr so stdout stays free for command output and the MCP stdio
// transport.
package logging
