// Package services wires acquisition, extraction, validation and vendor
// scoring into the operations the CLI, MCP server and inbox watcher call.
package services
