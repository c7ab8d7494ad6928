// Package domain translates MCP tool calls into divination service calls.
//
// Each tool has a schema constructor (XTool), typed input and output
// structs, and a handler factory bound to an *app.Service. Outputs are flat
// JSON documents so MCP clients can render them without knowing the core
// types.
package domain
