// Package app composes casting, calendar and line annotation into the
// readings served by the command line and the MCP server.
//
// A Service holds no mutable state after construction and is safe for
// concurrent use. Every randomized cast records the seed that produced it,
// so a reading can be replayed by passing the same seed back.
package app
