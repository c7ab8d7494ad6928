// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// Shutdown limits how long a command waits for telemetry to flush.
const Shutdown = 5 * time.Second

// Tool caps the time an MCP tool call may run.
const Tool = 10 * time.Second
