package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	platformerrors "github.com/koriyoshi2041/zhouyi/internal/platform/errors"
	i18ncatalog "github.com/koriyoshi2041/zhouyi/internal/platform/i18n/catalog"
)

const (
	// InvocationIDKey names the per-call correlation id in tool result metadata.
	InvocationIDKey = "invocation_id"
	// ReadingIDKey names the reading id in tool result metadata.
	ReadingIDKey = "reading_id"
)

// ToolCallMetadata correlates one tool call with the reading it produced.
type ToolCallMetadata struct {
	InvocationID string
	ReadingID    string
}

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() string {
	return uuid.NewString()
}

// CallToolResultWithMetadata builds a tool result with correlation metadata.
func CallToolResultWithMetadata(meta ToolCallMetadata) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Meta: map[string]any{
			InvocationIDKey: meta.InvocationID,
		},
	}
	if meta.ReadingID != "" {
		result.Meta[ReadingIDKey] = meta.ReadingID
	}
	return result
}

// toolError renders a service error for an MCP client: the stable code
// followed by the localized user message.
func toolError(op string, err error, locale string) error {
	if locale == "" {
		locale = i18ncatalog.BaseLocale
	}
	return fmt.Errorf("%s failed [%s]: %s", op, platformerrors.GetCode(err), platformerrors.UserMessage(err, locale))
}
