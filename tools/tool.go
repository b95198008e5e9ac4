// Package tools provides MCP tool definitions for the docnav server.
package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/grafana/docnav/internal/docs"
	"github.com/grafana/docnav/internal/logging"
)

// Docs provides the documentation index the tools read from. The index may
// be swapped between calls when the docs are reindexed.
type Docs interface {
	Finder() *docs.Finder
}

// withToolLogger wraps a tool handler to inject a logger into context and provide panic recovery.
// The logger is configured with the tool name and a request id and made available via
// logging.LoggerFromContext.
func withToolLogger(toolName string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		start := time.Now()

		// Create tool-specific logger and add to context
		logger := logging.WithTool(toolName)
		ctx = logging.ContextWithLogger(ctx, logger)
		ctx = logging.ContextWithRequestID(ctx, uuid.NewString())

		// Panic recovery with logging
		defer func() {
			if r := recover(); r != nil {
				logging.LoggerFromContext(ctx).ErrorContext(ctx, "panic in tool execution",
					slog.String("tool", toolName),
					slog.Any("panic", r))
				result = nil
				err = fmt.Errorf("internal error in tool execution: %s", r)
			}
			logging.RequestEnd(ctx, toolName, err == nil && result != nil && !result.IsError, time.Since(start), err)
		}()

		return handler(ctx, request)
	}
}
