package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/grafana/docnav/internal/buildinfo"
	"github.com/grafana/docnav/internal/logging"
)

// InfoTool exposes runtime information about docnav and the loaded documentation.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var InfoTool = mcp.NewTool(
	"info",
	mcp.WithDescription("Get details about the docnav server and the documentation it has indexed."),
)

// RegisterInfoTool registers the info tool with the MCP server.
func RegisterInfoTool(s *server.MCPServer, source Docs) {
	s.AddTool(InfoTool, withToolLogger("info", newInfoHandlerFunc(source)))
}

func newInfoHandlerFunc(source Docs) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index := source.Finder().Index()

		response := InfoResponse{
			Version:      buildinfo.Version,
			Commit:       buildinfo.Commit,
			BuiltAt:      buildinfo.Date,
			DocsRoot:     index.Root,
			SectionCount: index.Len(),
			Categories:   source.Finder().GetCategories(),
		}

		return marshalResponse(ctx, logging.LoggerFromContext(ctx), response)
	}
}

// InfoResponse is the response to the info tool.
type InfoResponse struct {
	// Version is the version of the docnav server.
	Version string `json:"version"`

	// Commit is the revision the server was built from.
	Commit string `json:"commit"`

	// BuiltAt is the build date.
	BuiltAt string `json:"built_at"`

	// DocsRoot is the directory the documentation was indexed from.
	DocsRoot string `json:"docs_root"`

	// SectionCount is the number of indexed sections.
	SectionCount int `json:"section_count"`

	// Categories are the top-level categories in sidebar order.
	Categories []string `json:"categories"`
}
