package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/grafana/docnav/internal/docs"
	"github.com/grafana/docnav/internal/logging"
)

// GetDocumentationTool exposes a tool for retrieving specific documentation sections.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var GetDocumentationTool = mcp.NewTool(
	"get_documentation",
	mcp.WithDescription(
		"Retrieves the full markdown content of a specific documentation section. "+
			"Use the slug from list_sections output (e.g., 'guide/install'). "+
			"Returns the markdown body together with the section metadata and the URL path it is served at. "+
			"Use this when you need detailed documentation for a specific topic.",
	),
	mcp.WithString(
		"slug",
		mcp.Required(),
		mcp.Description(
			"Section slug to retrieve (e.g., 'guide/install'). "+
				"Get valid slugs from list_sections tool. Supports aliases.",
		),
	),
)

// getDocResponse is the JSON structure returned by the tool.
type getDocResponse struct {
	Section docs.Section `json:"section"`
	Content string       `json:"content"`
}

// RegisterGetDocumentationTool registers the get documentation tool with the MCP server.
func RegisterGetDocumentationTool(s *server.MCPServer, source Docs) {
	handler := newGetDocumentationHandlerFunc(source)
	s.AddTool(GetDocumentationTool, withToolLogger("get_documentation", handler))
}

// newGetDocumentationHandlerFunc returns an MCP tool handler bound to a docs source.
func newGetDocumentationHandlerFunc(
	source Docs,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)
		logger.DebugContext(ctx, "Starting get_documentation operation")

		slug, err := request.RequireString("slug")
		if err != nil {
			logger.WarnContext(ctx, "Invalid parameters", slog.String("error", err.Error()))
			return mcp.NewToolResultError(fmt.Sprintf("missing or invalid slug parameter: %v", err)), nil
		}

		logger.DebugContext(ctx, "Parameters", slog.String("slug", slug))

		finder := source.Finder()

		section, err := lookupSection(ctx, logger, finder, slug)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		content, err := finder.ReadContent(section)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to read markdown file",
				slog.String("slug", section.Slug),
				slog.String("error", err.Error()))
			return mcp.NewToolResultError(fmt.Sprintf(
				"failed to read documentation content for %s. The file may have been removed since indexing",
				section.Slug,
			)), nil
		}

		logger.InfoContext(ctx, "Documentation retrieved successfully",
			slog.String("slug", slug),
			slog.String("title", section.Title),
			slog.Int("content_size", len(content)))

		return marshalResponse(ctx, logger, getDocResponse{
			Section: *section,
			Content: string(content),
		})
	}
}

func lookupSection(
	ctx context.Context,
	logger *slog.Logger,
	finder *docs.Finder,
	slug string,
) (*docs.Section, error) {
	logger.DebugContext(ctx, "Looking up section", slog.String("slug", slug))

	section, err := finder.GetBySlug(slug)
	if err != nil {
		logger.WarnContext(ctx, "Section not found",
			slog.String("slug", slug),
			slog.String("error", err.Error()))

		return nil, fmt.Errorf("section not found: %s. Use list_sections tool to find valid slugs", slug)
	}

	return section, nil
}
