package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/grafana/docnav/internal/docs"
	"github.com/grafana/docnav/internal/logging"
)

// ListSectionsTool exposes a tool for listing available documentation sections.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var ListSectionsTool = mcp.NewTool(
	"list_sections",
	mcp.WithDescription(
		"Lists documentation sections in a hierarchical tree structure, in sidebar order. "+
			"Use this to understand documentation organization and discover related topics. "+
			"Navigate progressively: start at root, then use root_slug to expand branches. "+
			"Returns compact metadata (no content) to minimize context usage. "+
			"Use get_documentation to retrieve the full content for a specific section.",
	),
	mcp.WithString(
		"category",
		mcp.Description(
			"Optional: Filter by top-level category (e.g., 'guide', 'reference'). "+
				"Use without this parameter to see all categories.",
		),
	),
	mcp.WithNumber(
		"depth",
		mcp.Description(
			"Optional: Depth of hierarchy to return (default: 1, max: 5). "+
				"Depth counts how many levels of children are included in the tree.",
		),
	),
	mcp.WithString(
		"root_slug",
		mcp.Description(
			"Optional: List the contents under this slug (i.e., its children). "+
				"Use the slug from a previous list_sections response.",
		),
	),
)

const (
	defaultTreeDepth = 1
	maxTreeDepth     = 5
)

// listSectionsParams holds parsed and validated request parameters.
type listSectionsParams struct {
	Category string
	RootSlug string
	Depth    int
}

// listSectionsResponse is the JSON structure returned by the tool.
type listSectionsResponse struct {
	Tree       []*docs.SectionDTO `json:"tree"`
	Count      int                `json:"count"`
	Total      int                `json:"total"`
	Categories []string           `json:"categories"`
	FilteredBy *filterInfo        `json:"filtered_by,omitempty"`
	Depth      int                `json:"depth"`
	Usage      string             `json:"usage"`
	RootSlug   string             `json:"root_slug,omitempty"`
}

type filterInfo struct {
	Category string `json:"category,omitempty"`
	RootSlug string `json:"root_slug,omitempty"`
}

// RegisterListSectionsTool registers the list sections tool with the MCP server.
func RegisterListSectionsTool(s *server.MCPServer, source Docs) {
	handler := newListSectionsHandlerFunc(source)
	s.AddTool(ListSectionsTool, withToolLogger("list_sections", handler))
}

// newListSectionsHandlerFunc returns an MCP tool handler bound to a docs source.
func newListSectionsHandlerFunc(
	source Docs,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)
		logger.DebugContext(ctx, "Starting list_sections operation")

		params := parseListSectionsParams(request)
		logParams(ctx, logger, params)

		finder := source.Finder()

		sectionList, err := fetchSections(ctx, logger, finder, params)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		resp, err := buildListSectionsResponse(ctx, logger, finder, params, sectionList)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		logger.InfoContext(ctx, "Sections listed successfully",
			slog.Int("section_count", len(sectionList)),
			slog.String("category", params.Category),
			slog.Int("depth", params.Depth),
			slog.String("root_slug", params.RootSlug))

		return marshalResponse(ctx, logger, resp)
	}
}

func parseListSectionsParams(request mcp.CallToolRequest) listSectionsParams {
	depth := request.GetInt("depth", defaultTreeDepth)
	if depth < 1 {
		depth = defaultTreeDepth
	} else if depth > maxTreeDepth {
		depth = maxTreeDepth
	}

	return listSectionsParams{
		Category: request.GetString("category", ""),
		RootSlug: strings.Trim(request.GetString("root_slug", ""), "/"),
		Depth:    depth,
	}
}

func logParams(ctx context.Context, logger *slog.Logger, params listSectionsParams) {
	logger.DebugContext(ctx, "Parameters",
		slog.String("category", params.Category),
		slog.String("root_slug", params.RootSlug),
		slog.Int("depth", params.Depth))
}

func fetchSections(
	ctx context.Context,
	logger *slog.Logger,
	finder *docs.Finder,
	params listSectionsParams,
) ([]docs.Section, error) {
	if params.Category == "" {
		logger.DebugContext(ctx, "Listing all sections")
		return finder.GetAll(), nil
	}

	logger.DebugContext(ctx, "Filtering by category",
		slog.String("category", params.Category))

	list := finder.GetByCategory(params.Category)
	if len(list) == 0 {
		logger.WarnContext(ctx, "Category not found",
			slog.String("category", params.Category),
			slog.Any("available_categories", finder.GetCategories()))
		return nil, fmt.Errorf("category not found: %s. Available categories: %s",
			params.Category, strings.Join(finder.GetCategories(), ", "))
	}
	return list, nil
}

func buildListSectionsResponse(
	ctx context.Context,
	logger *slog.Logger,
	finder *docs.Finder,
	params listSectionsParams,
	sectionList []docs.Section,
) (*listSectionsResponse, error) {
	treeNodes, err := docs.BuildSectionTree(sectionList, params.RootSlug, params.Depth)
	if err != nil {
		logger.WarnContext(ctx, "Failed to build section tree",
			slog.String("root_slug", params.RootSlug),
			slog.Int("depth", params.Depth),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build section tree: %w", err)
	}

	resp := &listSectionsResponse{
		Tree:       docs.NodesToDTO(treeNodes),
		Count:      len(treeNodes),
		Total:      len(sectionList),
		Categories: finder.GetCategories(),
		Depth:      params.Depth,
		RootSlug:   params.RootSlug,
	}

	if params.Category == "" {
		resp.Usage = "Use the 'slug' field with get_documentation tool to retrieve full content. " +
			"Use 'root_slug' to expand any branch and 'depth' to include more nested children."
	} else {
		resp.Usage = "Use the 'slug' field with get_documentation tool to retrieve full content. " +
			"Adjust 'root_slug' or 'depth' to explore deeper within this category."
	}

	if params.Category != "" || params.RootSlug != "" {
		resp.FilteredBy = &filterInfo{
			Category: params.Category,
			RootSlug: params.RootSlug,
		}
	}

	return resp, nil
}

func marshalResponse(ctx context.Context, logger *slog.Logger, v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.ErrorContext(ctx, "Failed to marshal response",
			slog.String("error", err.Error()))
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
