package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/grafana/docnav/internal/logging"
	"github.com/grafana/docnav/internal/markup"
	"github.com/grafana/docnav/internal/nav"
)

// SidebarStateTool exposes a tool that activates the sidebar for a page path.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var SidebarStateTool = mcp.NewTool(
	"sidebar_state",
	mcp.WithDescription(
		"Shows how the documentation sidebar looks on a given page: which links are marked current, "+
			"which sections are expanded to reveal them, and where the sidebar is scrolled. "+
			"Use this to check that a page is reachable from the navigation.",
	),
	mcp.WithString(
		"path",
		mcp.Required(),
		mcp.Description(
			"URL path of the page (e.g., '/guide/install/'). Trailing slashes are ignored. "+
				"Use the url_path field from list_sections output.",
		),
	),
)

// SidebarActivator activates the site sidebar for a page path.
type SidebarActivator interface {
	SidebarState(currentPath string) (*markup.Document, nav.Report, error)
}

type sidebarLink struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// sidebarStateResponse is the JSON structure returned by the tool.
type sidebarStateResponse struct {
	Path      string        `json:"path"`
	Matched   bool          `json:"matched"`
	Current   []sidebarLink `json:"current"`
	Expanded  []string      `json:"expanded"`
	Scrolled  bool          `json:"scrolled"`
	ScrollTop int           `json:"scroll_top"`
}

// RegisterSidebarStateTool registers the sidebar state tool with the MCP server.
func RegisterSidebarStateTool(s *server.MCPServer, activator SidebarActivator) {
	s.AddTool(SidebarStateTool, withToolLogger("sidebar_state", newSidebarStateHandlerFunc(activator)))
}

func newSidebarStateHandlerFunc(
	activator SidebarActivator,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)

		path, err := request.RequireString("path")
		if err != nil {
			logger.WarnContext(ctx, "Invalid parameters", slog.String("error", err.Error()))
			return mcp.NewToolResultError(fmt.Sprintf("missing or invalid path parameter: %v", err)), nil
		}

		_, report, err := activator.SidebarState(path)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to activate sidebar",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return mcp.NewToolResultError("failed to activate sidebar: " + err.Error()), nil
		}

		resp := sidebarStateResponse{
			Path:      report.Path,
			Matched:   len(report.Current) > 0,
			Current:   make([]sidebarLink, 0, len(report.Current)),
			Expanded:  make([]string, 0, len(report.Expanded)),
			Scrolled:  report.Scrolled,
			ScrollTop: report.ScrollTop,
		}
		for _, link := range report.Current {
			resp.Current = append(resp.Current, sidebarLink{Title: link.Title, Href: link.Href})
		}
		for _, section := range report.Expanded {
			resp.Expanded = append(resp.Expanded, section.ID)
		}

		logger.InfoContext(ctx, "Sidebar activated",
			slog.String("path", path),
			slog.Int("current_links", len(resp.Current)),
			slog.Int("expanded_sections", len(resp.Expanded)))

		return marshalResponse(ctx, logger, resp)
	}
}
