package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/grafana/docnav/internal/buildinfo"
	"github.com/grafana/docnav/tools"
)

// Server instructions are a good opportunity to give the agent a high-level overview of the tools
// that will be made available. However, it should be kept as brief as possible, as
// to not waste conversation tokens.
const instructions = `
Use the provided tools for browsing the project documentation: list_sections to discover pages,
get_documentation to read one, and sidebar_state to see how the navigation sidebar looks on a page.
`

//nolint:gochecknoglobals // Allows test override for stdio server.
var serveStdio = server.ServeStdio

func (a *app) mcpCommand() *cobra.Command {
	var (
		transport    string
		addr         string
		ssePath      string
		messagesPath string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server over the documentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.logger.Info("Starting docnav MCP server",
				slog.String("version", buildinfo.Version),
				slog.String("commit", buildinfo.Commit),
				slog.String("built_at", buildinfo.Date),
				slog.String("transport", transport))

			s, err := a.newSite()
			if err != nil {
				return err
			}

			mcpServer := server.NewMCPServer(
				"docnav",
				buildinfo.Version,
				server.WithLogging(),
				server.WithRecovery(),
				server.WithInstructions(instructions),
			)

			// Register tools
			tools.RegisterInfoTool(mcpServer, s)
			tools.RegisterListSectionsTool(mcpServer, s)
			tools.RegisterGetDocumentationTool(mcpServer, s)
			tools.RegisterSidebarStateTool(mcpServer, s)

			switch transport {
			case "stdio":
				a.logger.Info("Starting MCP server on stdio")
				if err := serveStdio(mcpServer); err != nil {
					return fmt.Errorf("MCP server exited with error: %w", err)
				}
				return nil
			case "sse":
				return a.serveSSE(cmd.Context(), mcpServer, addr, ssePath, messagesPath)
			default:
				return fmt.Errorf("unknown transport %q: must be stdio or sse", transport)
			}
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport mode: stdio or sse")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP address to listen on")
	cmd.Flags().StringVar(&ssePath, "sse-path", "/sse", "Path for SSE endpoint")
	cmd.Flags().StringVar(&messagesPath, "messages-path", "/messages", "Path for message posting")

	return cmd
}

func (a *app) serveSSE(ctx context.Context, s *server.MCPServer, addr, ssePath, messagesPath string) error {
	// Construct BaseURL from the address
	baseURL := "http://localhost:8080"
	if addr != "" {
		if addr[0] == ':' {
			baseURL = "http://localhost" + addr
		} else {
			baseURL = "http://" + addr
		}
	}

	sseServer := server.NewSSEServer(s,
		server.WithBaseURL(baseURL),
		server.WithSSEEndpoint(ssePath),
		server.WithMessageEndpoint(messagesPath),
	)
	mux := http.NewServeMux()
	mux.Handle(ssePath, sseServer)
	mux.Handle(messagesPath, sseServer)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.logger.Info("Starting MCP server on HTTP",
		slog.String("addr", addr),
		slog.String("sse_path", ssePath),
		slog.String("messages_path", messagesPath),
		slog.String("base_url", baseURL))

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("MCP server exited with error: %w", err)
	}
}
