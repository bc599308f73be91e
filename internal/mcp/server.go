// Package mcp exposes gardenview to planning agents over the Model Context
// Protocol.
package mcp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fentz26/gardenview/internal/codec"
	"github.com/fentz26/gardenview/internal/mcp/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "gardenview"
	ServerVersion = "v0.1.0"
)

// Options configures a Server.
type Options struct {
	Decoder *codec.Decoder
	// BaseURL is the viewer address links point at.
	BaseURL string
	Logger  *slog.Logger
}

// Server wraps the MCP server with the garden viewer tools.
type Server struct {
	mcpServer *mcp.Server
	logger    *slog.Logger
	handler   *tools.Handler
}

// NewServer creates a new gardenview MCP server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		logger:    logger,
		handler:   tools.NewHandler(opts.Decoder, opts.BaseURL, logger),
	}

	s.registerTools()
	return s
}

// registerTools adds all MCP tools to the server
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, tools.CreateLinkTool(), s.handler.HandleCreateLink)
	mcp.AddTool(s.mcpServer, tools.ReadLinkTool(), s.handler.HandleReadLink)
	mcp.AddTool(s.mcpServer, tools.CheckTool(), s.handler.HandleCheck)
}

// HTTPHandler returns an http.Handler for the MCP server
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server {
			return s.mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Logger: s.logger,
		},
	)
}

// Run starts the MCP server over stdio (for CLI usage)
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves one session on the given transport. Tests use it with
// in-memory transports.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}
