package mcp

import (
	"context"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dshills/linecount/internal/config"
)

const (
	// ServerName is the MCP server name
	ServerName = "linecount"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp    *server.MCPServer
	fs     billy.Filesystem
	cfg    *config.Config
	logger *zap.Logger
}

// NewServer creates a new MCP server instance counting files on fsys.
// cfg supplies the default extensions, exclusions and worker count.
func NewServer(fsys billy.Filesystem, cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcp:    mcpServer,
		fs:     fsys,
		cfg:    cfg,
		logger: logger,
	}

	s.registerTools()

	return s
}

// Serve starts the MCP server on stdio and blocks until ctx is cancelled
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("MCP server ready, listening on stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(countLinesTool(), s.handleCountLines)
	s.mcp.AddTool(getDefaultsTool(), s.handleGetDefaults)
}
