// Package mcp exposes the site's published content to AI agents over the
// Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/vidsponential/website/internal/dataapi"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Options shape the text returned by the content tools.
type Options struct {
	ExcerptLen   int
	ActiveStatus int
}

// Server wraps an MCP server that exposes read-only content tools.
type Server struct {
	src  dataapi.Source
	opts Options
	mcp  *server.MCPServer
}

// NewServer creates a new MCP server reading from src.
func NewServer(src dataapi.Source, opts Options) *Server {
	if opts.ExcerptLen <= 0 {
		opts.ExcerptLen = 150
	}
	if opts.ActiveStatus == 0 {
		opts.ActiveStatus = 1
	}
	s := &Server{
		src:  src,
		opts: opts,
	}

	s.mcp = server.NewMCPServer(
		"vidsite",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listNichesTool, s.handleListNiches)
	s.mcp.AddTool(listArticlesTool, s.handleListArticles)
	s.mcp.AddTool(getArticleTool, s.handleGetArticle)
	s.mcp.AddTool(listScriptsTool, s.handleListScripts)
	s.mcp.AddTool(getPromptTool, s.handleGetPrompt)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
