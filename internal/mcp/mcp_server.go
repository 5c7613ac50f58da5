// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the contribution tracker MCP server
// without starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"GitLab Contribution Tracker",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: query_contributions ---
	s.AddTool(mcp.NewTool("query_contributions",
		mcp.WithDescription("Collect commit, merge request, issue, and comment activity for a single GitLab user."),
		mcp.WithString("username", mcp.Description("The GitLab username to look up."), mcp.Required()),
		mcp.WithString("start", mcp.Description("Start of the collection window (e.g., '2024-01-01' or '3 months ago').")),
		mcp.WithString("end", mcp.Description("End of the collection window (defaults to now).")),
		mcp.WithString("lookback", mcp.Description("Time window relative to the end date (e.g., '6 months', '30d'). Ignored when start is given.")),
		mcp.WithBoolean("strict_match", mcp.Description("Require an exact username match instead of falling back to fuzzy search.")),
		mcp.WithBoolean("include_accessible", mcp.Description("Also scan projects the user can merely access, beyond owned and contributed ones.")),
	), h.handleQueryContributions)

	// --- 2. Tool: grade_batch ---
	s.AddTool(mcp.NewTool("grade_batch",
		mcp.WithDescription("Collect contributions for a roster of GitLab users and grade each against the cohort mean."),
		mcp.WithString("usernames", mcp.Description("Comma-separated list of GitLab usernames to grade."), mcp.Required()),
		mcp.WithString("start", mcp.Description("Start of the collection window (e.g., '2024-01-01' or '3 months ago').")),
		mcp.WithString("end", mcp.Description("End of the collection window (defaults to now).")),
		mcp.WithString("lookback", mcp.Description("Time window relative to the end date (e.g., '6 months', '30d'). Ignored when start is given.")),
		mcp.WithBoolean("strict_match", mcp.Description("Require exact username matches instead of falling back to fuzzy search.")),
	), h.handleGradeBatch)

	return s
}

// StartMCPServer starts the contribution tracker MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
