package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rohit-Singh-01/git-tracker/core"
	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/Rohit-Singh-01/git-tracker/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// applyWindowOverrides re-resolves the collection window from request parameters.
func applyWindowOverrides(cfg *contract.Config, request mcp.CallToolRequest) error {
	start := request.GetString("start", "")
	end := request.GetString("end", "")
	lookback := request.GetString("lookback", "")
	if start == "" && end == "" && lookback == "" {
		return nil
	}
	return contract.RevalidateWindow(cfg, start, end, lookback)
}

func (h *toolHandler) handleQueryContributions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	username := strings.TrimSpace(request.GetString("username", ""))
	if username == "" {
		return mcp.NewToolResultError("username is required"), nil
	}
	cfg.Usernames = []string{username}
	cfg.StrictMatch = request.GetBool("strict_match", cfg.StrictMatch)
	cfg.IncludeAccessible = request.GetBool("include_accessible", cfg.IncludeAccessible)

	if err := applyWindowOverrides(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid window parameters: %v", err)), nil
	}

	record, err := core.GetQueryResult(core.WithSuppressHeader(ctx), cfg, h.mgr, username)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("collection failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(record, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGradeBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	var usernames []string
	for _, raw := range strings.Split(request.GetString("usernames", ""), ",") {
		if name := strings.TrimSpace(raw); name != "" {
			usernames = append(usernames, name)
		}
	}
	if len(usernames) == 0 {
		return mcp.NewToolResultError("usernames is required"), nil
	}
	cfg.Usernames = usernames
	cfg.StrictMatch = request.GetBool("strict_match", cfg.StrictMatch)

	if err := applyWindowOverrides(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid window parameters: %v", err)), nil
	}

	results, stats, err := core.GetBatchResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("batch grading failed: %v", err)), nil
	}

	model := batchRenderModel{Cohort: stats}
	for _, result := range results {
		user := batchUserRender{Username: result.Username, Record: result.Record}
		if result.Err != nil {
			user.Error = result.Err.Error()
		}
		model.Users = append(model.Users, user)
	}

	jsonData, _ := json.MarshalIndent(model, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// batchRenderModel is the JSON shape returned by the grade_batch tool.
type batchRenderModel struct {
	Cohort schema.CohortStats `json:"cohort"`
	Users  []batchUserRender  `json:"users"`
}

// batchUserRender is one user's outcome inside the grade_batch response.
type batchUserRender struct {
	Username string               `json:"username"`
	Record   *schema.GradedRecord `json:"record,omitempty"`
	Error    string               `json:"error,omitempty"`
}
