// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huangsam/repopulse/internal/contract"
)

// NewMCPServer initializes and configures the Repopulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.MetricStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Repopulse Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: get_daily_size ---
	s.AddTool(mcp.NewTool("get_daily_size",
		mcp.WithDescription("Fetch the flood-filled daily project size series (lines, code, comments, blanks, bytes per day)."),
		mcp.WithString("since", mcp.Description("Only return days on or after this date (YYYY-MM-DD).")),
		mcp.WithNumber("limit", mcp.Description("Limit to the most recent N rows.")),
	), h.handleGetDailySize)

	// --- 2. Tool: get_productivity ---
	s.AddTool(mcp.NewTool("get_productivity",
		mcp.WithDescription("Fetch the day-over-day productivity deltas derived from the daily size series."),
		mcp.WithString("since", mcp.Description("Only return days on or after this date (YYYY-MM-DD).")),
		mcp.WithNumber("limit", mcp.Description("Limit to the most recent N rows.")),
	), h.handleGetProductivity)

	// --- 3. Tool: get_bus_factor ---
	s.AddTool(mcp.NewTool("get_bus_factor",
		mcp.WithDescription("Fetch per-day per-committer absolute churn. Committer -1 marks days with no attributable committer."),
		mcp.WithString("since", mcp.Description("Only return days on or after this date (YYYY-MM-DD).")),
		mcp.WithNumber("limit", mcp.Description("Limit to the most recent N rows.")),
	), h.handleGetBusFactor)

	// --- 4. Tool: get_spoilage ---
	s.AddTool(mcp.NewTool("get_spoilage",
		mcp.WithDescription("Fetch the count of tracker issues open during each day of repository history."),
		mcp.WithNumber("limit", mcp.Description("Limit to the most recent N rows.")),
	), h.handleGetSpoilage)

	// --- 5. Tool: get_density ---
	s.AddTool(mcp.NewTool("get_density",
		mcp.WithDescription("Fetch daily open-issue counts aligned with same-day project size."),
		mcp.WithString("since", mcp.Description("Only return days on or after this date (YYYY-MM-DD).")),
		mcp.WithNumber("limit", mcp.Description("Limit to the most recent N rows.")),
	), h.handleGetDensity)

	// --- 6. Tool: get_store_status ---
	s.AddTool(mcp.NewTool("get_store_status",
		mcp.WithDescription("Report per-table row counts for the metric store."),
	), h.handleGetStoreStatus)

	return s
}

// StartMCPServer starts the Repopulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.MetricStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
