package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.MetricStore
}

// parseSince validates an optional YYYY-MM-DD lower bound.
func parseSince(request mcp.CallToolRequest) (time.Time, error) {
	raw := request.GetString("since", "")
	if raw == "" {
		return time.Time{}, nil
	}
	since, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid since date %q; expected YYYY-MM-DD", raw)
	}
	return since, nil
}

// tailRows keeps the most recent limit rows when limit is positive.
func tailRows[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[len(rows)-limit:]
	}
	return rows
}

// filterSince drops rows whose day precedes since.
func filterSince[T any](rows []T, since time.Time, dayOf func(T) time.Time) []T {
	if since.IsZero() {
		return rows
	}
	filtered := make([]T, 0, len(rows))
	for _, row := range rows {
		if !dayOf(row).Before(since) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// resultJSON renders rows as an indented JSON tool result.
func resultJSON(rows any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetDailySize(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	since, err := parseSince(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows, err := h.store.ProjectSizePerDay()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("size query failed: %v", err)), nil
	}

	rows = filterSince(rows, since, func(r schema.ProjectSizeDayRow) time.Time { return r.Date })
	rows = tailRows(rows, request.GetInt("limit", 0))
	return resultJSON(rows), nil
}

func (h *toolHandler) handleGetProductivity(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	since, err := parseSince(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows, err := h.store.ProductivityPerDay()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("productivity query failed: %v", err)), nil
	}

	rows = filterSince(rows, since, func(r schema.ProductivityDayRow) time.Time { return r.Date })
	rows = tailRows(rows, request.GetInt("limit", 0))
	return resultJSON(rows), nil
}

func (h *toolHandler) handleGetBusFactor(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	since, err := parseSince(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows, err := h.store.BusFactor()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("bus factor query failed: %v", err)), nil
	}

	rows = filterSince(rows, since, func(r schema.BusFactorRow) time.Time { return r.Date })
	rows = tailRows(rows, request.GetInt("limit", 0))
	return resultJSON(rows), nil
}

func (h *toolHandler) handleGetSpoilage(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.store.IssueSpoilage()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("spoilage query failed: %v", err)), nil
	}

	rows = tailRows(rows, request.GetInt("limit", 0))
	return resultJSON(rows), nil
}

func (h *toolHandler) handleGetDensity(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	since, err := parseSince(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows, err := h.store.IssueDensity()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("density query failed: %v", err)), nil
	}

	rows = filterSince(rows, since, func(r schema.DensityRow) time.Time { return r.Date })
	rows = tailRows(rows, request.GetInt("limit", 0))
	return resultJSON(rows), nil
}

func (h *toolHandler) handleGetStoreStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status query failed: %v", err)), nil
	}
	return resultJSON(status), nil
}
