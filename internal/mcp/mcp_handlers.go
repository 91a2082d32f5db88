package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/docdiff/core"
	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	client  contract.ReportClient
}

// compareResponse is the payload of compare_documents.
type compareResponse struct {
	Source schema.RunSource  `json:"source"`
	Report schema.ReportView `json:"report"`
}

// resultSummary is one result in summarize_report.
type resultSummary struct {
	ItemType string      `json:"item_type"`
	ItemID   string      `json:"item_id"`
	Overall  float64     `json:"overall"`
	Tier     schema.Tier `json:"tier"`
	Groups   int         `json:"groups"`
}

// reportSummary is the payload of summarize_report.
type reportSummary struct {
	FileID1          string                `json:"file_id_1"`
	FileID2          string                `json:"file_id_2"`
	Mode             schema.CompareMode    `json:"mode"`
	TotalComparisons int                   `json:"total_comparisons"`
	Stats            schema.AggregateStats `json:"stats"`
	Results          []resultSummary       `json:"results"`
}

func (h *toolHandler) handleCompareDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := &contract.Config{MaxLength: contract.DefaultMaxLength}
	if h.baseCfg != nil {
		cfg = h.baseCfg.Clone()
	}
	cfg.FileID1 = strings.TrimSpace(request.GetString("file_id_1", ""))
	cfg.FileID2 = strings.TrimSpace(request.GetString("file_id_2", ""))
	if m := request.GetString("mode", ""); m != "" {
		cfg.Mode = schema.CompareMode(strings.ToLower(m))
	}
	if cfg.Mode == "" {
		cfg.Mode = schema.SectionMode
	}
	cfg.Query = nil
	if q := strings.TrimSpace(request.GetString("query", "")); q != "" {
		cfg.Query = &q
	}
	if l := request.GetInt("max_length", 0); l > 0 {
		cfg.MaxLength = l
	}

	if cfg.Mode == schema.StringMode && cfg.Query == nil {
		return mcp.NewToolResultError("invalid comparison parameters: string mode requires query"), nil
	}

	output, err := core.RunCompare(ctx, cfg, h.mgr, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(compareResponse{Source: output.Source, Report: output.View})
}

func (h *toolHandler) handleSummarizeReport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := core.DecodeReport(strings.NewReader(request.GetString("report_json", "")))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := core.ValidateReport(report); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid comparison report: %v", err)), nil
	}
	view, err := core.BuildReportView(report, h.maxLength(0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}

	summary := reportSummary{
		FileID1:          view.FileID1,
		FileID2:          view.FileID2,
		Mode:             view.Mode,
		TotalComparisons: view.TotalComparisons,
		Stats:            view.Stats,
		Results:          make([]resultSummary, len(view.Results)),
	}
	for i, r := range view.Results {
		summary.Results[i] = resultSummary{
			ItemType: r.ItemType,
			ItemID:   r.ItemID,
			Overall:  r.Overall,
			Tier:     r.Badge.Tier,
			Groups:   len(r.Groups),
		}
	}
	return jsonResult(summary)
}

func (h *toolHandler) handleGroupSegments(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	segments, err := core.DecodeSegments(strings.NewReader(request.GetString("segments_json", "")))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := core.ValidateSegments(segments); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid segments: %v", err)), nil
	}
	maxLength := h.maxLength(request.GetInt("max_length", 0))
	return jsonResult(core.BuildGroupViews(segments, maxLength))
}

func (h *toolHandler) handleClassifySimilarity(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	score, err := request.RequireFloat("score")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rows, err := core.ClassifyScores([]float64{score})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}
	return jsonResult(rows[0])
}

// maxLength prefers the request value, then the configured one, then the default.
func (h *toolHandler) maxLength(requested int) int {
	if requested > 0 {
		return requested
	}
	if h.baseCfg != nil && h.baseCfg.MaxLength > 0 {
		return h.baseCfg.MaxLength
	}
	return contract.DefaultMaxLength
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
