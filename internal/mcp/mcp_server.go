// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/docdiff/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the docdiff MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager, client contract.ReportClient) *server.MCPServer {
	s := server.NewMCPServer(
		"Docdiff Report Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		client:  client,
	}

	// --- 1. Tool: compare_documents ---
	s.AddTool(mcp.NewTool("compare_documents",
		mcp.WithDescription("Compare two uploaded documents and return the grouped, classified report."),
		mcp.WithString("file_id_1", mcp.Description("ID of the first document."), mcp.Required()),
		mcp.WithString("file_id_2", mcp.Description("ID of the second document."), mcp.Required()),
		mcp.WithString("mode", mcp.Description("Comparison granularity. Defaults to 'section'."),
			mcp.Enum("page", "section", "table", "string", "structure")),
		mcp.WithString("query", mcp.Description("Query text. Required for string mode.")),
		mcp.WithNumber("max_length", mcp.Description("Maximum characters shown per diff group.")),
	), h.handleCompareDocuments)

	// --- 2. Tool: summarize_report ---
	s.AddTool(mcp.NewTool("summarize_report",
		mcp.WithDescription("Validate a comparison report and summarize its statistics and per-result tiers."),
		mcp.WithString("report_json", mcp.Description("The comparison report as JSON."), mcp.Required()),
	), h.handleSummarizeReport)

	// --- 3. Tool: group_segments ---
	s.AddTool(mcp.NewTool("group_segments",
		mcp.WithDescription("Merge adjacent diff segments with the same operation and truncate each group."),
		mcp.WithString("segments_json", mcp.Description("A JSON array of {operation, text} segments."), mcp.Required()),
		mcp.WithNumber("max_length", mcp.Description("Maximum characters shown per group.")),
	), h.handleGroupSegments)

	// --- 4. Tool: classify_similarity ---
	s.AddTool(mcp.NewTool("classify_similarity",
		mcp.WithDescription("Classify a similarity score on the badge and bar scales."),
		mcp.WithNumber("score", mcp.Description("Similarity score in [0,1]."), mcp.Required()),
	), h.handleClassifySimilarity)

	return s
}

// StartMCPServer starts the docdiff MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager, client contract.ReportClient) error {
	s := NewMCPServer(baseCfg, mgr, client)
	return server.ServeStdio(s)
}
