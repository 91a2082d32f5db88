// Package core has the engine that turns comparison reports into grouped,
// truncated and classified views, plus the executors behind each command.
package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/internal/outwriter"
	"github.com/huangsam/docdiff/schema"
)

// ExecutorFunc defines the function signature for commands that render a report file.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// CompareOutput is the result of a compare run before it is written.
type CompareOutput struct {
	Report  *schema.ComparisonReport
	Session *Session
	View    schema.ReportView
	Source  schema.RunSource
}

// ExecuteCompare fetches a report (or serves it from the cache), records it in
// the run history and writes it in the configured format.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, client contract.ReportClient) error {
	start := time.Now()
	output, err := RunCompare(ctx, cfg, mgr, client)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteReport(output.View, output.Session.Expansion(), cfg, time.Since(start))
}

// RunCompare performs the fetch, validation, caching and history steps of a
// compare without writing any output.
func RunCompare(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, client contract.ReportClient) (*CompareOutput, error) {
	req := cfg.CompareRequest()
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	ctx = contract.WithRequestID(ctx, requestID)
	startedAt := time.Now()

	report, source, err := cachedCompare(ctx, cfg, req, reportStore(mgr), client)
	if err != nil {
		return nil, err
	}

	session := NewSession()
	if err := session.Load(report); err != nil {
		return nil, fmt.Errorf("invalid comparison report: %w", err)
	}
	if cfg.Collapse {
		session.Expansion().CollapseAll()
	}
	view, err := session.View(cfg.MaxLength)
	if err != nil {
		return nil, err
	}

	recordRun(historyStore(mgr), schema.RunInfo{
		RequestID: requestID,
		StartedAt: startedAt,
		FileID1:   report.FileID1,
		FileID2:   report.FileID2,
		Mode:      report.Mode,
		Source:    source,
	}, report, view)

	return &CompareOutput{Report: report, Session: session, View: view, Source: source}, nil
}

// ExecuteRender loads a report file, records it in the run history and writes it.
func ExecuteRender(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := LoadReportFile(cfg.ReportPath)
	if err != nil {
		return err
	}

	session := NewSession()
	if err := session.Load(report); err != nil {
		return fmt.Errorf("invalid comparison report: %w", err)
	}
	if cfg.Collapse {
		session.Expansion().CollapseAll()
	}
	view, err := session.View(cfg.MaxLength)
	if err != nil {
		return err
	}

	recordRun(historyStore(mgr), schema.RunInfo{
		RequestID: uuid.NewString(),
		StartedAt: start,
		FileID1:   report.FileID1,
		FileID2:   report.FileID2,
		Mode:      report.Mode,
		Source:    schema.FileSource,
	}, report, view)

	if err := ctx.Err(); err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteReport(view, session.Expansion(), cfg, time.Since(start))
}

// ExecuteStats loads a report file and writes only its aggregate statistics.
func ExecuteStats(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	report, err := LoadReportFile(cfg.ReportPath)
	if err != nil {
		return err
	}
	if err := ValidateReport(report); err != nil {
		return fmt.Errorf("invalid comparison report: %w", err)
	}
	view, err := BuildReportView(report, cfg.MaxLength)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStats(view, cfg)
}

// ExecuteGroup groups and truncates a bare segment list.
func ExecuteGroup(_ context.Context, cfg *contract.Config, segments []schema.Segment) error {
	if err := ValidateSegments(segments); err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteGroups(BuildGroupViews(segments, cfg.MaxLength), cfg)
}

// ExecuteClassify classifies each score on both scales.
func ExecuteClassify(_ context.Context, cfg *contract.Config, scores []float64) error {
	rows, err := ClassifyScores(scores)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteClassifications(rows, cfg)
}

// ClassifyScores places every score on the badge and bar scales.
// The first out-of-range score aborts with a ContractViolation.
func ClassifyScores(scores []float64) ([]schema.ScoreClassification, error) {
	rows := make([]schema.ScoreClassification, 0, len(scores))
	for i, score := range scores {
		if err := checkScore(fmt.Sprintf("scores[%d]", i), score); err != nil {
			return nil, err
		}
		badge, _ := Classify(score)
		bar, _ := ClassifyBar(score)
		rows = append(rows, schema.ScoreClassification{Score: score, Badge: badge, Bar: bar})
	}
	return rows, nil
}

// ValidateSegments checks that every segment carries a known operation.
func ValidateSegments(segments []schema.Segment) error {
	for i, seg := range segments {
		if _, ok := schema.ValidOperations[seg.Operation]; !ok {
			return schema.NewContractViolation(fmt.Sprintf("segments[%d].operation", i), seg.Operation, "is not a known operation")
		}
	}
	return nil
}

// LoadReportFile reads a report from a path, or stdin for "-".
func LoadReportFile(path string) (*schema.ComparisonReport, error) {
	file, err := contract.OpenInput(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	if path != "-" {
		defer func() { _ = file.Close() }()
	}
	return DecodeReport(file)
}

// DecodeReport decodes a JSON report.
func DecodeReport(r io.Reader) (*schema.ComparisonReport, error) {
	var report schema.ComparisonReport
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}

// DecodeSegments decodes a JSON segment list.
func DecodeSegments(r io.Reader) ([]schema.Segment, error) {
	var segments []schema.Segment
	if err := json.NewDecoder(r).Decode(&segments); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("failed to decode segments: empty input")
		}
		return nil, fmt.Errorf("failed to decode segments: %w", err)
	}
	return segments, nil
}

func reportStore(mgr contract.CacheManager) contract.CacheStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetReportStore()
}

func historyStore(mgr contract.CacheManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}

// recordRun stores a finished run and one summary row per result.
// History failures are logged and never fail the command.
func recordRun(store contract.HistoryStore, info schema.RunInfo, report *schema.ComparisonReport, view schema.ReportView) {
	if store == nil {
		return
	}
	logger := contract.Logger().With().Str("request_id", info.RequestID).Logger()

	runID, err := store.BeginRun(info)
	if err != nil {
		contract.LogWarn("failed to begin history run", err)
		return
	}

	for i, r := range report.Results {
		stats, _ := Aggregate([]schema.ComparisonResult{r})
		record := schema.ResultRecord{
			RunID:        runID,
			Position:     int32(i),
			ItemType:     r.ItemType,
			ItemID:       r.ItemID,
			Overall:      r.Similarity.Overall,
			Tier:         string(view.Results[i].Badge.Tier),
			EqualCount:   int32(stats.Equal),
			DeleteCount:  int32(stats.Delete),
			InsertCount:  int32(stats.Insert),
			ReplaceCount: int32(stats.Replace),
		}
		if err := store.RecordResult(runID, record); err != nil {
			contract.LogWarn("failed to record history result", err)
		}
	}

	if err := store.EndRun(runID, time.Now(), len(report.Results), view.Stats.AvgSimilarity); err != nil {
		contract.LogWarn("failed to end history run", err)
		return
	}
	logger.Debug().Int64("run_id", runID).Str("source", string(info.Source)).Msg("recorded run")
}
