// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/schema"
)

// Expander reports whether a result renders its detail body.
type Expander interface {
	IsExpanded(index int) bool
}

// allExpanded renders every result body.
type allExpanded struct{}

func (allExpanded) IsExpanded(int) bool { return true }

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a rendered report using the configured output format.
// A nil expander renders every result body.
func (ow *OutWriter) WriteReport(view schema.ReportView, expansion Expander, cfg *contract.Config, duration time.Duration) error {
	if expansion == nil {
		expansion = allExpanded{}
	}
	return WriteReportView(view, expansion, cfg, duration)
}

// WriteStats prints aggregate statistics using the configured output format.
func (ow *OutWriter) WriteStats(view schema.ReportView, cfg *contract.Config) error {
	return WriteStatsView(view, cfg)
}

// WriteGroups prints grouped, truncated segments using the configured output format.
func (ow *OutWriter) WriteGroups(groups []schema.GroupView, cfg *contract.Config) error {
	return WriteGroupViews(groups, cfg)
}

// WriteClassifications prints scores classified on both scales.
func (ow *OutWriter) WriteClassifications(rows []schema.ScoreClassification, cfg *contract.Config) error {
	return WriteScoreClassifications(rows, cfg)
}
