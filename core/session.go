package core

import "github.com/huangsam/docdiff/schema"

// Session holds the currently loaded report and its expansion state.
// A fresh session has no report, which is a valid state.
type Session struct {
	report    *schema.ComparisonReport
	expansion *ExpansionState
}

// NewSession returns a session with no report loaded.
func NewSession() *Session {
	return &Session{expansion: NewExpansionState()}
}

// Load validates and installs a report, resetting every result to expanded.
// On failure the previous report is kept.
func (s *Session) Load(report *schema.ComparisonReport) error {
	if err := ValidateReport(report); err != nil {
		return err
	}
	s.report = report
	s.expansion.InitializeAll(len(report.Results))
	return nil
}

// Report returns the loaded report, if any.
func (s *Session) Report() (*schema.ComparisonReport, bool) {
	return s.report, s.report != nil
}

// Expansion returns the expansion state for the loaded report.
func (s *Session) Expansion() *ExpansionState {
	return s.expansion
}

// View builds the render model for the loaded report.
func (s *Session) View(maxLength int) (schema.ReportView, error) {
	return BuildReportView(s.report, maxLength)
}
