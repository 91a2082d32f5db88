package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/internal/parquet"
)

// ExecuteHistoryExport writes the run history to two Parquet files,
// <outputFile>.runs.parquet and <outputFile>.results.parquet.
func ExecuteHistoryExport(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no history data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total results: %d\n", status.TotalResults)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	results, err := store.GetAllResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve results: %w", err)
	}

	runRows := parquet.ConvertRunRecords(runs)
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runRows), runsFile)

	resultRows := parquet.ConvertResultRecords(results)
	resultsFile := outputFile + ".results.parquet"
	if err := parquet.WriteResultsParquet(resultRows, resultsFile); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d results to: %s\n", len(resultRows), resultsFile)
	return nil
}
