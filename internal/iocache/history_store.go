package iocache

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/schema"
)

// Table names for run history.
const (
	runsTable    = "docdiff_runs"
	resultsTable = "docdiff_results"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the run history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{resultsTable, getCreateResultsQuery(backend)},
	}
	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for docdiff_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				request_id VARCHAR(64) NOT NULL,
				started_at DATETIME(6) NOT NULL,
				finished_at DATETIME(6),
				duration_ms BIGINT,
				file_id_1 VARCHAR(255) NOT NULL,
				file_id_2 VARCHAR(255) NOT NULL,
				mode VARCHAR(32) NOT NULL,
				source VARCHAR(32) NOT NULL,
				total_comparisons INT,
				avg_similarity DOUBLE
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				request_id TEXT NOT NULL,
				started_at TIMESTAMPTZ NOT NULL,
				finished_at TIMESTAMPTZ,
				duration_ms BIGINT,
				file_id_1 TEXT NOT NULL,
				file_id_2 TEXT NOT NULL,
				mode TEXT NOT NULL,
				source TEXT NOT NULL,
				total_comparisons INT,
				avg_similarity DOUBLE PRECISION
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				request_id TEXT NOT NULL,
				started_at TEXT NOT NULL,
				finished_at TEXT,
				duration_ms INTEGER,
				file_id_1 TEXT NOT NULL,
				file_id_2 TEXT NOT NULL,
				mode TEXT NOT NULL,
				source TEXT NOT NULL,
				total_comparisons INTEGER,
				avg_similarity REAL
			);
		`, quotedTableName)
	}
}

// getCreateResultsQuery returns the CREATE TABLE query for docdiff_results.
func getCreateResultsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(resultsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				position INT NOT NULL,
				item_type VARCHAR(64) NOT NULL,
				item_id VARCHAR(512) NOT NULL,
				overall DOUBLE NOT NULL,
				tier VARCHAR(16) NOT NULL,
				equal_count INT NOT NULL,
				delete_count INT NOT NULL,
				insert_count INT NOT NULL,
				replace_count INT NOT NULL,
				PRIMARY KEY (run_id, position)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				position INT NOT NULL,
				item_type TEXT NOT NULL,
				item_id TEXT NOT NULL,
				overall DOUBLE PRECISION NOT NULL,
				tier TEXT NOT NULL,
				equal_count INT NOT NULL,
				delete_count INT NOT NULL,
				insert_count INT NOT NULL,
				replace_count INT NOT NULL,
				PRIMARY KEY (run_id, position)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				position INTEGER NOT NULL,
				item_type TEXT NOT NULL,
				item_id TEXT NOT NULL,
				overall REAL NOT NULL,
				tier TEXT NOT NULL,
				equal_count INTEGER NOT NULL,
				delete_count INTEGER NOT NULL,
				insert_count INTEGER NOT NULL,
				replace_count INTEGER NOT NULL,
				PRIMARY KEY (run_id, position)
			);
		`, quotedTableName)
	}
}

// disabled reports whether the store is a no-op.
func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(info schema.RunInfo) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	cols := "request_id, started_at, file_id_1, file_id_2, mode, source"
	ph := strings.Join(placeholders(hs.backend, 6), ", ")
	args := []any{info.RequestID, formatTime(info.StartedAt, hs.backend), info.FileID1, info.FileID2, string(info.Mode), string(info.Source)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING run_id`, quotedTableName, cols, ph)
		if err := hs.db.QueryRow(query, args...).Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, quotedTableName, cols, ph)
		result, err := hs.db.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		if runID, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to read run id: %w", err)
		}
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, finishedAt time.Time, totalComparisons int, avgSimilarity float64) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	ph := placeholders(hs.backend, 5)

	row := hs.db.QueryRow(fmt.Sprintf(`SELECT started_at FROM %s WHERE run_id = %s`, quotedTableName, ph[0]), runID)
	startedAt, err := hs.scanTime(row)
	if err != nil {
		return fmt.Errorf("failed to get started_at for run %d: %w", runID, err)
	}
	durationMs := finishedAt.Sub(startedAt).Milliseconds()

	query := fmt.Sprintf(`UPDATE %s SET finished_at = %s, duration_ms = %s, total_comparisons = %s, avg_similarity = %s WHERE run_id = %s`,
		quotedTableName, ph[0], ph[1], ph[2], ph[3], ph[4])
	if _, err := hs.db.Exec(query, formatTime(finishedAt, hs.backend), durationMs, totalComparisons, avgSimilarity, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordResult stores the summary of one comparison result.
func (hs *HistoryStoreImpl) RecordResult(runID int64, record schema.ResultRecord) error {
	if hs.disabled() {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, position, item_type, item_id, overall, tier,
		                equal_count, delete_count, insert_count, replace_count)
		VALUES (%s)
	`, quoteTableName(resultsTable, hs.backend), strings.Join(placeholders(hs.backend, 10), ", "))
	_, err := hs.db.Exec(query,
		runID, record.Position, record.ItemType, record.ItemID, record.Overall, record.Tier,
		record.EqualCount, record.DeleteCount, record.InsertCount, record.ReplaceCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert result %d for run %d: %w", record.Position, runID, err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.disabled() {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		lastRunTime, err := hs.scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT started_at FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns)))
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		oldestRunTime, err := hs.scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT started_at FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime
	}

	for _, table := range []string{runsTable, resultsTable} {
		var count int64
		if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalResults = int(status.TableSizes[resultsTable])

	return status, nil
}

// GetAllRuns retrieves all runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, request_id, started_at, finished_at, duration_ms, file_id_1, file_id_2,
		mode, source, total_comparisons, avg_similarity FROM %s ORDER BY run_id`, quoteTableName(runsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var startedStr string
			var finishedStr *string
			if err := rows.Scan(&record.RunID, &record.RequestID, &startedStr, &finishedStr, &record.DurationMs,
				&record.FileID1, &record.FileID2, &record.Mode, &record.Source, &record.TotalComparisons, &record.AvgSimilarity); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			if record.StartedAt, err = parseSQLiteTime(startedStr); err != nil {
				return nil, fmt.Errorf("failed to parse started_at: %w", err)
			}
			if finishedStr != nil {
				finished, err := parseSQLiteTime(*finishedStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse finished_at: %w", err)
				}
				record.FinishedAt = &finished
			}
		default: // MySQL and PostgreSQL store native datetimes
			if err := rows.Scan(&record.RunID, &record.RequestID, &record.StartedAt, &record.FinishedAt, &record.DurationMs,
				&record.FileID1, &record.FileID2, &record.Mode, &record.Source, &record.TotalComparisons, &record.AvgSimilarity); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllResults retrieves all result summaries from the store.
func (hs *HistoryStoreImpl) GetAllResults() ([]schema.ResultRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, position, item_type, item_id, overall, tier,
		equal_count, delete_count, insert_count, replace_count
		FROM %s ORDER BY run_id, position`, quoteTableName(resultsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ResultRecord
	for rows.Next() {
		var r schema.ResultRecord
		if err := rows.Scan(&r.RunID, &r.Position, &r.ItemType, &r.ItemID, &r.Overall, &r.Tier,
			&r.EqualCount, &r.DeleteCount, &r.InsertCount, &r.ReplaceCount); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return results, nil
}

// scanTime reads a single timestamp column stored in the backend's format.
func (hs *HistoryStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if hs.backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return parseSQLiteTime(s)
	}
	var t time.Time
	err := row.Scan(&t)
	return t, err
}
