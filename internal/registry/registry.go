// Package registry persists analysis reports in SQLite so the extension can
// show history for a page and compare visits.
package registry

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avel9n/privacylens/internal/logging"
	"github.com/avel9n/privacylens/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

var ErrAnalysisNotFound = errors.New("analysis not found")

// DefaultListLimit caps history listings when the caller does not specify one.
const DefaultListLimit = 50

// Registry stores analysis reports. The report itself is kept as JSON next to
// the few columns we filter and sort on.
type Registry struct {
	db     *sql.DB
	logger logging.Logger
}

// NewRegistry runs migrations from schema.sql and returns a Registry.
// db is typically the SQLite database at <storage root>/registry.db.
func NewRegistry(db *sql.DB, logger logging.Logger) (*Registry, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Registry{db: db, logger: logger}, nil
}

// SaveAnalysis stores report, assigning an ID and creation time when absent,
// and returns the stored report.
func (r *Registry) SaveAnalysis(ctx context.Context, report *model.AnalysisReport) (*model.AnalysisReport, error) {
	if report == nil {
		return nil, fmt.Errorf("report is nil")
	}
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO analyses (id, page_url, page_domain, score, level, report_json, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.PageURL, report.PageDomain, report.Score, report.Level,
		string(data), report.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert analysis: %w", err)
	}

	r.logger.Debug("stored analysis",
		logging.Field{Key: "id", Value: report.ID},
		logging.Field{Key: "page_domain", Value: report.PageDomain})
	return report, nil
}

// GetAnalysis returns a stored report by id, or ErrAnalysisNotFound.
func (r *Registry) GetAnalysis(ctx context.Context, id string) (*model.AnalysisReport, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT report_json FROM analyses WHERE id = ? LIMIT 1`, id)

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("query analysis %s: %w", id, err)
	}
	return decodeReport(data)
}

// ListAnalyses returns stored reports, newest first, optionally filtered by
// page domain. limit <= 0 applies DefaultListLimit.
func (r *Registry) ListAnalyses(ctx context.Context, pageDomain string, limit int) ([]*model.AnalysisReport, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var (
		rows *sql.Rows
		err  error
	)
	if pageDomain != "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT report_json FROM analyses
             WHERE page_domain = ?
             ORDER BY created_at DESC, id
             LIMIT ?`, pageDomain, limit)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT report_json FROM analyses
             ORDER BY created_at DESC, id
             LIMIT ?`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var reports []*model.AnalysisReport
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		report, err := decodeReport(data)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func decodeReport(data string) (*model.AnalysisReport, error) {
	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("decode stored report: %w", err)
	}
	return &report, nil
}
