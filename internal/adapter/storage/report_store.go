// internal/adapter/storage/report_store.go

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"chezvous/internal/domain/report"
	"chezvous/internal/domain/social"
	"chezvous/internal/domain/transport"
)

// ReportStore implements report.Store on Postgres
type ReportStore struct {
	db *pgxpool.Pool
}

// NewReportStore creates a new report store
func NewReportStore(db *pgxpool.Pool) *ReportStore {
	return &ReportStore{
		db: db,
	}
}

// Save persists a report. Re-analyzing the same address upserts the row.
func (s *ReportStore) Save(ctx context.Context, r *report.NeighborhoodReport) error {
	query := `
		INSERT INTO reports (
			id, query, address, transport, insights, analysis, notes, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		ON CONFLICT (id) DO UPDATE
		SET
			query = $2,
			address = $3,
			transport = $4,
			insights = $5,
			analysis = $6,
			notes = $7,
			created_at = $8
	`

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	addressJSON, err := json.Marshal(r.Address)
	if err != nil {
		return fmt.Errorf("error marshaling address: %w", err)
	}

	transportJSON, err := json.Marshal(r.Transport)
	if err != nil {
		return fmt.Errorf("error marshaling transport report: %w", err)
	}

	insightsJSON, err := json.Marshal(r.Insights)
	if err != nil {
		return fmt.Errorf("error marshaling insights: %w", err)
	}

	analysisJSON, err := json.Marshal(r.Analysis)
	if err != nil {
		return fmt.Errorf("error marshaling analysis: %w", err)
	}

	_, err = s.db.Exec(
		ctx,
		query,
		r.ID,
		r.Query,
		addressJSON,
		transportJSON,
		insightsJSON,
		analysisJSON,
		r.Notes,
		r.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetByID retrieves a report by ID
func (s *ReportStore) GetByID(ctx context.Context, id string) (*report.NeighborhoodReport, error) {
	query := `
		SELECT id, query, address, transport, insights, analysis, notes, created_at
		FROM reports
		WHERE id = $1
	`

	r, err := scanReport(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, report.ErrNotFound
		}
		return nil, fmt.Errorf("error querying report: %w", err)
	}

	return r, nil
}

// ListRecent returns the most recently created reports, newest first.
func (s *ReportStore) ListRecent(ctx context.Context, limit int) ([]report.NeighborhoodReport, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, query, address, transport, insights, analysis, notes, created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying reports: %w", err)
	}
	defer rows.Close()

	var reports []report.NeighborhoodReport
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning report: %w", err)
		}
		reports = append(reports, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

// scanReport reads one report row, decoding the JSON columns.
func scanReport(row pgx.Row) (*report.NeighborhoodReport, error) {
	var (
		r             report.NeighborhoodReport
		addressJSON   []byte
		transportJSON []byte
		insightsJSON  []byte
		analysisJSON  []byte
	)

	if err := row.Scan(
		&r.ID,
		&r.Query,
		&addressJSON,
		&transportJSON,
		&insightsJSON,
		&analysisJSON,
		&r.Notes,
		&r.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(addressJSON, &r.Address); err != nil {
		return nil, fmt.Errorf("error unmarshaling address: %w", err)
	}

	if len(transportJSON) > 0 && string(transportJSON) != "null" {
		r.Transport = &transport.ConnectivityReport{}
		if err := json.Unmarshal(transportJSON, r.Transport); err != nil {
			return nil, fmt.Errorf("error unmarshaling transport report: %w", err)
		}
	}

	if len(insightsJSON) > 0 && string(insightsJSON) != "null" {
		r.Insights = &social.Insights{}
		if err := json.Unmarshal(insightsJSON, r.Insights); err != nil {
			return nil, fmt.Errorf("error unmarshaling insights: %w", err)
		}
	}

	if len(analysisJSON) > 0 && string(analysisJSON) != "null" {
		r.Analysis = &report.Analysis{}
		if err := json.Unmarshal(analysisJSON, r.Analysis); err != nil {
			return nil, fmt.Errorf("error unmarshaling analysis: %w", err)
		}
	}

	return &r, nil
}
