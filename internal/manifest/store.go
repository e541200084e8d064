package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vidsponential/website/internal/db"
)

// ErrNotFound is returned by Get for unknown build ids.
var ErrNotFound = errors.New("build not found")

// Store persists build records.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a build and its pages. If b.ID is empty a UUID is
// generated and written back; PageCount defaults to len(b.Pages).
func (s *Store) Record(ctx context.Context, b *Build) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.PageCount == 0 {
		b.PageCount = len(b.Pages)
	}
	if b.Status == "" {
		b.Status = StatusSucceeded
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning build transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO builds (
			id, started_at, finished_at, output_dir, data_api_url,
			page_count, asset_count, status, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		formatTime(b.StartedAt),
		formatTime(b.FinishedAt),
		b.OutputDir,
		b.DataAPIURL,
		b.PageCount,
		b.AssetCount,
		string(b.Status),
		b.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting build: %w", err)
	}

	for _, p := range b.Pages {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO build_pages (build_id, path, status_code, bytes) VALUES (?, ?, ?, ?)",
			b.ID, p.Path, p.StatusCode, p.Bytes,
		); err != nil {
			return fmt.Errorf("inserting build page %s: %w", p.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing build: %w", err)
	}
	return nil
}

// Get retrieves a single build with its pages.
func (s *Store) Get(ctx context.Context, id string) (*Build, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, output_dir, data_api_url,
			   page_count, asset_count, status, error
		FROM builds WHERE id = ?`, id)

	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("build %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT path, status_code, bytes FROM build_pages WHERE build_id = ? ORDER BY path", id)
	if err != nil {
		return nil, fmt.Errorf("querying build pages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.Path, &p.StatusCode, &p.Bytes); err != nil {
			return nil, fmt.Errorf("scanning build page: %w", err)
		}
		b.Pages = append(b.Pages, p)
	}
	return b, rows.Err()
}

// ListFilter controls which builds List returns.
type ListFilter struct {
	Status Status
	Since  *time.Time
	Limit  int
	Offset int
}

// List returns builds newest first, without their pages.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Build, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Since != nil {
		clauses = append(clauses, "started_at >= ?")
		args = append(args, formatTime(*filter.Since))
	}

	query := "SELECT id, started_at, finished_at, output_dir, data_api_url, page_count, asset_count, status, error FROM builds"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY started_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, *b)
	}
	return builds, rows.Err()
}

// DeleteBefore removes builds started before the given time, with their
// pages. Returns the number of deleted builds.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning prune transaction: %w", err)
	}
	defer tx.Rollback()

	cutoff := formatTime(before)
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM build_pages WHERE build_id IN (SELECT id FROM builds WHERE started_at < ?)", cutoff,
	); err != nil {
		return 0, fmt.Errorf("deleting old build pages: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM builds WHERE started_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting old builds: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

// Times are stored as fixed-width UTC RFC 3339 text so they sort
// lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(sc scanner) (*Build, error) {
	var (
		b                 Build
		started, finished string
		status            string
	)
	err := sc.Scan(
		&b.ID, &started, &finished, &b.OutputDir, &b.DataAPIURL,
		&b.PageCount, &b.AssetCount, &status, &b.Error,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning build: %w", err)
	}

	b.Status = Status(status)
	if b.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return nil, fmt.Errorf("parsing started_at %q: %w", started, err)
	}
	if b.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
		return nil, fmt.Errorf("parsing finished_at %q: %w", finished, err)
	}
	return &b, nil
}
