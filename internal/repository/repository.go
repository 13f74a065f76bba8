// Package repository stores leads, uploads and the outreach log in SQL.
//
// Queries are written with ? placeholders and rebound for the connected
// dialect, so the same statements run on Postgres and SQLite.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/DukeRupert/leadshift/internal/domain"
)

// Supported dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// Repository is the SQL lead store.
type Repository struct {
	db      *sql.DB
	dialect string
}

// New returns a repository over db. dialect selects the placeholder style.
func New(db *sql.DB, dialect string) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// Ping verifies the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// rebind rewrites ? placeholders to $n for Postgres.
func (r *Repository) rebind(query string) string {
	if r.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// =============================================================================
// Leads
// =============================================================================

const leadColumns = `id, company_name, email, phone, industry, location, capital, score, website, status, created_at`

// CreateUpload stores the upload record and its leads in one transaction.
// Leads keep their file order through row_index.
func (r *Repository) CreateUpload(ctx context.Context, upload domain.Upload, leads []domain.Lead) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upload tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, r.rebind(`
		INSERT INTO uploads (id, filename, object_key, row_count, created_at)
		VALUES (?, ?, ?, ?, ?)`),
		upload.ID, upload.Filename, upload.ObjectKey, upload.RowCount, upload.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert upload: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, r.rebind(`
		INSERT INTO leads (`+leadColumns+`, upload_id, row_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("prepare lead insert: %w", err)
	}
	defer stmt.Close()

	for i, l := range leads {
		_, err = stmt.ExecContext(ctx,
			l.ID, l.CompanyName, l.Email, l.Phone, l.Industry, l.Location,
			l.Capital, l.Score, l.Website, string(l.Status), l.CreatedAt.UTC(),
			upload.ID, i,
		)
		if err != nil {
			return fmt.Errorf("insert lead %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit upload: %w", err)
	}
	return nil
}

// ListLeads returns every lead in insertion order.
func (r *Repository) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at, row_index, id`)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

// GetLead returns the lead with id, or sql.ErrNoRows.
func (r *Repository) GetLead(ctx context.Context, id string) (domain.Lead, error) {
	row := r.db.QueryRowContext(ctx, r.rebind(`SELECT `+leadColumns+` FROM leads WHERE id = ?`), id)
	l, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Lead{}, sql.ErrNoRows
	}
	return l, err
}

// GetLeads returns the stored leads among ids, in insertion order.
func (r *Repository) GetLeads(ctx context.Context, ids []string) ([]domain.Lead, error) {
	if len(ids) == 0 {
		return []domain.Lead{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, r.rebind(
		`SELECT `+leadColumns+` FROM leads WHERE id IN (`+placeholders+`) ORDER BY created_at, row_index, id`), args...)
	if err != nil {
		return nil, fmt.Errorf("get leads: %w", err)
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0, len(ids))
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// CountLeads returns the number of stored leads.
func (r *Repository) CountLeads(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(s scanner) (domain.Lead, error) {
	var l domain.Lead
	err := s.Scan(
		&l.ID, &l.CompanyName, &l.Email, &l.Phone, &l.Industry, &l.Location,
		&l.Capital, &l.Score, &l.Website, &l.Status, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Lead{}, err
		}
		return domain.Lead{}, fmt.Errorf("scan lead: %w", err)
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return l, nil
}

// =============================================================================
// Uploads
// =============================================================================

// ListUploads returns the most recent uploads, newest first.
func (r *Repository) ListUploads(ctx context.Context, limit int) ([]domain.Upload, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(`
		SELECT id, filename, object_key, row_count, created_at
		FROM uploads ORDER BY created_at DESC, id LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var uploads []domain.Upload
	for rows.Next() {
		var u domain.Upload
		if err := rows.Scan(&u.ID, &u.Filename, &u.ObjectKey, &u.RowCount, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		u.CreatedAt = u.CreatedAt.UTC()
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

// GetUpload returns one upload record, or sql.ErrNoRows.
func (r *Repository) GetUpload(ctx context.Context, id string) (domain.Upload, error) {
	var u domain.Upload
	err := r.db.QueryRowContext(ctx, r.rebind(`
		SELECT id, filename, object_key, row_count, created_at
		FROM uploads WHERE id = ?`), id).Scan(&u.ID, &u.Filename, &u.ObjectKey, &u.RowCount, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Upload{}, err
		}
		return domain.Upload{}, fmt.Errorf("get upload: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

// =============================================================================
// Outreach log
// =============================================================================

// RecordOutreach appends entries to the outreach log.
func (r *Repository) RecordOutreach(ctx context.Context, entries ...domain.OutreachEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin outreach tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := r.rebind(`
		INSERT INTO outreach_log (id, lead_id, company_name, channel, status, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, query,
			e.ID, e.LeadID, e.CompanyName, string(e.Channel), string(e.Status), e.Detail, e.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert outreach entry: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit outreach: %w", err)
	}
	return nil
}

// ListOutreach returns the most recent outreach entries, newest first.
func (r *Repository) ListOutreach(ctx context.Context, limit int) ([]domain.OutreachEntry, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(`
		SELECT id, lead_id, company_name, channel, status, detail, created_at
		FROM outreach_log ORDER BY created_at DESC, id LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("list outreach: %w", err)
	}
	defer rows.Close()

	var entries []domain.OutreachEntry
	for rows.Next() {
		var e domain.OutreachEntry
		err := rows.Scan(&e.ID, &e.LeadID, &e.CompanyName, &e.Channel, &e.Status, &e.Detail, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan outreach entry: %w", err)
		}
		e.CreatedAt = e.CreatedAt.UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
