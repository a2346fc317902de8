package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spritepad/internal/domain"
)

// ExportStore implements domain.ExportStore using SQLite.
type ExportStore struct {
	db *DB
}

func NewExportStore(db *DB) *ExportStore {
	return &ExportStore{db: db}
}

// UpsertExport inserts r, or refreshes the row already indexing the same
// file name. On conflict the stored ID and CreatedAt win and are copied
// back into r.
func (s *ExportStore) UpsertExport(r *domain.ExportRecord) error {
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = now
	_, err := s.db.conn.Exec(
		`INSERT INTO exports (id, file_name, frame_count, cell_count, size_bytes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(file_name) DO UPDATE SET
			frame_count = excluded.frame_count,
			cell_count = excluded.cell_count,
			size_bytes = excluded.size_bytes,
			updated_at = excluded.updated_at`,
		r.ID, r.FileName, r.FrameCount, r.CellCount, r.SizeBytes, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert export: %w", err)
	}
	return s.db.conn.QueryRow(
		`SELECT id, created_at FROM exports WHERE file_name = ?`, r.FileName,
	).Scan(&r.ID, &r.CreatedAt)
}

func (s *ExportStore) GetExport(id string) (*domain.ExportRecord, error) {
	r := &domain.ExportRecord{}
	err := s.db.conn.QueryRow(
		`SELECT id, file_name, frame_count, cell_count, size_bytes, created_at, updated_at FROM exports WHERE id = ?`, id,
	).Scan(&r.ID, &r.FileName, &r.FrameCount, &r.CellCount, &r.SizeBytes, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get export %s: %w", id, domain.ErrExportNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get export: %w", err)
	}
	return r, nil
}

func (s *ExportStore) ListExports() ([]domain.ExportRecord, error) {
	return s.list(`SELECT id, file_name, frame_count, cell_count, size_bytes, created_at, updated_at
		FROM exports ORDER BY created_at DESC, file_name DESC`)
}

// ListExportsBefore returns exports created strictly before t, oldest first.
func (s *ExportStore) ListExportsBefore(t time.Time) ([]domain.ExportRecord, error) {
	return s.list(`SELECT id, file_name, frame_count, cell_count, size_bytes, created_at, updated_at
		FROM exports WHERE created_at < ? ORDER BY created_at ASC`, t.UTC())
}

func (s *ExportStore) list(query string, args ...any) ([]domain.ExportRecord, error) {
	rows, err := s.db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ExportRecord
	for rows.Next() {
		var r domain.ExportRecord
		if err := rows.Scan(&r.ID, &r.FileName, &r.FrameCount, &r.CellCount, &r.SizeBytes, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *ExportStore) DeleteExport(id string) error {
	_, err := s.db.conn.Exec(`DELETE FROM exports WHERE id = ?`, id)
	return err
}
