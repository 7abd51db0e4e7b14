package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fshare/internal/models"
)

const fileColumns = "id, blob_name, original_name, media_type, fingerprint, created_at"

const dbTimeFormat = time.RFC3339Nano

// InsertFile persists one catalog record and returns its server-assigned
// identifier. The insert runs in its own transaction, so readers never see a
// partial record.
func (s *Store) InsertFile(ctx context.Context, file *models.StoredFile) (_ int64, err error) {
	if file == nil {
		return 0, fmt.Errorf("file record is required")
	}
	if strings.TrimSpace(file.BlobName) == "" {
		return 0, fmt.Errorf("blob_name is required")
	}
	if strings.TrimSpace(file.Fingerprint) == "" {
		return 0, fmt.Errorf("fingerprint is required")
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO files (blob_name, original_name, media_type, fingerprint, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, file.BlobName, file.OriginalName, file.MediaType, file.Fingerprint, file.CreatedAt.Format(dbTimeFormat))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	file.ID = id
	return id, nil
}

// GetFile returns one catalog record by identifier, or nil when absent.
func (s *Store) GetFile(ctx context.Context, id int64) (*models.StoredFile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM files WHERE id = ?`, id)
	return scanFile(row)
}

// FindFirstByFingerprint returns the catalog record with the lowest
// identifier among those sharing the fingerprint, or nil when none match.
// The lowest-id tie-break keeps dedup lookups deterministic.
func (s *Store) FindFirstByFingerprint(ctx context.Context, fp string) (*models.StoredFile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM files WHERE fingerprint = ? ORDER BY id ASC LIMIT 1`, fp)
	return scanFile(row)
}

// CountFiles returns the number of catalog records.
func (s *Store) CountFiles(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*models.StoredFile, error) {
	var file models.StoredFile
	var createdAt string
	err := row.Scan(&file.ID, &file.BlobName, &file.OriginalName, &file.MediaType, &file.Fingerprint, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if parsed, parseErr := time.Parse(dbTimeFormat, createdAt); parseErr == nil {
		file.CreatedAt = parsed
	}
	return &file, nil
}
