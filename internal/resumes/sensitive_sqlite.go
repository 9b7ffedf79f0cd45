package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"resume-matcher-backend/internal/shared/storage/piidb"
)

// SQLiteSensitiveRepo implements SensitiveRepo on the sensitive store.
type SQLiteSensitiveRepo struct {
	DB *piidb.DB
}

// Create inserts a sensitive record. This commits independently of any
// operational-store transaction.
func (r *SQLiteSensitiveRepo) Create(ctx context.Context, rec SensitiveRecord) error {
	const query = `
INSERT INTO resume_pii (id, resume_id, original_filename, file_path, extracted_text_dump, created_at)
VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.DB.Conn().ExecContext(ctx, query,
		rec.ID,
		rec.ResumeID,
		rec.OriginalFilename,
		rec.FilePath,
		rec.ExtractedText,
		rec.CreatedAt.UTC().UnixMilli(),
	)
	return err
}

// GetByResumeID returns the sensitive twin of an operational record.
func (r *SQLiteSensitiveRepo) GetByResumeID(ctx context.Context, resumeID string) (SensitiveRecord, error) {
	const query = `
SELECT id, resume_id, original_filename, file_path, extracted_text_dump, created_at
FROM resume_pii
WHERE resume_id = ?
LIMIT 1`
	var rec SensitiveRecord
	var createdAt int64
	err := r.DB.Conn().QueryRowContext(ctx, query, resumeID).Scan(
		&rec.ID,
		&rec.ResumeID,
		&rec.OriginalFilename,
		&rec.FilePath,
		&rec.ExtractedText,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SensitiveRecord{}, ErrNotFound
		}
		return SensitiveRecord{}, err
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	return rec, nil
}

// DeleteByResumeID removes the sensitive twin. Deleting a record that is
// already gone is not an error.
func (r *SQLiteSensitiveRepo) DeleteByResumeID(ctx context.Context, resumeID string) error {
	_, err := r.DB.Conn().ExecContext(ctx, `DELETE FROM resume_pii WHERE resume_id = ?`, resumeID)
	return err
}

// ListRefs returns every record's link pair for reconciliation.
func (r *SQLiteSensitiveRepo) ListRefs(ctx context.Context) ([]SensitiveRef, error) {
	rows, err := r.DB.Conn().QueryContext(ctx, `SELECT id, resume_id FROM resume_pii`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SensitiveRef
	for rows.Next() {
		var ref SensitiveRef
		if err := rows.Scan(&ref.ID, &ref.ResumeID); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

var _ SensitiveRepo = (*SQLiteSensitiveRepo)(nil)
