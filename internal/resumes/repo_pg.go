package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-matcher-backend/internal/analyzer"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateWithin inserts the operational row inside a transaction, runs the
// beforeCommit hook, then commits. See Repo for the protocol contract.
func (r *PGRepo) CreateWithin(ctx context.Context, resume Resume, beforeCommit func(Resume) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `
INSERT INTO resumes (
    id, user_id, structure_score, ats_score,
    structure_feedback, ats_issues, skills_detected,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	feedbackJSON, err := marshalNullable(resume.StructureFeedback)
	if err != nil {
		return err
	}
	issuesJSON, err := marshalNullable(resume.ATSIssues)
	if err != nil {
		return err
	}
	skillsJSON, err := marshalNullable(resume.SkillsDetected)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query,
		resume.ID,
		nullableString(resume.UserID),
		nullableInt(resume.StructureScore),
		nullableInt(resume.ATSScore),
		feedbackJSON,
		issuesJSON,
		skillsJSON,
		resume.CreatedAt,
		resume.UpdatedAt,
	); err != nil {
		return err
	}

	if beforeCommit != nil {
		if err := beforeCommit(resume); err != nil {
			return fmt.Errorf("sensitive write: %w", err)
		}
	}

	return tx.Commit()
}

// GetByID returns a resume by ID.
func (r *PGRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	const query = `
SELECT id, user_id, structure_score, ats_score,
       structure_feedback, ats_issues, skills_detected,
       created_at, updated_at
FROM resumes
WHERE id = $1
LIMIT 1`
	return scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
}

// Exists reports whether an operational row with this ID is present.
func (r *PGRepo) Exists(ctx context.Context, resumeID string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM resumes WHERE id = $1`, resumeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser lists a user's resumes, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	const query = `
SELECT id, user_id, structure_score, ats_score,
       structure_feedback, ats_issues, skills_detected,
       created_at, updated_at
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResumeRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// UpdateATS overwrites the ATS score and issue list in place.
func (r *PGRepo) UpdateATS(ctx context.Context, resumeID string, score int, issues []string) error {
	issuesJSON, err := json.Marshal(issues)
	if err != nil {
		return err
	}
	const query = `
UPDATE resumes
SET ats_score = $1, ats_issues = $2, updated_at = $3
WHERE id = $4`
	res, err := r.DB.ExecContext(ctx, query, score, issuesJSON, time.Now().UTC(), resumeID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdateSkills persists a recomputed skill list in place.
func (r *PGRepo) UpdateSkills(ctx context.Context, resumeID string, skills []string) error {
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	const query = `
UPDATE resumes
SET skills_detected = $1, updated_at = $2
WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, skillsJSON, time.Now().UTC(), resumeID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes the operational row. Cascading to the sensitive store is an
// application-level concern handled by the service.
func (r *PGRepo) Delete(ctx context.Context, resumeID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, resumeID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row *sql.Row) (Resume, error) {
	resume, err := scanResumeRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

func scanResumeRow(row rowScanner) (Resume, error) {
	var resume Resume
	var userID sql.NullString
	var structureScore, atsScore sql.NullInt64
	var feedbackJSON, issuesJSON, skillsJSON sql.NullString

	if err := row.Scan(
		&resume.ID,
		&userID,
		&structureScore,
		&atsScore,
		&feedbackJSON,
		&issuesJSON,
		&skillsJSON,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}

	if userID.Valid {
		resume.UserID = userID.String
	}
	if structureScore.Valid {
		v := int(structureScore.Int64)
		resume.StructureScore = &v
	}
	if atsScore.Valid {
		v := int(atsScore.Int64)
		resume.ATSScore = &v
	}
	if feedbackJSON.Valid {
		var fb analyzer.Feedback
		if err := json.Unmarshal([]byte(feedbackJSON.String), &fb); err != nil {
			return Resume{}, fmt.Errorf("decode structure_feedback: %w", err)
		}
		resume.StructureFeedback = &fb
	}
	if issuesJSON.Valid {
		if err := json.Unmarshal([]byte(issuesJSON.String), &resume.ATSIssues); err != nil {
			return Resume{}, fmt.Errorf("decode ats_issues: %w", err)
		}
	}
	if skillsJSON.Valid {
		if err := json.Unmarshal([]byte(skillsJSON.String), &resume.SkillsDetected); err != nil {
			return Resume{}, fmt.Errorf("decode skills_detected: %w", err)
		}
	}
	return resume, nil
}

func marshalNullable(v any) (any, error) {
	switch val := v.(type) {
	case *analyzer.Feedback:
		if val == nil {
			return nil, nil
		}
	case []string:
		if val == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
