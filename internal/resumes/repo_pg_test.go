package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateWithinCommitsAfterHook(t *testing.T) {
	repo, mock := newMockRepo(t)

	score := 65
	now := time.Now().UTC()
	resume := Resume{
		ID:             "resume-1",
		UserID:         "user-1",
		StructureScore: &score,
		SkillsDetected: []string{"Python", "SQL"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			resume.ID,
			resume.UserID,
			score,
			nil,              // ats_score
			nil,              // structure_feedback
			nil,              // ats_issues
			sqlmock.AnyArg(), // skills_detected JSON
			now,
			now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	hookSeen := ""
	err := repo.CreateWithin(context.Background(), resume, func(created Resume) error {
		hookSeen = created.ID
		return nil
	})
	if err != nil {
		t.Fatalf("CreateWithin: %v", err)
	}
	if hookSeen != resume.ID {
		t.Errorf("hook saw resume %q, want %q", hookSeen, resume.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateWithinRollsBackOnHookFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	resume := Resume{ID: "resume-1", UserID: "user-1", CreatedAt: now, UpdatedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(resume.ID, resume.UserID, nil, nil, nil, nil, nil, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	hookErr := errors.New("sensitive store down")
	err := repo.CreateWithin(context.Background(), resume, func(Resume) error { return hookErr })
	if !errors.Is(err, hookErr) {
		t.Fatalf("CreateWithin err = %v, want wrapped hook error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesJSONColumns(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "structure_score", "ats_score",
		"structure_feedback", "ats_issues", "skills_detected",
		"created_at", "updated_at",
	}).AddRow(
		"resume-1", "user-1", 65, 30,
		`{"present":["Email Address"],"missing":["References"]}`,
		`["Missing email address"]`,
		`["Python","SQL"]`,
		now, now,
	)
	mock.ExpectQuery("SELECT id, user_id").WithArgs("resume-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "resume-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.StructureScore == nil || *got.StructureScore != 65 {
		t.Errorf("structure score = %v, want 65", got.StructureScore)
	}
	if got.ATSScore == nil || *got.ATSScore != 30 {
		t.Errorf("ats score = %v, want 30", got.ATSScore)
	}
	if got.StructureFeedback == nil || len(got.StructureFeedback.Present) != 1 {
		t.Errorf("structure feedback = %+v", got.StructureFeedback)
	}
	if len(got.ATSIssues) != 1 || len(got.SkillsDetected) != 2 {
		t.Errorf("issues = %v, skills = %v", got.ATSIssues, got.SkillsDetected)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, user_id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "structure_score", "ats_score",
			"structure_feedback", "ats_issues", "skills_detected",
			"created_at", "updated_at",
		}))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByID err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT 1 FROM resumes").
		WithArgs("resume-1").
		WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM resumes").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"one"}))

	exists, err := repo.Exists(context.Background(), "resume-1")
	if err != nil || !exists {
		t.Fatalf("Exists(resume-1) = %v, %v; want true", exists, err)
	}
	exists, err = repo.Exists(context.Background(), "missing")
	if err != nil || exists {
		t.Fatalf("Exists(missing) = %v, %v; want false", exists, err)
	}
}

func TestPGRepoUpdateATSMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE resumes").
		WithArgs(30, sqlmock.AnyArg(), sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateATS(context.Background(), "missing", 30, []string{"Missing email address"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateATS err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("resume-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "resume-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete missing err = %v, want ErrNotFound", err)
	}
}
