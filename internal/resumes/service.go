package resumes

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"

	"resume-matcher-backend/internal/analyzer"
	"resume-matcher-backend/internal/extract"
	"resume-matcher-backend/internal/jobs"
	"resume-matcher-backend/internal/shared/storage/upload"
	"resume-matcher-backend/internal/shared/telemetry"
)

// Identity is an authenticated caller. A nil *Identity is a guest.
type Identity struct {
	UserID string
}

// Upload describes a file already saved to retained storage by the caller.
type Upload struct {
	OriginalFilename string
	Path             string
	SizeBytes        int64
}

// Service orchestrates analysis and the dual-store persistence policy:
// authenticated callers get an operational record plus a sensitive twin,
// guests get a transient result and their file removed.
type Service struct {
	Repo      Repo
	Sensitive SensitiveRepo
	Uploads   *upload.Store
	Matcher   *jobs.Matcher

	// ExtractText overrides the text-extraction adapter in tests.
	ExtractText func(path string) string
}

// StructureResult is the outcome of a structure analysis.
type StructureResult struct {
	Score          int
	Feedback       analyzer.Feedback
	SkillsDetected []string
	Outcome        Outcome
}

// ATSResult is the outcome of an ATS analysis.
type ATSResult struct {
	Report         analyzer.ATSReport
	SkillsDetected []string
	Outcome        Outcome
}

// MatchResult is the outcome of a job match.
type MatchResult struct {
	ResumeID       string
	SkillsDetected []string
	Matches        []jobs.Match
}

func (s *Service) extractText(path string) string {
	if s.ExtractText != nil {
		return s.ExtractText(path)
	}
	return extract.Text(path)
}

// AnalyzeStructure runs the structure rubric over the uploaded file.
// Extraction failure is not an error: the scorers degrade to low scores on
// empty text.
func (s *Service) AnalyzeStructure(ctx context.Context, up Upload, identity *Identity) (StructureResult, error) {
	if up.Path == "" {
		return StructureResult{}, ErrInvalidInput
	}

	text := s.extractText(up.Path)
	score, feedback := analyzer.ScoreStructure(text)
	skills := analyzer.ExtractSkills(text)

	result := StructureResult{
		Score:          score,
		Feedback:       feedback,
		SkillsDetected: skills,
	}

	outcome, err := s.persist(ctx, up, identity, text, func(resume *Resume) {
		resume.StructureScore = &score
		resume.StructureFeedback = &feedback
		resume.SkillsDetected = skills
	})
	if err != nil {
		return StructureResult{}, err
	}
	result.Outcome = outcome
	return result, nil
}

// AnalyzeATS runs the ATS compatibility simulation over the uploaded file.
func (s *Service) AnalyzeATS(ctx context.Context, up Upload, identity *Identity) (ATSResult, error) {
	if up.Path == "" {
		return ATSResult{}, ErrInvalidInput
	}

	text := s.extractText(up.Path)
	report := analyzer.ScoreATS(text, up.SizeBytes)
	skills := analyzer.ExtractSkills(text)

	result := ATSResult{
		Report:         report,
		SkillsDetected: skills,
	}

	atsScore := report.Score
	outcome, err := s.persist(ctx, up, identity, text, func(resume *Resume) {
		resume.ATSScore = &atsScore
		resume.ATSIssues = report.Issues
		resume.SkillsDetected = skills
	})
	if err != nil {
		return ATSResult{}, err
	}
	result.Outcome = outcome
	return result, nil
}

// persist applies the guest/authenticated policy. Guests never touch either
// store and lose their file immediately. Authenticated callers get the
// two-store write: operational row inside a transaction, sensitive row on
// its own commit, operational commit last.
func (s *Service) persist(ctx context.Context, up Upload, identity *Identity, text string, fill func(*Resume)) (Outcome, error) {
	if identity == nil {
		if err := s.Uploads.Remove(up.Path); err != nil {
			telemetry.Warn("resume.guest_cleanup_failed", map[string]any{"path": up.Path, "err": err.Error()})
		}
		return Ephemeral{}, nil
	}

	now := time.Now().UTC()
	resume := Resume{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	fill(&resume)

	err := s.Repo.CreateWithin(ctx, resume, func(created Resume) error {
		return s.Sensitive.Create(ctx, SensitiveRecord{
			ID:               uuid.NewString(),
			ResumeID:         created.ID,
			OriginalFilename: up.OriginalFilename,
			FilePath:         up.Path,
			ExtractedText:    text,
			CreatedAt:        now,
		})
	})
	if err != nil {
		_ = s.Uploads.Remove(up.Path)
		return nil, err
	}

	return Persisted{ResumeID: resume.ID}, nil
}

// RescanATS re-runs the ATS simulation on a persisted resume, reusing the
// retained file. The file being gone is a hard failure.
func (s *Service) RescanATS(ctx context.Context, resumeID string, identity *Identity) (ATSResult, error) {
	resume, sens, err := s.owned(ctx, resumeID, identity)
	if err != nil {
		return ATSResult{}, err
	}

	size, err := s.Uploads.Stat(sens.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return ATSResult{}, ErrFileMissing
		}
		return ATSResult{}, err
	}

	text := s.extractText(sens.FilePath)
	report := analyzer.ScoreATS(text, size)

	if err := s.Repo.UpdateATS(ctx, resumeID, report.Score, report.Issues); err != nil {
		return ATSResult{}, err
	}

	skills := resume.SkillsDetected
	if len(skills) == 0 {
		skills = s.backfillSkills(ctx, resumeID, text)
	}

	return ATSResult{
		Report:         report,
		SkillsDetected: skills,
		Outcome:        Persisted{ResumeID: resumeID},
	}, nil
}

// MatchJobs matches a persisted resume's skills against the catalog. An
// empty stored skill list on an otherwise complete record is recomputed from
// the retained text and persisted — the lazy backfill is intentional.
func (s *Service) MatchJobs(ctx context.Context, resumeID string, identity *Identity) (MatchResult, error) {
	resume, sens, err := s.owned(ctx, resumeID, identity)
	if err != nil {
		return MatchResult{}, err
	}

	skills := resume.SkillsDetected
	if len(skills) == 0 && sens.ExtractedText != "" {
		skills = s.backfillSkills(ctx, resumeID, sens.ExtractedText)
	}

	return MatchResult{
		ResumeID:       resumeID,
		SkillsDetected: skills,
		Matches:        s.Matcher.Match(skills),
	}, nil
}

// Profile lists the caller's resumes, newest first.
func (s *Service) Profile(ctx context.Context, identity *Identity) ([]Resume, error) {
	if identity == nil {
		return nil, ErrForbidden
	}
	return s.Repo.ListByUser(ctx, identity.UserID)
}

// Delete removes the operational record, then cascades to the sensitive
// record and the retained file. The cascade is application-level: a failure
// after the operational delete leaves the sensitive side for reconciliation
// and is logged, not surfaced.
func (s *Service) Delete(ctx context.Context, resumeID string, identity *Identity) error {
	_, sens, err := s.owned(ctx, resumeID, identity)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, resumeID); err != nil {
		return err
	}

	if err := s.Sensitive.DeleteByResumeID(ctx, resumeID); err != nil {
		telemetry.Error("resume.cascade_delete_failed", map[string]any{"resume_id": resumeID, "err": err.Error()})
	}
	if err := s.Uploads.Remove(sens.FilePath); err != nil {
		telemetry.Warn("resume.file_delete_failed", map[string]any{"resume_id": resumeID, "err": err.Error()})
	}
	return nil
}

// owned loads a resume and its sensitive twin, enforcing ownership.
func (s *Service) owned(ctx context.Context, resumeID string, identity *Identity) (Resume, SensitiveRecord, error) {
	if identity == nil {
		return Resume{}, SensitiveRecord{}, ErrForbidden
	}
	resume, err := s.Repo.GetByID(ctx, resumeID)
	if err != nil {
		return Resume{}, SensitiveRecord{}, err
	}
	if resume.UserID != identity.UserID {
		return Resume{}, SensitiveRecord{}, ErrForbidden
	}
	sens, err := s.Sensitive.GetByResumeID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Operational row without a sensitive twin: the inverse
			// inconsistency. Surface as a missing file since every
			// operation past this point needs the retained content.
			return Resume{}, SensitiveRecord{}, ErrFileMissing
		}
		return Resume{}, SensitiveRecord{}, err
	}
	return resume, sens, nil
}

func (s *Service) backfillSkills(ctx context.Context, resumeID, text string) []string {
	skills := analyzer.ExtractSkills(text)
	if len(skills) == 0 {
		return skills
	}
	if err := s.Repo.UpdateSkills(ctx, resumeID, skills); err != nil {
		telemetry.Warn("resume.skills_backfill_failed", map[string]any{"resume_id": resumeID, "err": err.Error()})
		return skills
	}
	telemetry.Info("resume.skills_backfilled", map[string]any{"resume_id": resumeID, "count": len(skills)})
	return skills
}
