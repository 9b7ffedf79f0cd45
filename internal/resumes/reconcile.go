package resumes

import (
	"context"

	"resume-matcher-backend/internal/shared/telemetry"
)

// Orphan is a sensitive record whose operational twin no longer exists.
type Orphan struct {
	SensitiveID string `json:"sensitive_id"`
	ResumeID    string `json:"resume_id"`
}

// ReconcileOrphans walks the sensitive store and reports records whose
// resume_id has no operational row. The soft cross-store link cannot be
// enforced by either database, so orphans from the known inconsistency
// windows are detected here and reported, not silently deleted.
func (s *Service) ReconcileOrphans(ctx context.Context) ([]Orphan, error) {
	refs, err := s.Sensitive.ListRefs(ctx)
	if err != nil {
		return nil, err
	}

	orphans := []Orphan{}
	for _, ref := range refs {
		exists, err := s.Repo.Exists(ctx, ref.ResumeID)
		if err != nil {
			return nil, err
		}
		if !exists {
			orphans = append(orphans, Orphan{SensitiveID: ref.ID, ResumeID: ref.ResumeID})
		}
	}

	telemetry.Info("reconcile.complete", map[string]any{
		"scanned": len(refs),
		"orphans": len(orphans),
	})
	return orphans, nil
}
