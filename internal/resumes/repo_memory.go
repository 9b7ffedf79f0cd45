package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo for dev and tests. It
// honors the CreateWithin protocol: the row only becomes visible after the
// beforeCommit hook succeeds.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Resume)}
}

// CreateWithin stores the resume if beforeCommit succeeds.
func (r *MemoryRepo) CreateWithin(ctx context.Context, resume Resume, beforeCommit func(Resume) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if beforeCommit != nil {
		if err := beforeCommit(resume); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[resume.ID] = resume
	return nil
}

// GetByID returns a resume by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// Exists reports whether a resume with this ID is stored.
func (r *MemoryRepo) Exists(ctx context.Context, resumeID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[resumeID]
	return ok, nil
}

// ListByUser lists a user's resumes, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Resume
	for _, resume := range r.byID {
		if resume.UserID == userID {
			out = append(out, resume)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateATS overwrites the ATS score and issue list in place.
func (r *MemoryRepo) UpdateATS(ctx context.Context, resumeID string, score int, issues []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.byID[resumeID]
	if !ok {
		return ErrNotFound
	}
	resume.ATSScore = &score
	resume.ATSIssues = issues
	resume.UpdatedAt = time.Now().UTC()
	r.byID[resumeID] = resume
	return nil
}

// UpdateSkills persists a recomputed skill list in place.
func (r *MemoryRepo) UpdateSkills(ctx context.Context, resumeID string, skills []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.byID[resumeID]
	if !ok {
		return ErrNotFound
	}
	resume.SkillsDetected = skills
	resume.UpdatedAt = time.Now().UTC()
	r.byID[resumeID] = resume
	return nil
}

// Delete removes the operational row.
func (r *MemoryRepo) Delete(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[resumeID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, resumeID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
