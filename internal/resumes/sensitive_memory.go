package resumes

import (
	"context"
	"sync"
)

// MemorySensitiveRepo is an in-memory SensitiveRepo for dev and tests.
type MemorySensitiveRepo struct {
	mu   sync.RWMutex
	byID map[string]SensitiveRecord
}

// NewMemorySensitiveRepo constructs a MemorySensitiveRepo.
func NewMemorySensitiveRepo() *MemorySensitiveRepo {
	return &MemorySensitiveRepo{byID: make(map[string]SensitiveRecord)}
}

// Create stores a sensitive record.
func (r *MemorySensitiveRepo) Create(ctx context.Context, rec SensitiveRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = rec
	return nil
}

// GetByResumeID returns the sensitive twin of an operational record.
func (r *MemorySensitiveRepo) GetByResumeID(ctx context.Context, resumeID string) (SensitiveRecord, error) {
	if err := ctx.Err(); err != nil {
		return SensitiveRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.byID {
		if rec.ResumeID == resumeID {
			return rec, nil
		}
	}
	return SensitiveRecord{}, ErrNotFound
}

// DeleteByResumeID removes the sensitive twin.
func (r *MemorySensitiveRepo) DeleteByResumeID(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.byID {
		if rec.ResumeID == resumeID {
			delete(r.byID, id)
		}
	}
	return nil
}

// ListRefs returns every record's link pair.
func (r *MemorySensitiveRepo) ListRefs(ctx context.Context) ([]SensitiveRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []SensitiveRef
	for _, rec := range r.byID {
		out = append(out, SensitiveRef{ID: rec.ID, ResumeID: rec.ResumeID})
	}
	return out, nil
}

var _ SensitiveRepo = (*MemorySensitiveRepo)(nil)
