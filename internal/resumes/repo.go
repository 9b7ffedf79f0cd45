package resumes

import "context"

// Repo defines persistence operations on the operational store.
//
// CreateWithin runs the dual-store write protocol: it opens a transaction,
// inserts the operational row, invokes beforeCommit (which writes to the
// sensitive store, a separate resource with its own commit point), and only
// then commits. A beforeCommit error rolls the operational insert back. A
// crash between the sensitive store's commit and ours leaves an orphan
// sensitive record; that window is accepted and detected by reconciliation.
type Repo interface {
	CreateWithin(ctx context.Context, resume Resume, beforeCommit func(Resume) error) error
	GetByID(ctx context.Context, resumeID string) (Resume, error)
	Exists(ctx context.Context, resumeID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	UpdateATS(ctx context.Context, resumeID string, score int, issues []string) error
	UpdateSkills(ctx context.Context, resumeID string, skills []string) error
	Delete(ctx context.Context, resumeID string) error
}

// SensitiveRepo defines persistence operations on the sensitive store.
type SensitiveRepo interface {
	Create(ctx context.Context, rec SensitiveRecord) error
	GetByResumeID(ctx context.Context, resumeID string) (SensitiveRecord, error)
	DeleteByResumeID(ctx context.Context, resumeID string) error
	// ListRefs returns every record's id/resume_id pair, for reconciliation.
	ListRefs(ctx context.Context) ([]SensitiveRef, error)
}

// SensitiveRef is the link side of a sensitive record.
type SensitiveRef struct {
	ID       string
	ResumeID string
}
