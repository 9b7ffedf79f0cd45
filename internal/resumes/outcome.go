package resumes

// Outcome says what happened to an analysis result: stored under a record id
// for an authenticated caller, or computed and thrown away for a guest. The
// two cases are distinct types rather than a boolean so callers have to
// handle both.
type Outcome interface {
	isOutcome()
}

// Persisted is the outcome for authenticated callers.
type Persisted struct {
	ResumeID string
}

// Ephemeral is the outcome for guests: nothing was written anywhere and the
// uploaded file is already gone.
type Ephemeral struct{}

func (Persisted) isOutcome() {}
func (Ephemeral) isOutcome() {}
