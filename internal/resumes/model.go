package resumes

import (
	"time"

	"resume-matcher-backend/internal/analyzer"
)

// Resume is the operational record: analysis metadata only, no file content.
// It lives in the operational (Postgres) store. Scores are independently
// nullable; a resume may have been scanned for structure only, ATS only, or
// both. SkillsDetected is nil until the first successful extraction.
type Resume struct {
	ID                string
	UserID            string
	StructureScore    *int
	ATSScore          *int
	StructureFeedback *analyzer.Feedback
	ATSIssues         []string
	SkillsDetected    []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SensitiveRecord holds the retained file details and the raw extracted
// text. It lives in the sensitive (SQLite) store. ResumeID is a logical link
// to the operational record; the two stores share no transaction and no
// referential-integrity constraint, so an orphan record here is possible if
// the operational write is lost after this one committed.
type SensitiveRecord struct {
	ID               string
	ResumeID         string
	OriginalFilename string
	FilePath         string
	ExtractedText    string
	CreatedAt        time.Time
}
