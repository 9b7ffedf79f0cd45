package resumes

import (
	"time"

	"resume-matcher-backend/internal/analyzer"
	"resume-matcher-backend/internal/jobs"
)

// StructureResponse is the analyze-structure payload.
type StructureResponse struct {
	Score          int               `json:"score"`
	Feedback       analyzer.Feedback `json:"feedback"`
	SkillsDetected []string          `json:"skills_detected"`
	Persisted      bool              `json:"persisted"`
	ResumeID       string            `json:"resume_id,omitempty"`
}

// ATSResponse is the analyze-ats / rescan payload.
type ATSResponse struct {
	Score          int               `json:"score"`
	IsReadable     bool              `json:"is_readable"`
	ParsedInfo     map[string]string `json:"parsed_info"`
	Issues         []string          `json:"issues"`
	RawTextPreview string            `json:"raw_text_preview"`
	Persisted      bool              `json:"persisted"`
	ResumeID       string            `json:"resume_id,omitempty"`
}

// MatchResponse is the job-match payload.
type MatchResponse struct {
	ResumeID       string       `json:"resume_id"`
	SkillsDetected []string     `json:"skills_detected"`
	Matches        []jobs.Match `json:"matches"`
}

// SummaryResponse is one entry in the profile listing.
type SummaryResponse struct {
	ID                string             `json:"id"`
	StructureScore    *int               `json:"structure_score"`
	ATSScore          *int               `json:"ats_score"`
	StructureFeedback *analyzer.Feedback `json:"structure_feedback,omitempty"`
	ATSIssues         []string           `json:"ats_issues,omitempty"`
	SkillsDetected    []string           `json:"skills_detected"`
	CreatedAt         time.Time          `json:"created_at"`
}

func outcomeFields(outcome Outcome) (bool, string) {
	if p, ok := outcome.(Persisted); ok {
		return true, p.ResumeID
	}
	return false, ""
}

func toStructureResponse(result StructureResult) StructureResponse {
	persisted, id := outcomeFields(result.Outcome)
	return StructureResponse{
		Score:          result.Score,
		Feedback:       result.Feedback,
		SkillsDetected: result.SkillsDetected,
		Persisted:      persisted,
		ResumeID:       id,
	}
}

func toATSResponse(result ATSResult) ATSResponse {
	persisted, id := outcomeFields(result.Outcome)
	return ATSResponse{
		Score:          result.Report.Score,
		IsReadable:     result.Report.IsReadable,
		ParsedInfo:     result.Report.ParsedInfo,
		Issues:         result.Report.Issues,
		RawTextPreview: result.Report.RawTextPreview,
		Persisted:      persisted,
		ResumeID:       id,
	}
}

func toSummaryResponse(resume Resume) SummaryResponse {
	skills := resume.SkillsDetected
	if skills == nil {
		skills = []string{}
	}
	return SummaryResponse{
		ID:                resume.ID,
		StructureScore:    resume.StructureScore,
		ATSScore:          resume.ATSScore,
		StructureFeedback: resume.StructureFeedback,
		ATSIssues:         resume.ATSIssues,
		SkillsDetected:    skills,
		CreatedAt:         resume.CreatedAt,
	}
}
