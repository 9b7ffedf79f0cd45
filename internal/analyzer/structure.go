package analyzer

import "strings"

// Feedback lists rubric labels by outcome, in rubric order.
type Feedback struct {
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

type rubricCheck struct {
	label string
	// missingLabel overrides label in the missing list when set.
	missingLabel string
	weight       int
	matches      func(text string) bool
}

func anyKeyword(keywords ...string) func(string) bool {
	return func(text string) bool {
		for _, k := range keywords {
			if strings.Contains(text, k) {
				return true
			}
		}
		return false
	}
}

// structureRubric is evaluated in order; the order of feedback entries is part
// of the contract. Weights sum to 100.
var structureRubric = []rubricCheck{
	{label: "Email Address", weight: 5, matches: emailPattern.MatchString},
	{label: "Phone Number", weight: 5, matches: phonePattern.MatchString},
	{label: "LinkedIn Profile", weight: 5, matches: anyKeyword("linkedin.com")},
	{label: "Location (State/Country)", weight: 10, matches: anyKeyword(
		"malaysia", "kuala lumpur", "selangor", "penang", "johor", "kedah", "sarawak", "sabah")},
	{label: "Education Section", weight: 15, matches: anyKeyword(
		"education", "academic", "university", "cgpa")},
	{label: "Work/Internship Experience", weight: 15, matches: anyKeyword(
		"experience", "internship", "employment", "work history")},
	{label: "Professional Summary", weight: 10, matches: anyKeyword(
		"summary", "objective", "profile", "about me")},
	{label: "Technical Skills", weight: 10, matches: anyKeyword(
		"skills", "technologies", "technical", "programming", "languages")},
	{label: "Soft Skills", missingLabel: "Soft Skills (Keywords)", weight: 5, matches: anyKeyword(
		"leadership", "communication", "teamwork", "problem solving", "soft skills")},
	{label: "Achievements/Certifications", weight: 5, matches: anyKeyword(
		"achievement", "award", "certification", "honor")},
	{label: "Co-curricular Activities", weight: 5, matches: anyKeyword(
		"involvement", "co-curricular", "club", "society", "volunteer")},
	{label: "References", weight: 10, matches: anyKeyword("references", "referees")},
}

// ScoreStructure runs the completeness rubric over the resume text. Each
// check awards its full weight or nothing; there is no partial credit. Pure
// function of the input.
func ScoreStructure(text string) (int, Feedback) {
	text = strings.ToLower(text)

	score := 0
	fb := Feedback{
		Present: []string{},
		Missing: []string{},
	}
	for _, check := range structureRubric {
		if check.matches(text) {
			score += check.weight
			fb.Present = append(fb.Present, check.label)
			continue
		}
		missing := check.missingLabel
		if missing == "" {
			missing = check.label
		}
		fb.Missing = append(fb.Missing, missing)
	}
	return score, fb
}
