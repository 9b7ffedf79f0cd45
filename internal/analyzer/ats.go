package analyzer

import "strings"

const (
	// Below this many stripped characters, combined with a large file, the
	// upload is treated as a scanned image rather than a text PDF.
	minReadableChars  = 50
	scannedImageBytes = 50000

	cidMarker       = "(cid:"
	maxCIDArtifacts = 3
	maxLineLength   = 300

	previewLength = 500
)

// ATS issue strings surfaced to the caller.
const (
	issueUnreadable = "CRITICAL: Resume appears to be a scanned image or has no readable text. ATS systems cannot parse it."
	issueNoEmail    = "Email address could not be parsed."
	issueNoPhone    = "Phone number could not be parsed."
	issueFontEnc    = "Font encoding artifacts detected; some characters may not survive ATS parsing."
	issueLongLines  = "Formatting: very long lines suggest tables or columns that confuse ATS parsers."
)

// ATSReport is the outcome of the ATS compatibility simulation.
type ATSReport struct {
	Score          int               `json:"score"`
	IsReadable     bool              `json:"is_readable"`
	ParsedInfo     map[string]string `json:"parsed_info"`
	Issues         []string          `json:"issues"`
	RawTextPreview string            `json:"raw_text_preview"`
}

// ScoreATS simulates how an applicant tracking system parses the resume.
// Deductions: 25 points for each unparsed contact field, then 10 points per
// recorded issue. The contact failures are themselves issues, so they are
// deducted twice; this mirrors the established scoring and is kept on
// purpose. The final score never drops below zero.
func ScoreATS(text string, fileSizeBytes int64) ATSReport {
	report := ATSReport{
		IsReadable:     true,
		ParsedInfo:     map[string]string{},
		Issues:         []string{},
		RawTextPreview: preview(text),
	}

	// Readability gate: a large file with almost no extractable text is
	// most likely a scanned image. Terminal, no further checks run.
	if len(strings.TrimSpace(text)) < minReadableChars && fileSizeBytes > scannedImageBytes {
		report.IsReadable = false
		report.Score = 0
		report.Issues = append(report.Issues, issueUnreadable)
		return report
	}

	lower := strings.ToLower(text)

	emailOK := false
	if m := emailPattern.FindString(lower); m != "" {
		report.ParsedInfo["email"] = m
		emailOK = true
	} else {
		report.Issues = append(report.Issues, issueNoEmail)
	}

	phoneOK := false
	if m := phonePattern.FindString(lower); m != "" {
		report.ParsedInfo["phone"] = m
		phoneOK = true
	} else {
		report.Issues = append(report.Issues, issueNoPhone)
	}

	if strings.Count(text, cidMarker) > maxCIDArtifacts {
		report.Issues = append(report.Issues, issueFontEnc)
	}
	for _, line := range strings.Split(text, "\n") {
		if len(line) > maxLineLength {
			report.Issues = append(report.Issues, issueLongLines)
			break
		}
	}

	score := 100
	if !emailOK {
		score -= 25
	}
	if !phoneOK {
		score -= 25
	}
	score -= 10 * len(report.Issues)
	if score < 0 {
		score = 0
	}
	report.Score = score
	return report
}

func preview(text string) string {
	if len(text) > previewLength {
		text = text[:previewLength]
	}
	return text + "..."
}
