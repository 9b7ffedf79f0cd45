package analyzer

import "strings"

type skillEntry struct {
	term      string // lowercase search term
	canonical string // capitalized form reported to callers
}

// skillDictionary is scanned in order; extraction results preserve this
// order. Matching is raw substring containment, so a term can fire inside a
// longer word ("java" inside "javascript"). That imprecision is a known
// property of the scoring and is left as is.
var skillDictionary = []skillEntry{
	{"python", "Python"},
	{"java", "Java"},
	{"javascript", "JavaScript"},
	{"sql", "SQL"},
	{"html", "HTML"},
	{"css", "CSS"},
	{"react", "React"},
	{"flask", "Flask"},
	{"node", "Node"},
	{"git", "Git"},
	{"excel", "Excel"},
	{"communication", "Communication"},
	{"leadership", "Leadership"},
	{"teamwork", "Teamwork"},
	{"problem solving", "Problem Solving"},
}

// ExtractSkills scans the resume text against the fixed skill dictionary and
// returns canonical names in dictionary order, without duplicates.
func ExtractSkills(text string) []string {
	text = strings.ToLower(text)
	found := []string{}
	for _, entry := range skillDictionary {
		if strings.Contains(text, entry.term) {
			found = append(found, entry.canonical)
		}
	}
	return found
}
