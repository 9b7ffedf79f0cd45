package jobs

import (
	"math"
	"sort"
	"strings"
)

// Match is one catalog entry scored against a candidate skill set.
type Match struct {
	Job           Job      `json:"job"`
	Score         int      `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
}

// Matcher scores candidate skills against an injected catalog.
type Matcher struct {
	catalog []Job
}

// NewMatcher builds a matcher over the given catalog.
func NewMatcher(catalog []Job) *Matcher {
	return &Matcher{catalog: catalog}
}

// Catalog returns the matcher's job list.
func (m *Matcher) Catalog() []Job {
	return m.catalog
}

// Match intersects the candidate's skills with each job's requirements,
// case-insensitively. Jobs with no overlap are excluded rather than scored
// zero. The per-job score is recall over the job's requirement set:
// round(|intersection| / |requirements| * 100). Results are sorted by score
// descending with catalog order breaking ties.
func (m *Matcher) Match(skills []string) []Match {
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	matches := []Match{}
	for _, job := range m.catalog {
		var matched []string
		for _, req := range job.RequiredSkills {
			if _, ok := have[strings.ToLower(req)]; ok {
				matched = append(matched, req)
			}
		}
		if len(matched) == 0 {
			continue
		}
		score := int(math.Round(float64(len(matched)) / float64(len(job.RequiredSkills)) * 100))
		matches = append(matches, Match{
			Job:           job,
			Score:         score,
			MatchedSkills: matched,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
