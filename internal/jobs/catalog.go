package jobs

// Job is a static catalog entry. The catalog is immutable configuration
// loaded once at process start and injected into the matcher.
type Job struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	RequiredSkills []string `json:"required_skills"`
}

// DefaultCatalog returns the built-in internship catalog. Catalog order is
// meaningful: the matcher breaks score ties by it.
func DefaultCatalog() []Job {
	return []Job{
		{ID: 1, Title: "Software Engineering Intern", Company: "TechNova Solutions", RequiredSkills: []string{"python", "git", "sql"}},
		{ID: 2, Title: "Backend Intern", Company: "Datakita Sdn Bhd", RequiredSkills: []string{"python", "sql", "flask"}},
		{ID: 3, Title: "Frontend Developer Intern", Company: "PixelWorks Studio", RequiredSkills: []string{"html", "css", "javascript", "react"}},
		{ID: 4, Title: "Data Analyst Intern", Company: "Insight Analytics", RequiredSkills: []string{"excel", "sql", "python"}},
		{ID: 5, Title: "Cloud Engineering Intern", Company: "SkyBridge Cloud", RequiredSkills: []string{"aws", "docker", "linux"}},
		{ID: 6, Title: "IT Support Intern", Company: "Metro Services Group", RequiredSkills: []string{"communication", "problem solving", "teamwork"}},
	}
}
