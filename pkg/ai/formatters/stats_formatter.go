package formatters

import "fmt"

// StatsFormatter reviews a résumé on its own when no job is given.
type StatsFormatter struct {
	language string
}

func NewStatsFormatter(language string) *StatsFormatter {
	return &StatsFormatter{language: language}
}

func (f *StatsFormatter) Name() string { return "stats" }

func (f *StatsFormatter) Input(payload map[string]interface{}) (string, error) {
	ctx, err := mustMarshal(payload)
	if err != nil {
		return "", err
	}
	instr := languageLine(f.language) + `You review a resume for clarity and impact.
Return ONLY a single JSON object, no markdown, no code fences:
{
  "score": <integer 0-100, overall quality>,
  "strengths": [<short phrases>],
  "weaknesses": [<short phrases>],
  "suggestions": [{"section": "<resume section key>", "text": "<one concrete edit, max 210 chars>"}]
}
Section keys: profileInfo, workExperience, education, skills, projects, certifications, languages, interests.`
	return fmt.Sprintf("%s\n\nContext:\n%s", instr, ctx), nil
}
