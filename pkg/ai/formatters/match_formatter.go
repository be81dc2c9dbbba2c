package formatters

import "fmt"

// MatchFormatter scores a résumé against a job description.
type MatchFormatter struct {
	language string
}

func NewMatchFormatter(language string) *MatchFormatter {
	return &MatchFormatter{language: language}
}

func (f *MatchFormatter) Name() string { return "match" }

func (f *MatchFormatter) Input(payload map[string]interface{}) (string, error) {
	ctx, err := mustMarshal(payload)
	if err != nil {
		return "", err
	}
	instr := languageLine(f.language) + `You compare a resume with a job description.
Return ONLY a single JSON object, no markdown, no code fences:
{
  "score": <integer 0-100, how well the resume fits the job>,
  "matchedKeywords": [<skills or terms present in both>],
  "missingKeywords": [<important job terms absent from the resume>],
  "suggestions": [{"section": "<resume section key>", "text": "<one concrete edit, max 210 chars>"}]
}
Section keys: profileInfo, workExperience, education, skills, projects, certifications, languages, interests.`
	return fmt.Sprintf("%s\n\nContext:\n%s", instr, ctx), nil
}
