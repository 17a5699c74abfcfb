package review

import "strings"

// buildPrompt constructs the review instruction with the diff embedded
// verbatim. The mandated reply is a bare JSON object with exactly three
// keys; fencing is forbidden so the reply can be decoded directly.
func buildPrompt(diff string) string {
	var sb strings.Builder
	sb.WriteString(`You are an AI code review agent.

Return ONLY valid JSON with this schema:
{
  "summary": "string",
  "risks": ["string"],
  "improvements": ["string"]
}

Do not wrap the JSON in markdown fencing or add any explanation.

Code diff:
`)
	sb.WriteString(diff)
	return sb.String()
}
