package review

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/devsync/ai-engine/internal/llm"
)

// reviewPayload is the mandated reply shape. Missing keys decode to their
// zero values rather than failing; the three keys are independently optional.
type reviewPayload struct {
	Summary      string     `json:"summary"`
	Risks        stringList `json:"risks"`
	Improvements stringList `json:"improvements"`
}

// stringList accepts either a JSON array of strings or a bare string, which
// is coerced to a one-element list. Model output is unreliable; anything
// else (numbers, objects, mixed arrays) is a malformed reply.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = stringList{single}
		return nil
	}

	return errors.New("expected a string or an array of strings")
}

// parseReview decodes generated text into the review shape. Any structural
// mismatch is reported as a MalformedOutput failure; no field of a
// half-decoded reply is trusted.
func parseReview(text string) (reviewPayload, error) {
	var payload reviewPayload
	if err := json.Unmarshal([]byte(stripFences(text)), &payload); err != nil {
		return reviewPayload{}, &llm.Error{Kind: llm.KindMalformedOutput, Detail: "decode review JSON", Err: err}
	}
	return payload, nil
}

// stripFences removes a surrounding markdown code fence. The prompt forbids
// fencing but models add it anyway.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.SplitN(text, "\n", 2)
	if len(lines) > 1 {
		text = lines[1]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
