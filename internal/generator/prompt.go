package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"simulado/api/internal/models"
)

// ErrMalformedOutput marks provider output that does not parse into the
// expected question list shape.
var ErrMalformedOutput = errors.New("malformed generation output")

// PromptSpec describes one generation request to the provider.
type PromptSpec struct {
	Exam       string
	Subject    string
	Difficulty string
	Count      int
}

// BuildPrompt renders the natural-language request. The structural rules are
// a fixed contract: exactly 4 labeled options per question, a correct-answer
// index in [0,3], unique per-question ids, and a raw JSON list with no
// surrounding fencing.
func BuildPrompt(spec PromptSpec) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d multiple-choice questions for a mock university entrance exam.\n", spec.Count)
	b.WriteString("Response format: JSON\n\n")
	b.WriteString("Strict rules:\n")
	fmt.Fprintf(&b, "1. Exam: %s\n", strings.ToUpper(spec.Exam))
	fmt.Fprintf(&b, "2. Subject: %s\n", spec.Subject)
	fmt.Fprintf(&b, "3. Difficulty level: %s\n", spec.Difficulty)
	b.WriteString("4. Every question MUST have exactly 4 options (A, B, C, D).\n")
	b.WriteString("5. The correct answer MUST be a number (0, 1, 2 or 3).\n")
	b.WriteString("6. The output JSON must be a list of objects.\n")
	b.WriteString("7. Do NOT include \"```json\" or \"```\" at the start or end of the response.\n")
	b.WriteString("8. Question ids must be unique (e.g. 'q1', 'q2').\n\n")
	b.WriteString("Example of the output JSON format:\n")
	b.WriteString(`[
  {
    "id": "q1",
    "enunciado": "Qual a capital da Franca?",
    "opcoes": [
      {"id": 0, "texto": "Berlim"},
      {"id": 1, "texto": "Madri"},
      {"id": 2, "texto": "Paris"},
      {"id": 3, "texto": "Roma"}
    ],
    "respostaCorreta": 2
  }
]
`)

	return b.String()
}

var fencePattern = regexp.MustCompile("```json\\s*|\\s*```")

// StripFences removes markdown code-fence markers the provider sometimes
// wraps its output in despite the prompt rules.
func StripFences(raw string) string {
	return fencePattern.ReplaceAllString(strings.TrimSpace(raw), "")
}

// ParseQuestions decodes cleaned provider output into a question list and
// validates the structural contract. Annotation fields (exam, subject,
// difficulty) are left empty for the caller to fill.
func ParseQuestions(cleaned string) ([]models.Question, error) {
	var questions []models.Question
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question list", ErrMalformedOutput)
	}

	for i, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("%w: question %d missing id", ErrMalformedOutput, i)
		}
		if q.Statement == "" {
			return nil, fmt.Errorf("%w: question %q missing statement", ErrMalformedOutput, q.ID)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("%w: question %q has %d options, want 4", ErrMalformedOutput, q.ID, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			return nil, fmt.Errorf("%w: question %q correct answer %d out of range", ErrMalformedOutput, q.ID, q.CorrectAnswer)
		}
	}

	return questions, nil
}
