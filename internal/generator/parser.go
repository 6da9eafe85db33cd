package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

type GeneratedBatch struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type GeneratedQuestion struct {
	QuestionText  string `json:"question_text"`
	OperandA      int    `json:"operand_a"`
	OperandB      int    `json:"operand_b"`
	Answer        int    `json:"answer"`
	CompetencyTag string `json:"competency_tag"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func ParseResponse(responseBody string) (*GeneratedBatch, error) {
	cleaned := stripCodeFences(responseBody)

	var batch GeneratedBatch
	if err := json.Unmarshal([]byte(cleaned), &batch); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateBatch(&batch); err != nil {
		return nil, err
	}

	return &batch, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateBatch(batch *GeneratedBatch) error {
	var errs []string

	if len(batch.Questions) == 0 {
		return &ValidationError{Errors: []string{"no questions in batch"}}
	}

	for i, q := range batch.Questions {
		qNum := i + 1

		if strings.TrimSpace(q.QuestionText) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty question text", qNum))
			continue
		}
		if len(q.QuestionText) > 500 {
			errs = append(errs, fmt.Sprintf("question %d: question text length %d exceeds 500", qNum, len(q.QuestionText)))
		}
		if q.OperandA < 0 || q.OperandB < 0 {
			errs = append(errs, fmt.Sprintf("question %d: negative operand", qNum))
		}
		if q.Answer < 0 {
			errs = append(errs, fmt.Sprintf("question %d: negative answer", qNum))
		}
		if !strings.Contains(q.QuestionText, fmt.Sprintf("%d", q.OperandA)) ||
			!strings.Contains(q.QuestionText, fmt.Sprintf("%d", q.OperandB)) {
			errs = append(errs, fmt.Sprintf("question %d: operands missing from question text", qNum))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
