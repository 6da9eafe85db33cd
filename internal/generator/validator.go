package generator

import (
	"fmt"

	"github.com/spaysidokito/math-racers-1/internal/models"
)

// ValidateArithmetic recomputes the answer from the parsed operands and
// rejects any question whose stated answer is wrong. Unlike the LLM
// pipeline upstream, this check is deterministic: a generated question
// never reaches the bank with an incorrect answer.
func ValidateArithmetic(q *GeneratedQuestion, topic models.QuestionType) error {
	a, b := q.OperandA, q.OperandB

	var expected int
	switch topic {
	case models.TypeAddition:
		expected = a + b
	case models.TypeSubtraction:
		if a < b {
			return fmt.Errorf("subtraction %d - %d yields a negative result", a, b)
		}
		expected = a - b
	case models.TypeMultiplication:
		expected = a * b
	case models.TypeDivision:
		if b == 0 {
			return fmt.Errorf("division by zero")
		}
		if a%b != 0 {
			return fmt.Errorf("division %d / %d leaves a remainder", a, b)
		}
		expected = a / b
	default:
		return fmt.Errorf("unknown operation %q", topic)
	}

	if q.Answer != expected {
		return fmt.Errorf("stated answer %d does not match computed %d %s %d = %d",
			q.Answer, a, topic.Symbol(), b, expected)
	}
	return nil
}
