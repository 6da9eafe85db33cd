package generator

import (
	"fmt"
	"strings"

	"github.com/spaysidokito/math-racers-1/internal/models"
)

func SystemPrompt() string {
	return `You are an elementary school math curriculum writer. You write short,
age-appropriate arithmetic word problems for students in grades 1-3.

Rules:
- Every problem uses exactly two whole-number operands and one operation.
- The answer must be a non-negative whole number.
- Use content children relate to: toys, animals, snacks, games, racing.
- One or two sentences of setup, then a clear question.
- Vary names, settings, and objects across the batch.

Respond with ONLY a JSON object, no commentary, in this shape:
{"questions":[{"question_text":"...","operand_a":7,"operand_b":5,"answer":12,"competency_tag":"..."}]}

question_text must contain both operands as digits. competency_tag is a
short snake_case skill label (e.g. "adding_within_20").`
}

var operandGuidance = map[models.QuestionType]map[models.Difficulty]string{
	models.TypeAddition: {
		models.DifficultyEasy:   "operands 1-10, sums within 20",
		models.DifficultyMedium: "operands 10-50",
		models.DifficultyHard:   "operands 25-100, may require regrouping",
	},
	models.TypeSubtraction: {
		models.DifficultyEasy:   "operands 1-20, result always non-negative",
		models.DifficultyMedium: "operands 10-50, result always non-negative",
		models.DifficultyHard:   "operands 25-100, may require regrouping, result always non-negative",
	},
	models.TypeMultiplication: {
		models.DifficultyEasy:   "factors 1-5",
		models.DifficultyMedium: "factors 2-9",
		models.DifficultyHard:   "one factor 6-12, the other 3-9",
	},
	models.TypeDivision: {
		models.DifficultyEasy:   "divisors 2-5, quotients 1-5, no remainder",
		models.DifficultyMedium: "divisors 2-9, quotients 2-9, no remainder",
		models.DifficultyHard:   "divisors 3-12, quotients 4-12, no remainder",
	},
}

func BuildUserPrompt(topic models.QuestionType, grade int, difficulty models.Difficulty, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d %s word problems for grade %d students at %s difficulty.\n",
		count, topic, grade, difficulty)
	if guidance, ok := operandGuidance[topic][difficulty]; ok {
		fmt.Fprintf(&b, "Number range: %s.\n", guidance)
	}
	fmt.Fprintf(&b, "The operation for every problem is %s (%s).\n", topic, topic.Symbol())
	b.WriteString("Each problem must be solvable in one step. Return only the JSON object.")
	return b.String()
}
