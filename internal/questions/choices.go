package questions

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/spaysidokito/math-racers-1/internal/models"
)

// maxSampleAttempts bounds the random candidate sampling before the
// generator falls back to deterministic filler.
const maxSampleAttempts = 50

// ChoiceGenerator produces the answer set presented alongside a question.
// It holds its own random source so tests can seed it.
type ChoiceGenerator struct {
	rng *rand.Rand
}

func NewChoiceGenerator(rng *rand.Rand) *ChoiceGenerator {
	return &ChoiceGenerator{rng: rng}
}

// Choices returns the shuffled answer set for a question, sized by
// difficulty: easy gets 2, medium gets 4, hard gets none (free entry).
// A non-integer correct answer also yields no choices.
func (g *ChoiceGenerator) Choices(q *models.Question) []int {
	count := q.Difficulty.ChoiceCount()
	if count == 0 {
		return nil
	}

	correct, err := strconv.Atoi(strings.TrimSpace(q.CorrectAnswer))
	if err != nil {
		return nil
	}

	wrong := g.wrongAnswers(q, correct, count-1)

	choices := append(wrong, correct)
	g.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}

// wrongAnswers builds `needed` distinct positive integers, none equal to
// the correct answer. Candidates come from operand-derived common
// mistakes first, then numeric jitter, then deterministic filler.
func (g *ChoiceGenerator) wrongAnswers(q *models.Question, correct, needed int) []int {
	chosen := make([]int, 0, needed)
	seen := map[int]bool{correct: true}

	accept := func(v int) bool {
		if v <= 0 || seen[v] {
			return false
		}
		seen[v] = true
		chosen = append(chosen, v)
		return true
	}

	attempts := 0

	candidates := mistakeCandidates(q.QuestionType, extractOperands(q.QuestionText))
	for len(candidates) > 0 && len(chosen) < needed && attempts < maxSampleAttempts {
		attempts++
		accept(candidates[g.rng.Intn(len(candidates))])
	}

	for len(chosen) < needed && attempts < maxSampleAttempts {
		attempts++
		accept(g.jitter(correct))
	}

	// Deterministic filler: walk away from the correct answer until full.
	for offset := 1; len(chosen) < needed; offset++ {
		if accept(correct + offset) {
			continue
		}
		accept(correct - offset)
	}

	return chosen
}

// mistakeCandidates returns the wrong answers a student is likely to
// produce for the operation, given the first two operands of the
// question text. Fewer than two operands yields no candidates.
func mistakeCandidates(op models.QuestionType, operands []int) []int {
	if len(operands) < 2 {
		return nil
	}
	a, b := operands[0], operands[1]

	var out []int
	switch op {
	case models.TypeAddition:
		out = []int{abs(a - b), a + b + 1, a + b - 1, a * b}
	case models.TypeSubtraction:
		out = []int{a + b, abs(b - a), a - b + 1, a - b - 1}
	case models.TypeMultiplication:
		out = []int{a + b, a * (b + 1), a * (b - 1), a*b + a}
	case models.TypeDivision:
		if b == 0 {
			return nil
		}
		out = []int{a * b, a/b + 1, a/b - 1, a}
	}
	return out
}

// jitter perturbs the correct answer when operand candidates run out.
func (g *ChoiceGenerator) jitter(correct int) int {
	switch g.rng.Intn(6) {
	case 0:
		return correct + g.rng.Intn(5) + 1
	case 1:
		return correct - g.rng.Intn(5) - 1
	case 2:
		return correct + 10
	case 3:
		return correct - 10
	case 4:
		return correct * 2
	default:
		return correct / 2
	}
}

// extractOperands pulls the integer literals out of question text, in
// order of appearance.
func extractOperands(text string) []int {
	var operands []int
	start := -1
	for i, r := range text {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if n, err := strconv.Atoi(text[start:i]); err == nil {
				operands = append(operands, n)
			}
			start = -1
		}
	}
	if start >= 0 {
		if n, err := strconv.Atoi(text[start:]); err == nil {
			operands = append(operands, n)
		}
	}
	return operands
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
