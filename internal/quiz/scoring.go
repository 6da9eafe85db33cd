package quiz

import (
	"math"
	"strings"

	"github.com/spaysidokito/math-racers-1/internal/models"
)

// optimalSecondsPerQuestion is the pace that earns the full time bonus
// window: finishing under total×30 seconds starts accruing bonus points.
const optimalSecondsPerQuestion = 30

// Score computes the final points for a session from its fields alone.
func Score(correctAnswers, totalQuestions int, difficulty models.Difficulty, timeTaken int) int {
	base := correctAnswers * difficulty.Points()
	return base + TimeBonus(totalQuestions, timeTaken)
}

// TimeBonus rewards finishing ahead of the optimal pace: one point per
// 10 seconds saved, capped at 25. No bonus for untimed or slow runs.
func TimeBonus(totalQuestions, timeTaken int) int {
	if timeTaken <= 0 {
		return 0
	}
	optimal := totalQuestions * optimalSecondsPerQuestion
	if timeTaken > optimal {
		return 0
	}
	bonus := (optimal - timeTaken) / 10
	if bonus > 25 {
		bonus = 25
	}
	return bonus
}

// Accuracy derives the percentage of correct answers, rounded to two
// decimal places. It is never stored; always recomputed from counters.
func Accuracy(correctAnswers, totalQuestions int) float64 {
	if totalQuestions == 0 {
		return 0
	}
	return math.Round(float64(correctAnswers)/float64(totalQuestions)*10000) / 100
}

// AnswersMatch judges a submitted answer against the stored correct
// answer: whitespace-trimmed, case-insensitive string equality.
func AnswersMatch(given, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(correct))
}
