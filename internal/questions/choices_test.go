package questions

import (
	"math/rand"
	"testing"

	"github.com/spaysidokito/math-racers-1/internal/models"
)

func newTestGenerator() *ChoiceGenerator {
	return NewChoiceGenerator(rand.New(rand.NewSource(42)))
}

func TestChoicesHardHasNone(t *testing.T) {
	g := newTestGenerator()
	q := &models.Question{
		QuestionText:  "What is 9 × 7?",
		QuestionType:  models.TypeMultiplication,
		Difficulty:    models.DifficultyHard,
		CorrectAnswer: "63",
	}
	if choices := g.Choices(q); len(choices) != 0 {
		t.Errorf("expected no choices for hard, got %v", choices)
	}
}

func TestChoicesEasyCount(t *testing.T) {
	g := newTestGenerator()
	q := &models.Question{
		QuestionText:  "What is 4 + 3?",
		QuestionType:  models.TypeAddition,
		Difficulty:    models.DifficultyEasy,
		CorrectAnswer: "7",
	}
	choices := g.Choices(q)
	if len(choices) != 2 {
		t.Fatalf("expected 2 choices, got %d", len(choices))
	}
	assertValidChoiceSet(t, choices, 7)
}

func TestChoicesMediumCount(t *testing.T) {
	g := newTestGenerator()
	q := &models.Question{
		QuestionText:  "What is 12 - 5?",
		QuestionType:  models.TypeSubtraction,
		Difficulty:    models.DifficultyMedium,
		CorrectAnswer: "7",
	}
	for i := 0; i < 50; i++ {
		choices := g.Choices(q)
		if len(choices) != 4 {
			t.Fatalf("expected 4 choices, got %d", len(choices))
		}
		assertValidChoiceSet(t, choices, 7)
	}
}

func TestChoicesNonIntegerAnswer(t *testing.T) {
	g := newTestGenerator()
	q := &models.Question{
		QuestionText:  "What is half of 7?",
		QuestionType:  models.TypeDivision,
		Difficulty:    models.DifficultyEasy,
		CorrectAnswer: "3.5",
	}
	if choices := g.Choices(q); choices != nil {
		t.Errorf("expected free-text presentation for non-integer answer, got %v", choices)
	}
}

func TestChoicesSmallCorrectAnswer(t *testing.T) {
	// correct=1 rejects most jitter candidates (0 and negatives), so the
	// deterministic filler has to finish the set.
	g := newTestGenerator()
	q := &models.Question{
		QuestionText:  "What is 1?",
		QuestionType:  models.TypeAddition,
		Difficulty:    models.DifficultyMedium,
		CorrectAnswer: "1",
	}
	choices := g.Choices(q)
	if len(choices) != 4 {
		t.Fatalf("expected 4 choices, got %d", len(choices))
	}
	assertValidChoiceSet(t, choices, 1)
}

func assertValidChoiceSet(t *testing.T, choices []int, correct int) {
	t.Helper()
	seen := make(map[int]bool)
	correctCount := 0
	for _, c := range choices {
		if c <= 0 {
			t.Errorf("non-positive choice %d in %v", c, choices)
		}
		if seen[c] {
			t.Errorf("duplicate choice %d in %v", c, choices)
		}
		seen[c] = true
		if c == correct {
			correctCount++
		}
	}
	if correctCount != 1 {
		t.Errorf("correct answer %d appears %d times in %v", correct, correctCount, choices)
	}
}

func TestMistakeCandidates(t *testing.T) {
	tests := []struct {
		name     string
		op       models.QuestionType
		operands []int
		want     []int
	}{
		{"addition", models.TypeAddition, []int{8, 3}, []int{5, 12, 10, 24}},
		{"subtraction", models.TypeSubtraction, []int{8, 3}, []int{11, 5, 6, 4}},
		{"multiplication", models.TypeMultiplication, []int{8, 3}, []int{11, 32, 16, 32}},
		{"division", models.TypeDivision, []int{8, 2}, []int{16, 5, 3, 8}},
		{"division by zero", models.TypeDivision, []int{8, 0}, nil},
		{"single operand", models.TypeAddition, []int{8}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mistakeCandidates(tt.op, tt.operands)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("candidate %d: got %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractOperands(t *testing.T) {
	tests := []struct {
		text string
		want []int
	}{
		{"What is 12 + 5?", []int{12, 5}},
		{"Mia has 3 apples and buys 4 more. How many does she have?", []int{3, 4}},
		{"18 ÷ 6 = ?", []int{18, 6}},
		{"no numbers here", nil},
		{"ends with 42", []int{42}},
	}

	for _, tt := range tests {
		got := extractOperands(tt.text)
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.text, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: operand %d got %d, want %d", tt.text, i, got[i], tt.want[i])
			}
		}
	}
}
