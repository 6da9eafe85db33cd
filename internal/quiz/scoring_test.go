package quiz

import (
	"testing"

	"github.com/spaysidokito/math-racers-1/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		correct    int
		total      int
		difficulty models.Difficulty
		timeTaken  int
		want       int
	}{
		{"easy under pace", 8, 10, models.DifficultyEasy, 200, 50},
		{"easy exactly optimal", 10, 10, models.DifficultyEasy, 300, 50},
		{"easy over pace", 8, 10, models.DifficultyEasy, 400, 40},
		{"medium perfect fast", 10, 10, models.DifficultyMedium, 40, 125},
		{"hard no bonus untimed", 5, 10, models.DifficultyHard, 0, 75},
		{"zero correct", 0, 10, models.DifficultyMedium, 100, 20},
		{"negative time", 5, 5, models.DifficultyEasy, -10, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.correct, tt.total, tt.difficulty, tt.timeTaken)
			if got != tt.want {
				t.Errorf("Score(%d, %d, %s, %d) = %d, want %d",
					tt.correct, tt.total, tt.difficulty, tt.timeTaken, got, tt.want)
			}
		})
	}
}

func TestTimeBonusCap(t *testing.T) {
	// 10 questions, finished in 1 second: 299/10 = 29, capped at 25.
	if got := TimeBonus(10, 1); got != 25 {
		t.Errorf("TimeBonus(10, 1) = %d, want 25", got)
	}
}

func TestScoreDeterminism(t *testing.T) {
	first := Score(7, 10, models.DifficultyMedium, 250)
	for i := 0; i < 10; i++ {
		if got := Score(7, 10, models.DifficultyMedium, 250); got != first {
			t.Fatalf("Score is not deterministic: got %d then %d", first, got)
		}
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		correct int
		total   int
		want    float64
	}{
		{8, 10, 80},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{0, 10, 0},
		{10, 10, 100},
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := Accuracy(tt.correct, tt.total); got != tt.want {
			t.Errorf("Accuracy(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestAnswersMatch(t *testing.T) {
	tests := []struct {
		given   string
		correct string
		want    bool
	}{
		{"8", "8", true},
		{" 8 ", "8", true},
		{"EIGHT", "eight", true},
		{"Eight", "8", false},
		{"", "8", false},
		{"  42", "42  ", true},
	}

	for _, tt := range tests {
		if got := AnswersMatch(tt.given, tt.correct); got != tt.want {
			t.Errorf("AnswersMatch(%q, %q) = %v, want %v", tt.given, tt.correct, got, tt.want)
		}
	}
}
