package models

import "testing"

func TestDifficultyPoints(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		want       int
	}{
		{DifficultyEasy, 5},
		{DifficultyMedium, 10},
		{DifficultyHard, 15},
		{Difficulty("impossible"), 0},
	}
	for _, tt := range tests {
		if got := tt.difficulty.Points(); got != tt.want {
			t.Errorf("Points(%s) = %d, want %d", tt.difficulty, got, tt.want)
		}
	}
}

func TestDifficultyChoiceCount(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		want       int
	}{
		{DifficultyEasy, 2},
		{DifficultyMedium, 4},
		{DifficultyHard, 0},
	}
	for _, tt := range tests {
		if got := tt.difficulty.ChoiceCount(); got != tt.want {
			t.Errorf("ChoiceCount(%s) = %d, want %d", tt.difficulty, got, tt.want)
		}
	}
}

func TestTopicsForGrade(t *testing.T) {
	tests := []struct {
		grade int
		want  int
	}{
		{1, 2},
		{2, 3},
		{3, 4},
		{4, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := len(TopicsForGrade(tt.grade)); got != tt.want {
			t.Errorf("TopicsForGrade(%d) has %d topics, want %d", tt.grade, got, tt.want)
		}
	}
}

func TestGradeHasTopic(t *testing.T) {
	tests := []struct {
		grade int
		topic QuestionType
		want  bool
	}{
		{1, TypeAddition, true},
		{1, TypeMultiplication, false},
		{2, TypeMultiplication, true},
		{2, TypeDivision, false},
		{3, TypeDivision, true},
	}
	for _, tt := range tests {
		if got := GradeHasTopic(tt.grade, tt.topic); got != tt.want {
			t.Errorf("GradeHasTopic(%d, %s) = %v, want %v", tt.grade, tt.topic, got, tt.want)
		}
	}
}

func TestQuestionTypeSymbol(t *testing.T) {
	tests := []struct {
		topic QuestionType
		want  string
	}{
		{TypeAddition, "+"},
		{TypeSubtraction, "-"},
		{TypeMultiplication, "×"},
		{TypeDivision, "÷"},
		{QuestionType("exponent"), "?"},
	}
	for _, tt := range tests {
		if got := tt.topic.Symbol(); got != tt.want {
			t.Errorf("Symbol(%s) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}
