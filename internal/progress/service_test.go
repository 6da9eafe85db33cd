package progress

import (
	"errors"
	"testing"

	"github.com/spaysidokito/math-racers-1/internal/models"
)

func TestAssignTopicsValidation(t *testing.T) {
	svc := NewService(nil, nil)

	tests := []struct {
		name string
		req  models.AssignTopicsRequest
	}{
		{"no students", models.AssignTopicsRequest{Topics: []models.QuestionType{models.TypeAddition}, GradeLevel: 1}},
		{"no topics", models.AssignTopicsRequest{StudentIDs: []int64{1}, GradeLevel: 1}},
		{"bad grade", models.AssignTopicsRequest{StudentIDs: []int64{1}, Topics: []models.QuestionType{models.TypeAddition}, GradeLevel: 9}},
		{"topic locked for grade", models.AssignTopicsRequest{StudentIDs: []int64{1}, Topics: []models.QuestionType{models.TypeDivision}, GradeLevel: 1}},
	}
	for _, tt := range tests {
		if err := svc.AssignTopics(tt.req); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: got %v, want ErrValidation", tt.name, err)
		}
	}
}

func TestTopicTotalsKeepsGradesSeparate(t *testing.T) {
	topics := []models.TopicProgress{
		{Topic: models.TypeAddition, GradeLevel: 1, TotalPoints: 100, TotalQuizzes: 4, AverageAccuracy: 80},
		{Topic: models.TypeAddition, GradeLevel: 2, TotalPoints: 50, TotalQuizzes: 2, AverageAccuracy: 60},
	}

	points, quizzes, accuracy := topicTotals(topics)
	if points != 150 {
		t.Errorf("points = %d, want 150", points)
	}
	if quizzes != 6 {
		t.Errorf("quizzes = %d, want 6", quizzes)
	}
	if accuracy != 70 {
		t.Errorf("accuracy = %v, want 70", accuracy)
	}
}

func TestTopicTotalsEmpty(t *testing.T) {
	points, quizzes, accuracy := topicTotals(nil)
	if points != 0 || quizzes != 0 || accuracy != 0 {
		t.Errorf("got (%d, %d, %v), want zeros", points, quizzes, accuracy)
	}
}
