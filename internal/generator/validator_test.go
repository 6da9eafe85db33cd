package generator

import (
	"testing"

	"github.com/spaysidokito/math-racers-1/internal/models"
)

func TestValidateArithmetic(t *testing.T) {
	tests := []struct {
		name    string
		topic   models.QuestionType
		a, b    int
		answer  int
		wantErr bool
	}{
		{"addition correct", models.TypeAddition, 7, 5, 12, false},
		{"addition wrong", models.TypeAddition, 7, 5, 13, true},
		{"subtraction correct", models.TypeSubtraction, 14, 6, 8, false},
		{"subtraction negative result", models.TypeSubtraction, 6, 14, -8, true},
		{"multiplication correct", models.TypeMultiplication, 4, 6, 24, false},
		{"multiplication wrong", models.TypeMultiplication, 4, 6, 26, true},
		{"division correct", models.TypeDivision, 18, 3, 6, false},
		{"division with remainder", models.TypeDivision, 19, 3, 6, true},
		{"division by zero", models.TypeDivision, 18, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &GeneratedQuestion{OperandA: tt.a, OperandB: tt.b, Answer: tt.answer}
			err := ValidateArithmetic(q, tt.topic)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArithmetic(%d %s %d = %d) error = %v, wantErr %v",
					tt.a, tt.topic, tt.b, tt.answer, err, tt.wantErr)
			}
		})
	}
}

func TestValidateArithmeticUnknownOperation(t *testing.T) {
	q := &GeneratedQuestion{OperandA: 1, OperandB: 1, Answer: 2}
	if err := ValidateArithmetic(q, models.QuestionType("modulo")); err == nil {
		t.Error("expected error for unknown operation")
	}
}

func TestMockBatchPassesArithmetic(t *testing.T) {
	batch, err := ParseResponse(buildMockJSON())
	if err != nil {
		t.Fatalf("parse mock: %v", err)
	}

	ops := []models.QuestionType{
		models.TypeAddition, models.TypeSubtraction, models.TypeMultiplication,
		models.TypeDivision, models.TypeAddition,
	}
	for i, q := range batch.Questions {
		if err := ValidateArithmetic(&q, ops[i]); err != nil {
			t.Errorf("mock question %d failed arithmetic check: %v", i+1, err)
		}
	}
}
