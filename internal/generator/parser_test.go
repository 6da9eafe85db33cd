package generator

import (
	"strings"
	"testing"
)

func TestParseResponseValid(t *testing.T) {
	body := `{"questions":[
		{"question_text":"Sam has 3 marbles and finds 4 more. How many marbles does Sam have?","operand_a":3,"operand_b":4,"answer":7,"competency_tag":"adding_within_10"}
	]}`

	batch, err := ParseResponse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(batch.Questions))
	}
	q := batch.Questions[0]
	if q.OperandA != 3 || q.OperandB != 4 || q.Answer != 7 {
		t.Errorf("unexpected fields: %+v", q)
	}
}

func TestParseResponseStripsCodeFences(t *testing.T) {
	body := "```json\n" + `{"questions":[{"question_text":"2 dogs and 5 cats. How many pets in total, 2 plus 5?","operand_a":2,"operand_b":5,"answer":7,"competency_tag":"adding_within_10"}]}` + "\n```"

	batch, err := ParseResponse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Questions) != 1 {
		t.Errorf("expected 1 question, got %d", len(batch.Questions))
	}
}

func TestParseResponseInvalidJSON(t *testing.T) {
	if _, err := ParseResponse("not json at all"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParseResponseEmptyBatch(t *testing.T) {
	_, err := ParseResponse(`{"questions":[]}`)
	if err == nil {
		t.Fatal("expected error for empty batch")
	}
	if !strings.Contains(err.Error(), "no questions") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseResponseOperandsMustAppearInText(t *testing.T) {
	body := `{"questions":[{"question_text":"Some apples and some pears.","operand_a":3,"operand_b":4,"answer":7,"competency_tag":"t"}]}`
	_, err := ParseResponse(body)
	if err == nil {
		t.Fatal("expected error when operands are missing from text")
	}
	if !strings.Contains(err.Error(), "operands missing") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseMockJSON(t *testing.T) {
	batch, err := ParseResponse(buildMockJSON())
	if err != nil {
		t.Fatalf("mock JSON should parse cleanly: %v", err)
	}
	if len(batch.Questions) == 0 {
		t.Error("mock batch is empty")
	}
}
