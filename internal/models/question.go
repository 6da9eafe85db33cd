package models

import "time"

type QuestionType string

const (
	TypeAddition       QuestionType = "addition"
	TypeSubtraction    QuestionType = "subtraction"
	TypeMultiplication QuestionType = "multiplication"
	TypeDivision       QuestionType = "division"
)

var ValidQuestionTypes = map[QuestionType]bool{
	TypeAddition:       true,
	TypeSubtraction:    true,
	TypeMultiplication: true,
	TypeDivision:       true,
}

// Symbol returns the arithmetic operator used in question text.
func (t QuestionType) Symbol() string {
	switch t {
	case TypeAddition:
		return "+"
	case TypeSubtraction:
		return "-"
	case TypeMultiplication:
		return "×"
	case TypeDivision:
		return "÷"
	}
	return "?"
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// Points returns the per-question point value for the difficulty tier.
func (d Difficulty) Points() int {
	switch d {
	case DifficultyEasy:
		return 5
	case DifficultyMedium:
		return 10
	case DifficultyHard:
		return 15
	}
	return 0
}

// ChoiceCount returns how many answer choices are presented for the tier.
// Hard questions are free-entry and present no choices.
func (d Difficulty) ChoiceCount() int {
	switch d {
	case DifficultyEasy:
		return 2
	case DifficultyMedium:
		return 4
	}
	return 0
}

// ValidGrades are the grade levels the question bank covers.
var ValidGrades = map[int]bool{1: true, 2: true, 3: true}

// TopicsForGrade returns the question types available to a grade level.
// Topics unlock progressively: multiplication at grade 2, division at 3.
func TopicsForGrade(grade int) []QuestionType {
	switch grade {
	case 1:
		return []QuestionType{TypeAddition, TypeSubtraction}
	case 2:
		return []QuestionType{TypeAddition, TypeSubtraction, TypeMultiplication}
	case 3:
		return []QuestionType{TypeAddition, TypeSubtraction, TypeMultiplication, TypeDivision}
	}
	return nil
}

// GradeHasTopic reports whether a topic is available at a grade level.
func GradeHasTopic(grade int, topic QuestionType) bool {
	for _, t := range TopicsForGrade(grade) {
		if t == topic {
			return true
		}
	}
	return false
}

// ── Core Structs ───────────────────────────────────────

type Question struct {
	ID            int64        `json:"id"`
	QuestionText  string       `json:"question_text"`
	QuestionType  QuestionType `json:"question_type"`
	GradeLevel    int          `json:"grade_level"`
	Difficulty    Difficulty   `json:"difficulty"`
	CorrectAnswer string       `json:"correct_answer"`
	Options       []string     `json:"options,omitempty"`
	CompetencyTag string       `json:"competency_tag"`
	CreatedBy     int64        `json:"created_by"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ── Request Types ─────────────────────────────────────

type CreateQuestionRequest struct {
	QuestionText  string       `json:"question_text"`
	QuestionType  QuestionType `json:"question_type"`
	GradeLevel    int          `json:"grade_level"`
	Difficulty    Difficulty   `json:"difficulty"`
	CorrectAnswer string       `json:"correct_answer"`
	Options       []string     `json:"options,omitempty"`
	CompetencyTag string       `json:"competency_tag"`
}

type QuestionListRequest struct {
	QuestionType *QuestionType `json:"question_type,omitempty"`
	GradeLevel   *int          `json:"grade_level,omitempty"`
	Difficulty   *Difficulty   `json:"difficulty,omitempty"`
	Search       string        `json:"search,omitempty"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
}

// ── Response Types ────────────────────────────────────

type QuestionListResponse struct {
	Questions []Question `json:"questions"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}

// QuizQuestion is a question prepared for serving inside a quiz: the
// generated answer choices are attached and the correct answer is stripped.
// An empty Choices slice means the student types the answer.
type QuizQuestion struct {
	ID           int64        `json:"id"`
	QuestionText string       `json:"question_text"`
	QuestionType QuestionType `json:"question_type"`
	Difficulty   Difficulty   `json:"difficulty"`
	Points       int          `json:"points"`
	Choices      []int        `json:"choices"`
}

// ── Generation Types ──────────────────────────────────

type GenerateQuestionsRequest struct {
	Topic      QuestionType `json:"topic"`
	GradeLevel int          `json:"grade_level"`
	Difficulty Difficulty   `json:"difficulty"`
	Count      int          `json:"count"`
}

type GenerateQuestionsResponse struct {
	Requested int        `json:"requested"`
	Generated int        `json:"generated"`
	Rejected  int        `json:"rejected"`
	Saved     []Question `json:"saved"`
	ModelUsed string     `json:"model_used"`
}

// ── Export Types ──────────────────────────────────────

type ExportEnvelope struct {
	Version    int              `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Questions  []ExportQuestion `json:"questions"`
}

type ExportQuestion struct {
	QuestionText  string       `json:"question_text"`
	QuestionType  QuestionType `json:"question_type"`
	GradeLevel    int          `json:"grade_level"`
	Difficulty    Difficulty   `json:"difficulty"`
	CorrectAnswer string       `json:"correct_answer"`
	Options       []string     `json:"options,omitempty"`
	CompetencyTag string       `json:"competency_tag"`
}

// ── Admin Types ───────────────────────────────────────

type QuestionBankStats struct {
	TotalQuestions int                   `json:"total_questions"`
	ByType         map[QuestionType]int  `json:"by_type"`
	ByGrade        map[int]int           `json:"by_grade"`
	ByDifficulty   map[Difficulty]int    `json:"by_difficulty"`
	TopCreators    []QuestionCreatorStat `json:"top_creators"`
}

type QuestionCreatorStat struct {
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	Questions int    `json:"questions"`
}

type BulkDeleteRequest struct {
	QuestionIDs []int64 `json:"question_ids"`
}

type BulkDeleteResult struct {
	Requested int `json:"requested"`
	Deleted   int `json:"deleted"`
	Skipped   int `json:"skipped"`
}
