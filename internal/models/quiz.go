package models

import "time"

// ── Core Structs ───────────────────────────────────────

type QuizSession struct {
	ID             int64        `json:"id"`
	StudentID      int64        `json:"student_id"`
	QuestionType   QuestionType `json:"question_type"`
	GradeLevel     int          `json:"grade_level"`
	Difficulty     Difficulty   `json:"difficulty"`
	TotalQuestions int          `json:"total_questions"`
	QuestionIDs    []int64      `json:"question_ids"`
	CorrectAnswers int          `json:"correct_answers"`
	PointsEarned   int          `json:"points_earned"`
	TimeTaken      int          `json:"time_taken"`
	CreatedAt      time.Time    `json:"created_at"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
}

// IsCompleted reports whether the session has been finalized.
func (s *QuizSession) IsCompleted() bool {
	return s.CompletedAt != nil
}

// HasQuestion reports whether a question id belongs to the session's
// fixed question set.
func (s *QuizSession) HasQuestion(questionID int64) bool {
	for _, id := range s.QuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}

type QuizAnswer struct {
	ID            int64     `json:"id"`
	QuizSessionID int64     `json:"quiz_session_id"`
	QuestionID    int64     `json:"question_id"`
	StudentAnswer string    `json:"student_answer"`
	IsCorrect     bool      `json:"is_correct"`
	TimeTaken     int       `json:"time_taken"`
	CreatedAt     time.Time `json:"created_at"`
}

// ── Request Types ─────────────────────────────────────

type StartQuizRequest struct {
	GradeLevel int          `json:"grade_level"`
	Topic      QuestionType `json:"topic"`
	Difficulty Difficulty   `json:"difficulty"`
}

type SubmitAnswerRequest struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
	TimeTaken  int    `json:"time_taken"`
}

type CompleteQuizRequest struct {
	TotalTime int `json:"total_time"`
}

// ── Response Types ────────────────────────────────────

type StartQuizResponse struct {
	SessionID      int64        `json:"session_id"`
	Topic          QuestionType `json:"topic"`
	GradeLevel     int          `json:"grade_level"`
	Difficulty     Difficulty   `json:"difficulty"`
	TotalQuestions int          `json:"total_questions"`
}

type QuizView struct {
	SessionID      int64          `json:"session_id"`
	Topic          QuestionType   `json:"topic"`
	GradeLevel     int            `json:"grade_level"`
	Difficulty     Difficulty     `json:"difficulty"`
	TotalQuestions int            `json:"total_questions"`
	CorrectAnswers int            `json:"correct_answers"`
	Questions      []QuizQuestion `json:"questions"`
}

type SubmitAnswerResponse struct {
	Correct        bool `json:"correct"`
	CorrectAnswers int  `json:"correct_answers"`
}

// QuizResult is the finalized outcome of a completed session.
type QuizResult struct {
	SessionID      int64    `json:"session_id"`
	PointsEarned   int      `json:"points_earned"`
	Accuracy       float64  `json:"accuracy"`
	CorrectAnswers int      `json:"correct_answers"`
	TotalQuestions int      `json:"total_questions"`
	TimeTaken      int      `json:"time_taken"`
	NewBadges      []string `json:"new_badges"`
}

// SessionSummary is a compact view of a completed session for history lists.
type SessionSummary struct {
	SessionID      int64        `json:"session_id"`
	Topic          QuestionType `json:"topic"`
	GradeLevel     int          `json:"grade_level"`
	Difficulty     Difficulty   `json:"difficulty"`
	PointsEarned   int          `json:"points_earned"`
	Accuracy       float64      `json:"accuracy"`
	CorrectAnswers int          `json:"correct_answers"`
	TotalQuestions int          `json:"total_questions"`
	TimeTaken      int          `json:"time_taken"`
	CompletedAt    time.Time    `json:"completed_at"`
}
