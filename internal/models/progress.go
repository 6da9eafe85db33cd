package models

import "time"

type StudentProgress struct {
	ID                int64        `json:"id"`
	StudentID         int64        `json:"student_id"`
	QuestionType      QuestionType `json:"question_type"`
	GradeLevel        int          `json:"grade_level"`
	TotalPoints       int          `json:"total_points"`
	MasteryPercentage float64      `json:"mastery_percentage"`
	LastActivity      *time.Time   `json:"last_activity,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// ── Response Types ────────────────────────────────────

// TopicProgress is one (topic, grade) block of a student's progress
// view. The same topic can appear once per grade level.
type TopicProgress struct {
	Topic             QuestionType `json:"topic"`
	GradeLevel        int          `json:"grade_level"`
	TotalPoints       int          `json:"total_points"`
	MasteryPercentage float64      `json:"mastery_percentage"`
	MasteryCategory   string       `json:"mastery_category"`
	BadgesEarned      []string     `json:"badges_earned"`
	TotalQuizzes      int          `json:"total_quizzes"`
	AverageAccuracy   float64      `json:"average_accuracy"`
	BestScore         int          `json:"best_score"`
	LastActivity      *time.Time   `json:"last_activity,omitempty"`
}

type ProgressResponse struct {
	GradeLevel     int              `json:"grade_level"`
	TotalPoints    int              `json:"total_points"`
	TotalBadges    int              `json:"total_badges"`
	TotalQuizzes   int              `json:"total_quizzes"`
	AvgAccuracy    float64          `json:"average_accuracy"`
	Topics         []TopicProgress  `json:"topics"`
	RecentSessions []SessionSummary `json:"recent_sessions"`
	AllBadges      []string         `json:"all_badges"`
}

// ── Leaderboard Types ─────────────────────────────────

type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	StudentID     int64   `json:"student_id"`
	Name          string  `json:"name"`
	Points        int     `json:"points"`
	BadgeCount    int     `json:"badge_count"`
	MasteryLevel  float64 `json:"mastery_level,omitempty"`
	IsCurrentUser bool    `json:"is_current_user"`
}

type LeaderboardResponse struct {
	GradeLevel      int                `json:"grade_level"`
	Topic           string             `json:"topic"`
	Entries         []LeaderboardEntry `json:"entries"`
	CurrentUserRank int                `json:"current_user_rank,omitempty"`
}

// ── Topic Assignment Types ────────────────────────────

// AssignTopicsRequest seeds progress rows for the given students so an
// assigned topic shows up in their progress view before any quiz.
type AssignTopicsRequest struct {
	StudentIDs []int64        `json:"student_ids"`
	Topics     []QuestionType `json:"topics"`
	GradeLevel int            `json:"grade_level"`
}

type StudentAssignments struct {
	StudentID int64          `json:"student_id"`
	Name      string         `json:"name"`
	Topics    []QuestionType `json:"topics"`
}

type TopicAssignmentsResponse struct {
	GradeLevel int                  `json:"grade_level"`
	Students   []StudentAssignments `json:"students"`
}

// ── Teacher Reporting Types ───────────────────────────

type StudentPerformance struct {
	StudentID    int64      `json:"student_id"`
	Name         string     `json:"name"`
	GradeLevel   int        `json:"grade_level"`
	TotalPoints  int        `json:"total_points"`
	TotalQuizzes int        `json:"total_quizzes"`
	AvgAccuracy  float64    `json:"average_accuracy"`
	AvgMastery   float64    `json:"average_mastery"`
	BadgeCount   int        `json:"badge_count"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

type StudentPerformanceResponse struct {
	Students []StudentPerformance `json:"students"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

type StudentDetailResponse struct {
	Student        User             `json:"student"`
	Topics         []TopicProgress  `json:"topics"`
	RecentSessions []SessionSummary `json:"recent_sessions"`
	TotalPoints    int              `json:"total_points"`
	TotalQuizzes   int              `json:"total_quizzes"`
	AvgAccuracy    float64          `json:"average_accuracy"`
}

type ClassPerformance struct {
	GradeLevel      int     `json:"grade_level"`
	Students        int     `json:"students"`
	ActiveStudents  int     `json:"active_students"`
	QuizzesTaken    int     `json:"quizzes_taken"`
	AverageAccuracy float64 `json:"average_accuracy"`
	AverageMastery  float64 `json:"average_mastery"`
}
