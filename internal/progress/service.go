package progress

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/spaysidokito/math-racers-1/internal/models"
	"github.com/spaysidokito/math-racers-1/internal/quiz"
)

// leaderboardSize is how many ranked entries the leaderboard returns.
const leaderboardSize = 50

// ErrValidation wraps user-facing input problems; handlers map it to 400.
var ErrValidation = errors.New("invalid progress request")

type Service struct {
	store    *Store
	sessions *quiz.Store
}

func NewService(store *Store, sessions *quiz.Store) *Service {
	return &Service{store: store, sessions: sessions}
}

// ── Completion Fold ─────────────────────────────────────

// ApplyQuizResult folds one finalized session into the student's
// progress aggregate. It runs inside the completion transaction and is
// the only writer of student_progress; the caller guarantees it runs
// exactly once per completed session.
func (s *Service) ApplyQuizResult(tx *sql.Tx, sess *models.QuizSession) ([]string, error) {
	if sess.CompletedAt == nil {
		return nil, fmt.Errorf("session %d is not completed", sess.ID)
	}

	if err := s.store.EnsureRow(tx, sess.StudentID, sess.QuestionType, sess.GradeLevel); err != nil {
		return nil, err
	}

	mastery, err := s.store.AverageAccuracy(tx, sess.StudentID, sess.QuestionType, sess.GradeLevel)
	if err != nil {
		return nil, err
	}

	if err := s.store.ApplySession(tx, sess.StudentID, sess.QuestionType, sess.GradeLevel,
		sess.PointsEarned, mastery, *sess.CompletedAt); err != nil {
		return nil, err
	}

	totalQuizzes, totalPoints, err := s.store.StudentTotals(tx, sess.StudentID)
	if err != nil {
		return nil, err
	}

	snap := Snapshot{
		TotalQuizzes: totalQuizzes,
		TotalPoints:  totalPoints,
		TopicMastery: mastery,
		PerfectQuiz:  sess.TotalQuestions > 0 && sess.CorrectAnswers == sess.TotalQuestions,
		SpeedRacer:   quiz.TimeBonus(sess.TotalQuestions, sess.TimeTaken) == 25,
	}

	existing, err := s.store.EarnedBadges(tx, sess.StudentID, sess.QuestionType, sess.GradeLevel)
	if err != nil {
		return nil, err
	}

	var newBadges []string
	for _, badge := range CheckBadges(snap) {
		if !existing[badge] {
			newBadges = append(newBadges, badge)
		}
	}

	if err := s.store.AwardBadges(tx, sess.StudentID, sess.QuestionType, sess.GradeLevel, newBadges); err != nil {
		return nil, err
	}

	return newBadges, nil
}

// ── Student Views ───────────────────────────────────────

func (s *Service) StudentProgress(studentID int64) (*models.ProgressResponse, error) {
	student, err := s.store.GetStudent(studentID)
	if err != nil {
		return nil, err
	}

	topics, err := s.store.TopicProgress(studentID)
	if err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []models.TopicProgress{}
	}

	allBadges, err := s.store.AllBadges(studentID)
	if err != nil {
		return nil, err
	}
	if allBadges == nil {
		allBadges = []string{}
	}

	recent, err := s.sessions.RecentSessions(studentID, 5)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []models.SessionSummary{}
	}

	resp := &models.ProgressResponse{
		TotalBadges:    len(allBadges),
		AllBadges:      allBadges,
		Topics:         topics,
		RecentSessions: recent,
	}
	if student.GradeLevel != nil {
		resp.GradeLevel = *student.GradeLevel
	}

	resp.TotalPoints, resp.TotalQuizzes, resp.AvgAccuracy = topicTotals(topics)
	return resp, nil
}

func (s *Service) Leaderboard(grade int, topic *models.QuestionType, currentUserID int64) (*models.LeaderboardResponse, error) {
	entries, err := s.store.Leaderboard(grade, topic, leaderboardSize, currentUserID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}

	resp := &models.LeaderboardResponse{
		GradeLevel: grade,
		Topic:      "overall",
		Entries:    entries,
	}
	if topic != nil {
		resp.Topic = string(*topic)
	}
	for _, e := range entries {
		if e.IsCurrentUser {
			resp.CurrentUserRank = e.Rank
			break
		}
	}
	return resp, nil
}

// ── Topic Assignments ───────────────────────────────────

// AssignTopics creates progress rows for the students so the assigned
// topics appear in their progress views before their first quiz.
func (s *Service) AssignTopics(req models.AssignTopicsRequest) error {
	if len(req.StudentIDs) == 0 {
		return fmt.Errorf("%w: student_ids is required", ErrValidation)
	}
	if len(req.Topics) == 0 {
		return fmt.Errorf("%w: topics is required", ErrValidation)
	}
	if !models.ValidGrades[req.GradeLevel] {
		return fmt.Errorf("%w: grade level must be between 1 and 3", ErrValidation)
	}
	for _, topic := range req.Topics {
		if !models.GradeHasTopic(req.GradeLevel, topic) {
			return fmt.Errorf("%w: topic %q is not available at grade %d", ErrValidation, topic, req.GradeLevel)
		}
	}
	return s.store.AssignTopics(req.StudentIDs, req.Topics, req.GradeLevel)
}

func (s *Service) TopicAssignments(grade int) (*models.TopicAssignmentsResponse, error) {
	students, err := s.store.AssignmentsByGrade(grade)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []models.StudentAssignments{}
	}
	return &models.TopicAssignmentsResponse{GradeLevel: grade, Students: students}, nil
}

// ── Teacher Reporting ───────────────────────────────────

func (s *Service) StudentPerformance(grade *int, page, pageSize int) (*models.StudentPerformanceResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 25
	}
	return s.store.StudentPerformance(grade, page, pageSize)
}

func (s *Service) StudentDetail(studentID int64) (*models.StudentDetailResponse, error) {
	student, err := s.store.GetStudent(studentID)
	if err != nil {
		return nil, err
	}

	topics, err := s.store.TopicProgress(studentID)
	if err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []models.TopicProgress{}
	}

	recent, err := s.sessions.RecentSessions(studentID, 10)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []models.SessionSummary{}
	}

	resp := &models.StudentDetailResponse{
		Student:        *student,
		Topics:         topics,
		RecentSessions: recent,
	}
	resp.TotalPoints, resp.TotalQuizzes, resp.AvgAccuracy = topicTotals(topics)
	return resp, nil
}

// topicTotals folds the per-(topic, grade) rows into overall counters.
// Each grade of a topic is its own row and counts separately.
func topicTotals(topics []models.TopicProgress) (points, quizzes int, avgAccuracy float64) {
	var accuracySum float64
	for _, t := range topics {
		points += t.TotalPoints
		quizzes += t.TotalQuizzes
		accuracySum += t.AverageAccuracy
	}
	if len(topics) > 0 {
		avgAccuracy = round2(accuracySum / float64(len(topics)))
	}
	return points, quizzes, avgAccuracy
}

func (s *Service) ClassPerformance(grade int) (*models.ClassPerformance, error) {
	return s.store.ClassPerformance(grade)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
