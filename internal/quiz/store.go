package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/spaysidokito/math-racers-1/internal/models"
)

var (
	// ErrNoQuestionsAvailable means the (grade, topic, difficulty) pool is
	// empty. Retryable: the student picks another combination.
	ErrNoQuestionsAvailable = errors.New("no questions available for this combination")

	// ErrInvalidSession covers sessions that are missing, owned by someone
	// else, or already completed.
	ErrInvalidSession = errors.New("invalid quiz session")

	// ErrUnknownQuestion means the question id is not in the session's
	// fixed question set.
	ErrUnknownQuestion = errors.New("question does not belong to this session")

	// ErrDuplicateAnswer means the question was already answered in this
	// session. Each question is judged once, so correct_answers can
	// never exceed total_questions.
	ErrDuplicateAnswer = errors.New("question already answered in this session")
)

// ProgressFolder folds a completed session into the student's progress
// aggregate. It runs inside the completion transaction.
type ProgressFolder interface {
	ApplyQuizResult(tx *sql.Tx, session *models.QuizSession) ([]string, error)
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const sessionCols = `id, student_id, question_type, grade_level, difficulty,
	total_questions, question_ids, correct_answers, points_earned, time_taken,
	created_at, completed_at`

// ── Session Lifecycle ───────────────────────────────────

func (s *Store) CreateSession(studentID int64, grade int, topic models.QuestionType, difficulty models.Difficulty, questionIDs []int64) (*models.QuizSession, error) {
	var sess models.QuizSession
	err := s.db.QueryRow(
		fmt.Sprintf(`INSERT INTO quiz_sessions
		 (student_id, question_type, grade_level, difficulty, total_questions, question_ids)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING %s`, sessionCols),
		studentID, topic, grade, difficulty, len(questionIDs), pq.Array(questionIDs),
	).Scan(sessionScanTargets(&sess)...)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &sess, nil
}

// GetOwnedOpenSession is the single ownership guard: it returns the
// session only if it exists, belongs to the student, and is still open.
func (s *Store) GetOwnedOpenSession(sessionID, studentID int64) (*models.QuizSession, error) {
	var sess models.QuizSession
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM quiz_sessions
		 WHERE id = $1 AND student_id = $2 AND completed_at IS NULL`, sessionCols),
		sessionID, studentID,
	).Scan(sessionScanTargets(&sess)...)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

// RecordAnswer appends the answer row and, when correct, bumps the
// session's running counter. Both land or neither does. A question
// already present in quiz_answers for this session is rejected, so the
// counter stays bounded by total_questions.
func (s *Store) RecordAnswer(sessionID, questionID int64, answer string, correct bool, timeTaken int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO quiz_answers (session_id, question_id, answer, is_correct, time_taken)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (session_id, question_id) DO NOTHING`,
		sessionID, questionID, answer, correct, timeTaken,
	)
	if err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDuplicateAnswer
	}

	if correct {
		_, err = tx.Exec(
			`UPDATE quiz_sessions
			 SET correct_answers = correct_answers + 1, updated_at = NOW()
			 WHERE id = $1`,
			sessionID,
		)
		if err != nil {
			return fmt.Errorf("increment correct answers: %w", err)
		}
	}

	return tx.Commit()
}

// CompleteSession finalizes a session as a single transaction: lock the
// open row, freeze the score, mark completion, and fold progress. A
// session already completed (or not owned) yields ErrInvalidSession, so
// re-completion can never double-apply points or badges.
func (s *Store) CompleteSession(ctx context.Context, sessionID, studentID int64, totalTime int, progress ProgressFolder) (*models.QuizSession, []string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var sess models.QuizSession
	err = tx.QueryRow(
		fmt.Sprintf(`SELECT %s FROM quiz_sessions
		 WHERE id = $1 AND student_id = $2 AND completed_at IS NULL
		 FOR UPDATE`, sessionCols),
		sessionID, studentID,
	).Scan(sessionScanTargets(&sess)...)
	if err == sql.ErrNoRows {
		return nil, nil, ErrInvalidSession
	}
	if err != nil {
		return nil, nil, fmt.Errorf("lock session: %w", err)
	}

	sess.TimeTaken = totalTime
	sess.PointsEarned = Score(sess.CorrectAnswers, sess.TotalQuestions, sess.Difficulty, totalTime)
	completedAt := time.Now()
	sess.CompletedAt = &completedAt

	_, err = tx.Exec(
		`UPDATE quiz_sessions
		 SET time_taken = $1, points_earned = $2, completed_at = $3, updated_at = NOW()
		 WHERE id = $4`,
		totalTime, sess.PointsEarned, completedAt, sessionID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("finalize session: %w", err)
	}

	newBadges, err := progress.ApplyQuizResult(tx, &sess)
	if err != nil {
		return nil, nil, fmt.Errorf("fold progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit completion: %w", err)
	}
	return &sess, newBadges, nil
}

// ── Session History ─────────────────────────────────────

func (s *Store) RecentSessions(studentID int64, limit int) ([]models.SessionSummary, error) {
	rows, err := s.db.Query(
		`SELECT id, question_type, grade_level, difficulty, points_earned,
		        correct_answers, total_questions, time_taken, completed_at
		 FROM quiz_sessions
		 WHERE student_id = $1 AND completed_at IS NOT NULL
		 ORDER BY completed_at DESC
		 LIMIT $2`,
		studentID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	defer rows.Close()

	var summaries []models.SessionSummary
	for rows.Next() {
		var s models.SessionSummary
		if err := rows.Scan(&s.SessionID, &s.Topic, &s.GradeLevel, &s.Difficulty,
			&s.PointsEarned, &s.CorrectAnswers, &s.TotalQuestions, &s.TimeTaken, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		s.Accuracy = Accuracy(s.CorrectAnswers, s.TotalQuestions)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func sessionScanTargets(s *models.QuizSession) []interface{} {
	return []interface{}{
		&s.ID, &s.StudentID, &s.QuestionType, &s.GradeLevel, &s.Difficulty,
		&s.TotalQuestions, pq.Array(&s.QuestionIDs), &s.CorrectAnswers,
		&s.PointsEarned, &s.TimeTaken, &s.CreatedAt, &s.CompletedAt,
	}
}
