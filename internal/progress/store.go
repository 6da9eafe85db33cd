package progress

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/spaysidokito/math-racers-1/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Completion-Transaction Writers ──────────────────────
//
// These run inside the quiz completion transaction and are the only
// writers of student_progress and progress_badges.

func (s *Store) EnsureRow(tx *sql.Tx, studentID int64, topic models.QuestionType, grade int) error {
	_, err := tx.Exec(
		`INSERT INTO student_progress (student_id, question_type, grade_level)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (student_id, question_type, grade_level) DO NOTHING`,
		studentID, topic, grade,
	)
	if err != nil {
		return fmt.Errorf("ensure progress row: %w", err)
	}
	return nil
}

// AverageAccuracy computes mastery for a key: the mean of per-session
// derived accuracy across all completed sessions, including the one
// being finalized in this transaction.
func (s *Store) AverageAccuracy(tx *sql.Tx, studentID int64, topic models.QuestionType, grade int) (float64, error) {
	var avg float64
	err := tx.QueryRow(
		`SELECT COALESCE(ROUND(AVG(
		          ROUND(correct_answers::numeric / NULLIF(total_questions, 0) * 100, 2)
		        ), 2), 0)
		 FROM quiz_sessions
		 WHERE student_id = $1 AND question_type = $2 AND grade_level = $3
		   AND completed_at IS NOT NULL`,
		studentID, topic, grade,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average accuracy: %w", err)
	}
	return avg, nil
}

func (s *Store) ApplySession(tx *sql.Tx, studentID int64, topic models.QuestionType, grade, points int, mastery float64, completedAt time.Time) error {
	_, err := tx.Exec(
		`UPDATE student_progress
		 SET total_quizzes = total_quizzes + 1,
		     total_points = total_points + $1,
		     mastery_percentage = $2,
		     best_score = GREATEST(best_score, $1),
		     last_quiz_at = $3,
		     updated_at = NOW()
		 WHERE student_id = $4 AND question_type = $5 AND grade_level = $6`,
		points, mastery, completedAt, studentID, topic, grade,
	)
	if err != nil {
		return fmt.Errorf("apply session to progress: %w", err)
	}
	return nil
}

// StudentTotals returns completed-quiz and lifetime-point counts across
// all topics, read inside the transaction so the just-finalized session
// is included.
func (s *Store) StudentTotals(tx *sql.Tx, studentID int64) (quizzes, points int, err error) {
	err = tx.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(points_earned), 0)
		 FROM quiz_sessions
		 WHERE student_id = $1 AND completed_at IS NOT NULL`,
		studentID,
	).Scan(&quizzes, &points)
	if err != nil {
		return 0, 0, fmt.Errorf("student totals: %w", err)
	}
	return quizzes, points, nil
}

func (s *Store) EarnedBadges(tx *sql.Tx, studentID int64, topic models.QuestionType, grade int) (map[string]bool, error) {
	rows, err := tx.Query(
		`SELECT badge FROM progress_badges
		 WHERE student_id = $1 AND question_type = $2 AND grade_level = $3`,
		studentID, topic, grade,
	)
	if err != nil {
		return nil, fmt.Errorf("earned badges: %w", err)
	}
	defer rows.Close()

	earned := make(map[string]bool)
	for rows.Next() {
		var badge string
		if err := rows.Scan(&badge); err != nil {
			return nil, err
		}
		earned[badge] = true
	}
	return earned, rows.Err()
}

func (s *Store) AwardBadges(tx *sql.Tx, studentID int64, topic models.QuestionType, grade int, badges []string) error {
	for _, badge := range badges {
		_, err := tx.Exec(
			`INSERT INTO progress_badges (student_id, question_type, grade_level, badge)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (student_id, question_type, grade_level, badge) DO NOTHING`,
			studentID, topic, grade, badge,
		)
		if err != nil {
			return fmt.Errorf("award badge %s: %w", badge, err)
		}
	}
	return nil
}

// ── Progress Views ──────────────────────────────────────

func (s *Store) TopicProgress(studentID int64) ([]models.TopicProgress, error) {
	rows, err := s.db.Query(
		`SELECT p.question_type, p.grade_level, p.total_points, p.mastery_percentage,
		        p.total_quizzes, p.best_score, p.last_quiz_at,
		        COALESCE(ARRAY_AGG(b.badge ORDER BY b.badge) FILTER (WHERE b.badge IS NOT NULL), '{}')
		 FROM student_progress p
		 LEFT JOIN progress_badges b
		   ON b.student_id = p.student_id
		  AND b.question_type = p.question_type
		  AND b.grade_level = p.grade_level
		 WHERE p.student_id = $1
		 GROUP BY p.question_type, p.grade_level, p.total_points, p.mastery_percentage,
		          p.total_quizzes, p.best_score, p.last_quiz_at
		 ORDER BY p.grade_level, p.question_type`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("topic progress: %w", err)
	}
	defer rows.Close()

	var topics []models.TopicProgress
	for rows.Next() {
		var t models.TopicProgress
		if err := rows.Scan(&t.Topic, &t.GradeLevel, &t.TotalPoints, &t.MasteryPercentage,
			&t.TotalQuizzes, &t.BestScore, &t.LastActivity, pq.Array(&t.BadgesEarned)); err != nil {
			return nil, fmt.Errorf("scan topic progress: %w", err)
		}
		t.MasteryCategory = MasteryCategory(t.MasteryPercentage)
		t.AverageAccuracy = t.MasteryPercentage
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (s *Store) AllBadges(studentID int64) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT badge FROM progress_badges WHERE student_id = $1 ORDER BY badge`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("all badges: %w", err)
	}
	defer rows.Close()

	var badges []string
	for rows.Next() {
		var badge string
		if err := rows.Scan(&badge); err != nil {
			return nil, err
		}
		badges = append(badges, badge)
	}
	return badges, rows.Err()
}

// ── Leaderboards ────────────────────────────────────────

// Leaderboard ranks active students at a grade by points, optionally
// within one topic. The current user's row is always included so their
// rank shows even when they fall outside the top slice.
func (s *Store) Leaderboard(grade int, topic *models.QuestionType, limit int, currentUserID int64) ([]models.LeaderboardEntry, error) {
	args := []interface{}{grade, currentUserID, limit}
	topicFilter := ""
	if topic != nil {
		topicFilter = "AND p.question_type = $4"
		args = append(args, *topic)
	}

	rows, err := s.db.Query(
		fmt.Sprintf(`WITH ranked AS (
		    SELECT u.id AS student_id, u.name,
		           COALESCE(SUM(p.total_points), 0) AS points,
		           ROUND(COALESCE(AVG(p.mastery_percentage), 0), 2) AS mastery,
		           (SELECT COUNT(DISTINCT badge) FROM progress_badges WHERE student_id = u.id) AS badge_count,
		           ROW_NUMBER() OVER (ORDER BY COALESCE(SUM(p.total_points), 0) DESC, u.id) AS rank
		    FROM users u
		    JOIN student_progress p ON p.student_id = u.id AND p.grade_level = $1 %s
		    WHERE u.role = 'student' AND u.is_active
		    GROUP BY u.id, u.name
		)
		SELECT student_id, name, points, mastery, badge_count, rank
		FROM ranked
		WHERE rank <= $3 OR student_id = $2
		ORDER BY rank`, topicFilter),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.StudentID, &e.Name, &e.Points, &e.MasteryLevel, &e.BadgeCount, &e.Rank); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.IsCurrentUser = e.StudentID == currentUserID
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ── Topic Assignments ───────────────────────────────────

// AssignTopics seeds a progress row per (student, topic) pair at the
// grade. Existing rows keep their accumulated stats.
func (s *Store) AssignTopics(studentIDs []int64, topics []models.QuestionType, grade int) error {
	for _, studentID := range studentIDs {
		for _, topic := range topics {
			_, err := s.db.Exec(
				`INSERT INTO student_progress (student_id, question_type, grade_level)
				 VALUES ($1, $2, $3)
				 ON CONFLICT (student_id, question_type, grade_level) DO NOTHING`,
				studentID, topic, grade,
			)
			if err != nil {
				return fmt.Errorf("assign topic %s to student %d: %w", topic, studentID, err)
			}
		}
	}
	return nil
}

// AssignmentsByGrade lists every active student at the grade with the
// topics they have progress rows for, assigned or earned by quizzing.
func (s *Store) AssignmentsByGrade(grade int) ([]models.StudentAssignments, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.name,
		        COALESCE(ARRAY_AGG(p.question_type ORDER BY p.question_type)
		                 FILTER (WHERE p.question_type IS NOT NULL), '{}')
		 FROM users u
		 LEFT JOIN student_progress p ON p.student_id = u.id AND p.grade_level = $1
		 WHERE u.role = 'student' AND u.is_active AND u.grade_level = $1
		 GROUP BY u.id, u.name
		 ORDER BY u.name`,
		grade,
	)
	if err != nil {
		return nil, fmt.Errorf("assignments by grade: %w", err)
	}
	defer rows.Close()

	var students []models.StudentAssignments
	for rows.Next() {
		var sa models.StudentAssignments
		var topics []string
		if err := rows.Scan(&sa.StudentID, &sa.Name, pq.Array(&topics)); err != nil {
			return nil, fmt.Errorf("scan assignments: %w", err)
		}
		sa.Topics = make([]models.QuestionType, len(topics))
		for i, t := range topics {
			sa.Topics[i] = models.QuestionType(t)
		}
		students = append(students, sa)
	}
	return students, rows.Err()
}

// ── Teacher Reporting ───────────────────────────────────

func (s *Store) StudentPerformance(grade *int, page, pageSize int) (*models.StudentPerformanceResponse, error) {
	args := []interface{}{}
	gradeFilter := ""
	paramIdx := 1
	if grade != nil {
		gradeFilter = fmt.Sprintf("AND u.grade_level = $%d", paramIdx)
		args = append(args, *grade)
		paramIdx++
	}

	var total int
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT COUNT(*) FROM users u WHERE u.role = 'student' AND u.is_active %s`, gradeFilter),
		args...,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}

	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT u.id, u.name, COALESCE(u.grade_level, 0),
		        COALESCE(sess.total_points, 0), COALESCE(sess.total_quizzes, 0),
		        COALESCE(sess.avg_accuracy, 0),
		        COALESCE(prog.avg_mastery, 0),
		        COALESCE(bc.badge_count, 0),
		        sess.last_activity
		 FROM users u
		 LEFT JOIN (
		     SELECT student_id,
		            SUM(points_earned) AS total_points,
		            COUNT(*) AS total_quizzes,
		            ROUND(AVG(ROUND(correct_answers::numeric / NULLIF(total_questions, 0) * 100, 2)), 2) AS avg_accuracy,
		            MAX(completed_at) AS last_activity
		     FROM quiz_sessions WHERE completed_at IS NOT NULL
		     GROUP BY student_id
		 ) sess ON sess.student_id = u.id
		 LEFT JOIN (
		     SELECT student_id, ROUND(AVG(mastery_percentage), 2) AS avg_mastery
		     FROM student_progress GROUP BY student_id
		 ) prog ON prog.student_id = u.id
		 LEFT JOIN (
		     SELECT student_id, COUNT(DISTINCT badge) AS badge_count
		     FROM progress_badges GROUP BY student_id
		 ) bc ON bc.student_id = u.id
		 WHERE u.role = 'student' AND u.is_active %s
		 ORDER BY COALESCE(sess.total_points, 0) DESC, u.id
		 LIMIT $%d OFFSET $%d`, gradeFilter, paramIdx, paramIdx+1),
		append(args, pageSize, (page-1)*pageSize)...,
	)
	if err != nil {
		return nil, fmt.Errorf("student performance: %w", err)
	}
	defer rows.Close()

	var students []models.StudentPerformance
	for rows.Next() {
		var p models.StudentPerformance
		if err := rows.Scan(&p.StudentID, &p.Name, &p.GradeLevel, &p.TotalPoints,
			&p.TotalQuizzes, &p.AvgAccuracy, &p.AvgMastery, &p.BadgeCount, &p.LastActivity); err != nil {
			return nil, fmt.Errorf("scan student performance: %w", err)
		}
		students = append(students, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.StudentPerformanceResponse{
		Students: students,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *Store) GetStudent(studentID int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		`SELECT id, email, name, role, grade_level, is_active, created_at, updated_at
		 FROM users WHERE id = $1 AND role = 'student'`,
		studentID,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.GradeLevel, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &u, nil
}

func (s *Store) ClassPerformance(grade int) (*models.ClassPerformance, error) {
	var cp models.ClassPerformance
	cp.GradeLevel = grade

	err := s.db.QueryRow(
		`SELECT
		    COUNT(*),
		    COUNT(*) FILTER (WHERE EXISTS (
		        SELECT 1 FROM quiz_sessions qs
		        WHERE qs.student_id = u.id AND qs.completed_at >= NOW() - INTERVAL '30 days'
		    ))
		 FROM users u
		 WHERE u.role = 'student' AND u.is_active AND u.grade_level = $1`,
		grade,
	).Scan(&cp.Students, &cp.ActiveStudents)
	if err != nil {
		return nil, fmt.Errorf("class headcount: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(ROUND(AVG(ROUND(qs.correct_answers::numeric / NULLIF(qs.total_questions, 0) * 100, 2)), 2), 0)
		 FROM quiz_sessions qs
		 JOIN users u ON u.id = qs.student_id
		 WHERE u.role = 'student' AND u.grade_level = $1 AND qs.completed_at IS NOT NULL`,
		grade,
	).Scan(&cp.QuizzesTaken, &cp.AverageAccuracy)
	if err != nil {
		return nil, fmt.Errorf("class quiz stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COALESCE(ROUND(AVG(p.mastery_percentage), 2), 0)
		 FROM student_progress p
		 JOIN users u ON u.id = p.student_id
		 WHERE u.role = 'student' AND u.grade_level = $1`,
		grade,
	).Scan(&cp.AverageMastery)
	if err != nil {
		return nil, fmt.Errorf("class mastery: %w", err)
	}

	return &cp, nil
}
