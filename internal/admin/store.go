package admin

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spaysidokito/math-racers-1/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const userCols = `id, email, name, role, grade_level, is_active, created_at, updated_at`

// ── User Management ─────────────────────────────────────

func (s *Store) ListUsers(req models.UserListRequest) (*models.UserListResponse, error) {
	var clauses []string
	var args []interface{}
	paramIdx := 1

	if req.Role != nil {
		clauses = append(clauses, fmt.Sprintf("role = $%d", paramIdx))
		args = append(args, *req.Role)
		paramIdx++
	}
	if req.Search != "" {
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", paramIdx, paramIdx))
		args = append(args, "%"+req.Search+"%")
		paramIdx++
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT COUNT(*) FROM users %s`, where), args...,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM users %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
			userCols, where, paramIdx, paramIdx+1),
		append(args, req.PageSize, (req.Page-1)*req.PageSize)...,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.GradeLevel,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}

	return &models.UserListResponse{
		Users:    users,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *Store) UpdateRole(userID int64, role models.Role) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		fmt.Sprintf(`UPDATE users SET role = $1, updated_at = $2 WHERE id = $3 RETURNING %s`, userCols),
		role, time.Now(), userID,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.GradeLevel, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return &u, nil
}

func (s *Store) UpdateStatus(userID int64, active bool) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		fmt.Sprintf(`UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3 RETURNING %s`, userCols),
		active, time.Now(), userID,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.GradeLevel, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return &u, nil
}

// DeleteUser removes the user; sessions, answers, progress, and badges
// cascade via foreign keys.
func (s *Store) DeleteUser(userID int64) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ── Question Bank Stats ─────────────────────────────────

func (s *Store) QuestionBankStats() (*models.QuestionBankStats, error) {
	stats := &models.QuestionBankStats{
		ByType:       make(map[models.QuestionType]int),
		ByGrade:      make(map[int]int),
		ByDifficulty: make(map[models.Difficulty]int),
	}

	err := s.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&stats.TotalQuestions)
	if err != nil {
		return nil, fmt.Errorf("total questions: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT question_type, grade_level, difficulty, COUNT(*)
		 FROM questions GROUP BY question_type, grade_level, difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("question breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var qt models.QuestionType
		var grade int
		var diff models.Difficulty
		var count int
		if err := rows.Scan(&qt, &grade, &diff, &count); err != nil {
			return nil, err
		}
		stats.ByType[qt] += count
		stats.ByGrade[grade] += count
		stats.ByDifficulty[diff] += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	creatorRows, err := s.db.Query(
		`SELECT u.id, u.name, COUNT(*) AS questions
		 FROM questions q
		 JOIN users u ON u.id = q.created_by
		 GROUP BY u.id, u.name
		 ORDER BY questions DESC
		 LIMIT 10`,
	)
	if err != nil {
		return nil, fmt.Errorf("top creators: %w", err)
	}
	defer creatorRows.Close()

	for creatorRows.Next() {
		var c models.QuestionCreatorStat
		if err := creatorRows.Scan(&c.UserID, &c.Name, &c.Questions); err != nil {
			return nil, err
		}
		stats.TopCreators = append(stats.TopCreators, c)
	}
	return stats, creatorRows.Err()
}

// ── Bulk Delete ─────────────────────────────────────────

// BulkDeleteQuestions deletes the requested questions, skipping any
// with recorded answers. Counts come back so the admin sees what held.
func (s *Store) BulkDeleteQuestions(ids []int64) (*models.BulkDeleteResult, error) {
	result := &models.BulkDeleteResult{Requested: len(ids)}

	for _, id := range ids {
		var referenced bool
		err := s.db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM quiz_answers WHERE question_id = $1)`, id,
		).Scan(&referenced)
		if err != nil {
			return nil, fmt.Errorf("check question %d: %w", id, err)
		}
		if referenced {
			result.Skipped++
			continue
		}

		res, err := s.db.Exec(`DELETE FROM questions WHERE id = $1`, id)
		if err != nil {
			return nil, fmt.Errorf("delete question %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			result.Deleted++
		} else {
			result.Skipped++
		}
	}
	return result, nil
}

// ── Export ──────────────────────────────────────────────

func (s *Store) ExportQuestions() ([]models.ExportQuestion, error) {
	rows, err := s.db.Query(
		`SELECT question_text, question_type, grade_level, difficulty,
		        correct_answer, options, COALESCE(competency_tag, '')
		 FROM questions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("export questions: %w", err)
	}
	defer rows.Close()

	var exported []models.ExportQuestion
	for rows.Next() {
		var q models.ExportQuestion
		var options []byte
		if err := rows.Scan(&q.QuestionText, &q.QuestionType, &q.GradeLevel,
			&q.Difficulty, &q.CorrectAnswer, &options, &q.CompetencyTag); err != nil {
			return nil, fmt.Errorf("scan export question: %w", err)
		}
		if len(options) > 0 {
			if err := json.Unmarshal(options, &q.Options); err != nil {
				return nil, fmt.Errorf("decode options: %w", err)
			}
		}
		exported = append(exported, q)
	}
	return exported, rows.Err()
}

// ── System Activity Logs ────────────────────────────────

type UserActivity struct {
	StudentID    int64     `json:"student_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	QuizCount    int       `json:"quiz_count"`
	LastActivity time.Time `json:"last_activity"`
}

type QuizActivityStat struct {
	QuestionType  models.QuestionType `json:"question_type"`
	GradeLevel    int                 `json:"grade_level"`
	TotalAttempts int                 `json:"total_attempts"`
	AvgCorrect    float64             `json:"avg_correct"`
	AvgTime       float64             `json:"avg_time"`
}

type DailyActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type SystemLogs struct {
	Days          int                `json:"days"`
	UserActivity  []UserActivity     `json:"user_activity"`
	QuizStats     []QuizActivityStat `json:"quiz_stats"`
	DailyActivity []DailyActivity    `json:"daily_activity"`
	NewUsers      int                `json:"new_users"`
	QuizAttempts  int                `json:"quiz_attempts"`
	Completed     int                `json:"completed_quizzes"`
	NewQuestions  int                `json:"new_questions"`
}

// GetSystemLogs reports platform activity over the trailing window.
// Quiz sessions stand in for a login log: starting a quiz is the
// clearest signal a student was active.
func (s *Store) GetSystemLogs(days int) (*SystemLogs, error) {
	logs := &SystemLogs{Days: days}

	rows, err := s.db.Query(
		`SELECT qs.student_id, u.name, u.email, COUNT(*), MAX(qs.created_at)
		 FROM quiz_sessions qs
		 JOIN users u ON u.id = qs.student_id
		 WHERE qs.created_at >= NOW() - make_interval(days => $1)
		 GROUP BY qs.student_id, u.name, u.email
		 ORDER BY MAX(qs.created_at) DESC
		 LIMIT 50`,
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("user activity: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a UserActivity
		if err := rows.Scan(&a.StudentID, &a.Name, &a.Email, &a.QuizCount, &a.LastActivity); err != nil {
			return nil, fmt.Errorf("scan user activity: %w", err)
		}
		logs.UserActivity = append(logs.UserActivity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	statRows, err := s.db.Query(
		`SELECT question_type, grade_level, COUNT(*),
		        ROUND(AVG(correct_answers), 2), ROUND(AVG(time_taken), 2)
		 FROM quiz_sessions
		 WHERE created_at >= NOW() - make_interval(days => $1)
		 GROUP BY question_type, grade_level
		 ORDER BY question_type, grade_level`,
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("quiz stats: %w", err)
	}
	defer statRows.Close()

	for statRows.Next() {
		var st QuizActivityStat
		if err := statRows.Scan(&st.QuestionType, &st.GradeLevel, &st.TotalAttempts, &st.AvgCorrect, &st.AvgTime); err != nil {
			return nil, fmt.Errorf("scan quiz stats: %w", err)
		}
		logs.QuizStats = append(logs.QuizStats, st)
	}
	if err := statRows.Err(); err != nil {
		return nil, err
	}

	dailyRows, err := s.db.Query(
		`SELECT TO_CHAR(created_at::date, 'YYYY-MM-DD'), COUNT(*)
		 FROM quiz_sessions
		 WHERE created_at >= NOW() - make_interval(days => $1)
		 GROUP BY created_at::date
		 ORDER BY created_at::date`,
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("daily activity: %w", err)
	}
	defer dailyRows.Close()

	for dailyRows.Next() {
		var d DailyActivity
		if err := dailyRows.Scan(&d.Date, &d.Count); err != nil {
			return nil, fmt.Errorf("scan daily activity: %w", err)
		}
		logs.DailyActivity = append(logs.DailyActivity, d)
	}
	if err := dailyRows.Err(); err != nil {
		return nil, err
	}

	err = s.db.QueryRow(
		`SELECT
		    (SELECT COUNT(*) FROM users WHERE created_at >= NOW() - make_interval(days => $1)),
		    (SELECT COUNT(*) FROM quiz_sessions WHERE created_at >= NOW() - make_interval(days => $1)),
		    (SELECT COUNT(*) FROM quiz_sessions WHERE completed_at >= NOW() - make_interval(days => $1)),
		    (SELECT COUNT(*) FROM questions WHERE created_at >= NOW() - make_interval(days => $1))`,
		days,
	).Scan(&logs.NewUsers, &logs.QuizAttempts, &logs.Completed, &logs.NewQuestions)
	if err != nil {
		return nil, fmt.Errorf("period totals: %w", err)
	}

	return logs, nil
}

// ── Platform Stats ──────────────────────────────────────

type PlatformStats struct {
	TotalUsers        int `json:"total_users"`
	Students          int `json:"students"`
	Teachers          int `json:"teachers"`
	Admins            int `json:"admins"`
	ActiveUsers       int `json:"active_users"`
	TotalQuestions    int `json:"total_questions"`
	CompletedQuizzes  int `json:"completed_quizzes"`
	OpenQuizzes       int `json:"open_quizzes"`
	TotalPointsEarned int `json:"total_points_earned"`
}

func (s *Store) GetPlatformStats() (*PlatformStats, error) {
	stats := &PlatformStats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE role = 'student'),
		        COUNT(*) FILTER (WHERE role = 'teacher'),
		        COUNT(*) FILTER (WHERE role = 'admin'),
		        COUNT(*) FILTER (WHERE is_active)
		 FROM users`,
	).Scan(&stats.TotalUsers, &stats.Students, &stats.Teachers, &stats.Admins, &stats.ActiveUsers)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	err = s.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&stats.TotalQuestions)
	if err != nil {
		return nil, fmt.Errorf("question count: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*) FILTER (WHERE completed_at IS NOT NULL),
		        COUNT(*) FILTER (WHERE completed_at IS NULL),
		        COALESCE(SUM(points_earned) FILTER (WHERE completed_at IS NOT NULL), 0)
		 FROM quiz_sessions`,
	).Scan(&stats.CompletedQuizzes, &stats.OpenQuizzes, &stats.TotalPointsEarned)
	if err != nil {
		return nil, fmt.Errorf("quiz stats: %w", err)
	}

	return stats, nil
}
