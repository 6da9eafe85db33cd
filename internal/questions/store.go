package questions

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/spaysidokito/math-racers-1/internal/models"
)

var (
	ErrNotFound = errors.New("question not found")

	// ErrQuestionInUse blocks deletion while quiz answers reference the
	// question; deleting would orphan recorded history.
	ErrQuestionInUse = errors.New("question has recorded answers")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const questionCols = `id, question_text, question_type, grade_level, difficulty,
	correct_answer, options, COALESCE(competency_tag, ''), COALESCE(created_by, 0),
	created_at, updated_at`

// ── Question Bank CRUD ──────────────────────────────────

func (s *Store) Create(req models.CreateQuestionRequest, createdBy int64) (*models.Question, error) {
	options, err := marshalOptions(req.Options)
	if err != nil {
		return nil, err
	}

	var q models.Question
	err = s.db.QueryRow(
		fmt.Sprintf(`INSERT INTO questions
		 (question_text, question_type, grade_level, difficulty, correct_answer, options, competency_tag, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING %s`, questionCols),
		req.QuestionText, req.QuestionType, req.GradeLevel, req.Difficulty,
		req.CorrectAnswer, options, req.CompetencyTag, createdBy,
	).Scan(scanTargets(&q)...)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return &q, nil
}

func (s *Store) Get(id int64) (*models.Question, error) {
	var q models.Question
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM questions WHERE id = $1`, questionCols),
		id,
	).Scan(scanTargets(&q)...)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	return &q, nil
}

func (s *Store) List(req models.QuestionListRequest) (*models.QuestionListResponse, error) {
	var clauses []string
	var args []interface{}
	paramIdx := 1

	addClause := func(clause string, value interface{}) {
		clauses = append(clauses, fmt.Sprintf(clause, paramIdx))
		args = append(args, value)
		paramIdx++
	}

	if req.QuestionType != nil {
		addClause("question_type = $%d", *req.QuestionType)
	}
	if req.GradeLevel != nil {
		addClause("grade_level = $%d", *req.GradeLevel)
	}
	if req.Difficulty != nil {
		addClause("difficulty = $%d", *req.Difficulty)
	}
	if req.Search != "" {
		addClause("question_text ILIKE $%d", "%"+req.Search+"%")
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT COUNT(*) FROM questions %s`, where), args...,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	offset := (req.Page - 1) * req.PageSize
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM questions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
			questionCols, where, paramIdx, paramIdx+1),
		append(args, req.PageSize, offset)...,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}

	return &models.QuestionListResponse{
		Questions: questions,
		Total:     total,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}, nil
}

func (s *Store) Update(id int64, req models.CreateQuestionRequest) (*models.Question, error) {
	options, err := marshalOptions(req.Options)
	if err != nil {
		return nil, err
	}

	var q models.Question
	err = s.db.QueryRow(
		fmt.Sprintf(`UPDATE questions
		 SET question_text = $1, question_type = $2, grade_level = $3, difficulty = $4,
		     correct_answer = $5, options = $6, competency_tag = $7, updated_at = NOW()
		 WHERE id = $8
		 RETURNING %s`, questionCols),
		req.QuestionText, req.QuestionType, req.GradeLevel, req.Difficulty,
		req.CorrectAnswer, options, req.CompetencyTag, id,
	).Scan(scanTargets(&q)...)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	return &q, nil
}

func (s *Store) Delete(id int64) error {
	var referenced bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM quiz_answers WHERE question_id = $1)`, id,
	).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("check question references: %w", err)
	}
	if referenced {
		return ErrQuestionInUse
	}

	res, err := s.db.Exec(`DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ── Serving Questions to Students ───────────────────────

// SamplePool draws up to limit questions at random, without replacement,
// from the pool matching (grade, topic, difficulty).
func (s *Store) SamplePool(grade int, topic models.QuestionType, difficulty models.Difficulty, limit int) ([]models.Question, error) {
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM questions
		 WHERE grade_level = $1 AND question_type = $2 AND difficulty = $3
		 ORDER BY RANDOM() LIMIT $4`, questionCols),
		grade, topic, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sample question pool: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// GetByIDs fetches questions and returns them in the order of ids.
func (s *Store) GetByIDs(ids []int64) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM questions WHERE id = ANY($1)`, questionCols),
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("get questions by ids: %w", err)
	}
	defer rows.Close()

	fetched, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Question, len(fetched))
	for _, q := range fetched {
		byID[q.ID] = q
	}

	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

// ── Scan Helpers ────────────────────────────────────────

func scanTargets(q *models.Question) []interface{} {
	return []interface{}{
		&q.ID, &q.QuestionText, &q.QuestionType, &q.GradeLevel, &q.Difficulty,
		&q.CorrectAnswer, (*optionsJSON)(&q.Options), &q.CompetencyTag, &q.CreatedBy,
		&q.CreatedAt, &q.UpdatedAt,
	}
}

func scanQuestions(rows *sql.Rows) ([]models.Question, error) {
	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(scanTargets(&q)...); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// optionsJSON maps the nullable JSONB options column onto []string.
type optionsJSON []string

func (o *optionsJSON) Scan(src interface{}) error {
	if src == nil {
		*o = nil
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unexpected options column type %T", src)
	}
	return json.Unmarshal(raw, (*[]string)(o))
}

func marshalOptions(options []string) (interface{}, error) {
	if len(options) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}
	return raw, nil
}
