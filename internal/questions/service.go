package questions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spaysidokito/math-racers-1/internal/models"
)

// ErrValidation wraps user-facing input problems; handlers map it to 400.
var ErrValidation = errors.New("invalid question")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(req models.CreateQuestionRequest, createdBy int64) (*models.Question, error) {
	if err := validateQuestion(&req); err != nil {
		return nil, err
	}
	return s.store.Create(req, createdBy)
}

func (s *Service) Get(id int64) (*models.Question, error) {
	return s.store.Get(id)
}

func (s *Service) List(req models.QuestionListRequest) (*models.QuestionListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}
	return s.store.List(req)
}

func (s *Service) Update(id int64, req models.CreateQuestionRequest) (*models.Question, error) {
	if err := validateQuestion(&req); err != nil {
		return nil, err
	}
	return s.store.Update(id, req)
}

func (s *Service) Delete(id int64) error {
	return s.store.Delete(id)
}

func validateQuestion(req *models.CreateQuestionRequest) error {
	req.QuestionText = strings.TrimSpace(req.QuestionText)
	req.CorrectAnswer = strings.TrimSpace(req.CorrectAnswer)

	if req.QuestionText == "" {
		return fmt.Errorf("%w: question text is required", ErrValidation)
	}
	if !models.ValidQuestionTypes[req.QuestionType] {
		return fmt.Errorf("%w: unknown question type %q", ErrValidation, req.QuestionType)
	}
	if !models.ValidGrades[req.GradeLevel] {
		return fmt.Errorf("%w: grade level must be between 1 and 3", ErrValidation)
	}
	if !models.ValidDifficulties[req.Difficulty] {
		return fmt.Errorf("%w: unknown difficulty %q", ErrValidation, req.Difficulty)
	}
	if req.CorrectAnswer == "" {
		return fmt.Errorf("%w: correct answer is required", ErrValidation)
	}
	if len(req.Options) > 4 {
		return fmt.Errorf("%w: at most 4 options are allowed", ErrValidation)
	}
	return nil
}
