package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/spaysidokito/math-racers-1/internal/models"
	"github.com/spaysidokito/math-racers-1/internal/questions"
)

// ErrValidation wraps user-facing input problems; handlers map it to 400.
var ErrValidation = errors.New("invalid generation request")

const (
	defaultBatchSize = 5
	maxBatchSize     = 20
)

type Service struct {
	generator *Generator
	questions *questions.Store
}

func NewService(generator *Generator, questionStore *questions.Store) *Service {
	return &Service{generator: generator, questions: questionStore}
}

// GenerateAndSave produces a batch of word problems, keeps only the ones
// whose arithmetic checks out, and saves those to the question bank
// attributed to the requesting teacher.
func (s *Service) GenerateAndSave(ctx context.Context, req models.GenerateQuestionsRequest, createdBy int64) (*models.GenerateQuestionsResponse, error) {
	if !models.ValidQuestionTypes[req.Topic] {
		return nil, fmt.Errorf("%w: unknown topic %q", ErrValidation, req.Topic)
	}
	if !models.ValidGrades[req.GradeLevel] {
		return nil, fmt.Errorf("%w: grade level must be between 1 and 3", ErrValidation)
	}
	if !models.GradeHasTopic(req.GradeLevel, req.Topic) {
		return nil, fmt.Errorf("%w: topic %q is not taught at grade %d", ErrValidation, req.Topic, req.GradeLevel)
	}
	if !models.ValidDifficulties[req.Difficulty] {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrValidation, req.Difficulty)
	}
	if req.Count <= 0 {
		req.Count = defaultBatchSize
	}
	if req.Count > maxBatchSize {
		return nil, fmt.Errorf("%w: at most %d questions per batch", ErrValidation, maxBatchSize)
	}

	batch, llmResp, err := s.generator.GenerateBatch(ctx, req.Topic, req.GradeLevel, req.Difficulty, req.Count)
	if err != nil {
		return nil, err
	}
	if llmResp != nil {
		log.Printf("[generator] batch for %s/grade %d/%s: %d questions, %d prompt + %d output tokens",
			req.Topic, req.GradeLevel, req.Difficulty, len(batch.Questions),
			llmResp.PromptTokens, llmResp.OutputTokens)
	}

	resp := &models.GenerateQuestionsResponse{
		Requested: req.Count,
		Generated: len(batch.Questions),
		ModelUsed: s.generator.ModelName(),
		Saved:     []models.Question{},
	}

	for i := range batch.Questions {
		gq := &batch.Questions[i]
		if err := ValidateArithmetic(gq, req.Topic); err != nil {
			log.Printf("[generator] rejected question %d: %v", i+1, err)
			resp.Rejected++
			continue
		}

		saved, err := s.questions.Create(models.CreateQuestionRequest{
			QuestionText:  gq.QuestionText,
			QuestionType:  req.Topic,
			GradeLevel:    req.GradeLevel,
			Difficulty:    req.Difficulty,
			CorrectAnswer: strconv.Itoa(gq.Answer),
			CompetencyTag: gq.CompetencyTag,
		}, createdBy)
		if err != nil {
			return nil, fmt.Errorf("save generated question: %w", err)
		}
		resp.Saved = append(resp.Saved, *saved)
	}

	return resp, nil
}
