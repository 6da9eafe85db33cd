package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/spaysidokito/math-racers-1/internal/models"
	"github.com/spaysidokito/math-racers-1/internal/questions"
)

// questionsPerQuiz caps how many questions a session samples from the pool.
const questionsPerQuiz = 10

// ErrValidation wraps user-facing input problems; handlers map it to 400.
var ErrValidation = errors.New("invalid quiz request")

// SessionStore is the session persistence surface the service needs.
// *Store satisfies it.
type SessionStore interface {
	CreateSession(studentID int64, grade int, topic models.QuestionType, difficulty models.Difficulty, questionIDs []int64) (*models.QuizSession, error)
	GetOwnedOpenSession(sessionID, studentID int64) (*models.QuizSession, error)
	RecordAnswer(sessionID, questionID int64, answer string, correct bool, timeTaken int) error
	CompleteSession(ctx context.Context, sessionID, studentID int64, totalTime int, progress ProgressFolder) (*models.QuizSession, []string, error)
	RecentSessions(studentID int64, limit int) ([]models.SessionSummary, error)
}

// QuestionCatalog is the slice of the question bank the service reads.
// *questions.Store satisfies it.
type QuestionCatalog interface {
	SamplePool(grade int, topic models.QuestionType, difficulty models.Difficulty, limit int) ([]models.Question, error)
	GetByIDs(ids []int64) ([]models.Question, error)
	Get(id int64) (*models.Question, error)
}

type Service struct {
	store     SessionStore
	questions QuestionCatalog
	choices   *questions.ChoiceGenerator
	progress  ProgressFolder
}

func NewService(store SessionStore, questionStore QuestionCatalog, choices *questions.ChoiceGenerator, progress ProgressFolder) *Service {
	return &Service{
		store:     store,
		questions: questionStore,
		choices:   choices,
		progress:  progress,
	}
}

// Start validates the requested combination, samples the question pool,
// and opens a session with a fixed question order.
func (s *Service) Start(studentID int64, req models.StartQuizRequest) (*models.QuizSession, error) {
	if !models.ValidGrades[req.GradeLevel] {
		return nil, fmt.Errorf("%w: grade level must be between 1 and 3", ErrValidation)
	}
	if !models.GradeHasTopic(req.GradeLevel, req.Topic) {
		return nil, fmt.Errorf("%w: topic %q is not available at grade %d", ErrValidation, req.Topic, req.GradeLevel)
	}
	if !models.ValidDifficulties[req.Difficulty] {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrValidation, req.Difficulty)
	}

	pool, err := s.questions.SamplePool(req.GradeLevel, req.Topic, req.Difficulty, questionsPerQuiz)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	questionIDs := make([]int64, len(pool))
	for i, q := range pool {
		questionIDs[i] = q.ID
	}

	return s.store.CreateSession(studentID, req.GradeLevel, req.Topic, req.Difficulty, questionIDs)
}

// Questions returns the session's ordered question list prepared for
// rendering: choices attached, correct answers stripped.
func (s *Service) Questions(sessionID, studentID int64) (*models.QuizView, error) {
	sess, err := s.store.GetOwnedOpenSession(sessionID, studentID)
	if err != nil {
		return nil, err
	}

	fetched, err := s.questions.GetByIDs(sess.QuestionIDs)
	if err != nil {
		return nil, err
	}

	served := make([]models.QuizQuestion, 0, len(fetched))
	for i := range fetched {
		q := &fetched[i]
		served = append(served, models.QuizQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Difficulty:   q.Difficulty,
			Points:       q.Difficulty.Points(),
			Choices:      s.choices.Choices(q),
		})
	}

	return &models.QuizView{
		SessionID:      sess.ID,
		Topic:          sess.QuestionType,
		GradeLevel:     sess.GradeLevel,
		Difficulty:     sess.Difficulty,
		TotalQuestions: sess.TotalQuestions,
		CorrectAnswers: sess.CorrectAnswers,
		Questions:      served,
	}, nil
}

// SubmitAnswer judges one answer against the session's question set and
// records it. The session state does not change; answers survive even
// if the session is never completed.
func (s *Service) SubmitAnswer(sessionID, studentID int64, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	sess, err := s.store.GetOwnedOpenSession(sessionID, studentID)
	if err != nil {
		return nil, err
	}
	if !sess.HasQuestion(req.QuestionID) {
		return nil, ErrUnknownQuestion
	}

	question, err := s.questions.Get(req.QuestionID)
	if err != nil {
		return nil, err
	}

	correct := AnswersMatch(req.Answer, question.CorrectAnswer)
	if err := s.store.RecordAnswer(sessionID, req.QuestionID, req.Answer, correct, req.TimeTaken); err != nil {
		return nil, err
	}

	running := sess.CorrectAnswers
	if correct {
		running++
	}
	return &models.SubmitAnswerResponse{Correct: correct, CorrectAnswers: running}, nil
}

// Complete finalizes the session and folds it into the student's
// progress in one transaction.
func (s *Service) Complete(ctx context.Context, sessionID, studentID int64, totalTime int) (*models.QuizResult, error) {
	sess, newBadges, err := s.store.CompleteSession(ctx, sessionID, studentID, totalTime, s.progress)
	if err != nil {
		return nil, err
	}

	if newBadges == nil {
		newBadges = []string{}
	}
	return &models.QuizResult{
		SessionID:      sess.ID,
		PointsEarned:   sess.PointsEarned,
		Accuracy:       Accuracy(sess.CorrectAnswers, sess.TotalQuestions),
		CorrectAnswers: sess.CorrectAnswers,
		TotalQuestions: sess.TotalQuestions,
		TimeTaken:      sess.TimeTaken,
		NewBadges:      newBadges,
	}, nil
}

// Recent lists the student's latest completed sessions.
func (s *Service) Recent(studentID int64, limit int) ([]models.SessionSummary, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.store.RecentSessions(studentID, limit)
}
