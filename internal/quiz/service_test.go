package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/spaysidokito/math-racers-1/internal/models"
	"github.com/spaysidokito/math-racers-1/internal/questions"
)

// fakeSessions keeps sessions in memory with the same guard semantics
// as the SQL store: ownership and openness checked on every access,
// one recorded answer per question, completion only once.
type fakeSessions struct {
	nextID   int64
	sessions map[int64]*models.QuizSession
	answered map[int64]map[int64]bool
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		nextID:   1,
		sessions: make(map[int64]*models.QuizSession),
		answered: make(map[int64]map[int64]bool),
	}
}

func (f *fakeSessions) CreateSession(studentID int64, grade int, topic models.QuestionType, difficulty models.Difficulty, questionIDs []int64) (*models.QuizSession, error) {
	sess := &models.QuizSession{
		ID:             f.nextID,
		StudentID:      studentID,
		QuestionType:   topic,
		GradeLevel:     grade,
		Difficulty:     difficulty,
		TotalQuestions: len(questionIDs),
		QuestionIDs:    questionIDs,
		CreatedAt:      time.Now(),
	}
	f.sessions[sess.ID] = sess
	f.answered[sess.ID] = make(map[int64]bool)
	f.nextID++
	return sess, nil
}

func (f *fakeSessions) GetOwnedOpenSession(sessionID, studentID int64) (*models.QuizSession, error) {
	sess, ok := f.sessions[sessionID]
	if !ok || sess.StudentID != studentID || sess.CompletedAt != nil {
		return nil, ErrInvalidSession
	}
	return sess, nil
}

func (f *fakeSessions) RecordAnswer(sessionID, questionID int64, answer string, correct bool, timeTaken int) error {
	if f.answered[sessionID][questionID] {
		return ErrDuplicateAnswer
	}
	f.answered[sessionID][questionID] = true
	if correct {
		f.sessions[sessionID].CorrectAnswers++
	}
	return nil
}

func (f *fakeSessions) CompleteSession(ctx context.Context, sessionID, studentID int64, totalTime int, progress ProgressFolder) (*models.QuizSession, []string, error) {
	sess, err := f.GetOwnedOpenSession(sessionID, studentID)
	if err != nil {
		return nil, nil, err
	}
	sess.TimeTaken = totalTime
	sess.PointsEarned = Score(sess.CorrectAnswers, sess.TotalQuestions, sess.Difficulty, totalTime)
	completedAt := time.Now()
	sess.CompletedAt = &completedAt

	badges, err := progress.ApplyQuizResult(nil, sess)
	if err != nil {
		return nil, nil, err
	}
	return sess, badges, nil
}

func (f *fakeSessions) RecentSessions(studentID int64, limit int) ([]models.SessionSummary, error) {
	return nil, nil
}

type fakeCatalog struct {
	pool []models.Question
}

func (f *fakeCatalog) SamplePool(grade int, topic models.QuestionType, difficulty models.Difficulty, limit int) ([]models.Question, error) {
	if len(f.pool) > limit {
		return f.pool[:limit], nil
	}
	return f.pool, nil
}

func (f *fakeCatalog) GetByIDs(ids []int64) ([]models.Question, error) {
	var out []models.Question
	for _, id := range ids {
		if q := f.find(id); q != nil {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Get(id int64) (*models.Question, error) {
	if q := f.find(id); q != nil {
		return q, nil
	}
	return nil, questions.ErrNotFound
}

func (f *fakeCatalog) find(id int64) *models.Question {
	for i := range f.pool {
		if f.pool[i].ID == id {
			return &f.pool[i]
		}
	}
	return nil
}

type fakeProgress struct {
	applied int
}

func (f *fakeProgress) ApplyQuizResult(tx *sql.Tx, sess *models.QuizSession) ([]string, error) {
	f.applied++
	return []string{"first_quiz"}, nil
}

func newTestService(poolSize int) (*Service, *fakeSessions, *fakeProgress) {
	var pool []models.Question
	for i := 0; i < poolSize; i++ {
		pool = append(pool, models.Question{
			ID:            int64(101 + i),
			QuestionText:  fmt.Sprintf("What is %d + 1?", i),
			QuestionType:  models.TypeAddition,
			GradeLevel:    1,
			Difficulty:    models.DifficultyEasy,
			CorrectAnswer: strconv.Itoa(i + 1),
		})
	}
	store := newFakeSessions()
	progress := &fakeProgress{}
	choices := questions.NewChoiceGenerator(rand.New(rand.NewSource(1)))
	return NewService(store, &fakeCatalog{pool: pool}, choices, progress), store, progress
}

func startSession(t *testing.T, svc *Service, studentID int64) *models.QuizSession {
	t.Helper()
	sess, err := svc.Start(studentID, models.StartQuizRequest{
		Topic:      models.TypeAddition,
		GradeLevel: 1,
		Difficulty: models.DifficultyEasy,
	})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	return sess
}

func TestStartValidation(t *testing.T) {
	svc, _, _ := newTestService(3)

	tests := []struct {
		name string
		req  models.StartQuizRequest
	}{
		{"bad grade", models.StartQuizRequest{Topic: models.TypeAddition, GradeLevel: 5, Difficulty: models.DifficultyEasy}},
		{"topic locked for grade", models.StartQuizRequest{Topic: models.TypeDivision, GradeLevel: 1, Difficulty: models.DifficultyEasy}},
		{"bad difficulty", models.StartQuizRequest{Topic: models.TypeAddition, GradeLevel: 1, Difficulty: "brutal"}},
	}
	for _, tt := range tests {
		if _, err := svc.Start(7, tt.req); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: got %v, want ErrValidation", tt.name, err)
		}
	}
}

func TestStartEmptyPool(t *testing.T) {
	svc, _, _ := newTestService(0)

	_, err := svc.Start(7, models.StartQuizRequest{
		Topic: models.TypeAddition, GradeLevel: 1, Difficulty: models.DifficultyEasy,
	})
	if !errors.Is(err, ErrNoQuestionsAvailable) {
		t.Fatalf("got %v, want ErrNoQuestionsAvailable", err)
	}
}

func TestSubmitAnswerRejectsForeignSession(t *testing.T) {
	svc, _, _ := newTestService(3)
	sess := startSession(t, svc, 7)

	_, err := svc.SubmitAnswer(sess.ID, 8, models.SubmitAnswerRequest{QuestionID: 101, Answer: "1"})
	if !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("got %v, want ErrInvalidSession", err)
	}
}

func TestSubmitAnswerRejectsUnknownQuestion(t *testing.T) {
	svc, _, _ := newTestService(3)
	sess := startSession(t, svc, 7)

	_, err := svc.SubmitAnswer(sess.ID, 7, models.SubmitAnswerRequest{QuestionID: 999, Answer: "1"})
	if !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("got %v, want ErrUnknownQuestion", err)
	}
}

func TestSubmitAnswerRejectsResubmission(t *testing.T) {
	svc, store, _ := newTestService(3)
	sess := startSession(t, svc, 7)

	resp, err := svc.SubmitAnswer(sess.ID, 7, models.SubmitAnswerRequest{QuestionID: 101, Answer: "1"})
	if err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if !resp.Correct || resp.CorrectAnswers != 1 {
		t.Fatalf("first submission: correct=%v count=%d, want correct with count 1", resp.Correct, resp.CorrectAnswers)
	}

	if _, err := svc.SubmitAnswer(sess.ID, 7, models.SubmitAnswerRequest{QuestionID: 101, Answer: "1"}); !errors.Is(err, ErrDuplicateAnswer) {
		t.Fatalf("resubmission: got %v, want ErrDuplicateAnswer", err)
	}
	if got := store.sessions[sess.ID].CorrectAnswers; got != 1 {
		t.Fatalf("correct_answers = %d after resubmission, want 1", got)
	}
}

func TestCorrectAnswersNeverExceedTotal(t *testing.T) {
	svc, store, _ := newTestService(3)
	sess := startSession(t, svc, 7)

	for round := 0; round < 3; round++ {
		for i, qid := range sess.QuestionIDs {
			_, err := svc.SubmitAnswer(sess.ID, 7, models.SubmitAnswerRequest{
				QuestionID: qid, Answer: strconv.Itoa(i + 1),
			})
			if round == 0 && err != nil {
				t.Fatalf("round 0 question %d: %v", qid, err)
			}
			if round > 0 && !errors.Is(err, ErrDuplicateAnswer) {
				t.Fatalf("round %d question %d: got %v, want ErrDuplicateAnswer", round, qid, err)
			}
		}
	}

	got := store.sessions[sess.ID].CorrectAnswers
	if got != sess.TotalQuestions {
		t.Fatalf("correct_answers = %d, want %d", got, sess.TotalQuestions)
	}
}

func TestCompleteTwiceRejected(t *testing.T) {
	svc, _, progress := newTestService(3)
	sess := startSession(t, svc, 7)

	result, err := svc.Complete(context.Background(), sess.ID, 7, 60)
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if result.SessionID != sess.ID {
		t.Fatalf("result session = %d, want %d", result.SessionID, sess.ID)
	}

	if _, err := svc.Complete(context.Background(), sess.ID, 7, 60); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("second completion: got %v, want ErrInvalidSession", err)
	}
	if progress.applied != 1 {
		t.Fatalf("progress folded %d times, want exactly once", progress.applied)
	}
}

func TestSubmitAfterCompleteRejected(t *testing.T) {
	svc, _, _ := newTestService(3)
	sess := startSession(t, svc, 7)

	if _, err := svc.Complete(context.Background(), sess.ID, 7, 60); err != nil {
		t.Fatalf("completion: %v", err)
	}
	_, err := svc.SubmitAnswer(sess.ID, 7, models.SubmitAnswerRequest{QuestionID: 101, Answer: "1"})
	if !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("got %v, want ErrInvalidSession", err)
	}
}
