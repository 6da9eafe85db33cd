package admin

import (
	"errors"
	"fmt"
	"time"

	"github.com/spaysidokito/math-racers-1/internal/models"
)

var ErrValidation = errors.New("validation failed")

const (
	defaultPageSize   = 20
	maxPageSize       = 100
	maxBulkDeleteSize = 200
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListUsers(req models.UserListRequest) (*models.UserListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = defaultPageSize
	}
	if req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}
	if req.Role != nil && !models.ValidRoles[*req.Role] {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *req.Role)
	}
	return s.store.ListUsers(req)
}

// ChangeRole updates a user's role. Admins cannot change their own
// role, so a deployment always keeps at least one admin.
func (s *Service) ChangeRole(actorID, userID int64, role models.Role) (*models.User, error) {
	if !models.ValidRoles[role] {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if actorID == userID {
		return nil, fmt.Errorf("%w: you cannot change your own role", ErrValidation)
	}
	return s.store.UpdateRole(userID, role)
}

func (s *Service) ChangeStatus(actorID, userID int64, active bool) (*models.User, error) {
	if actorID == userID && !active {
		return nil, fmt.Errorf("%w: you cannot deactivate your own account", ErrValidation)
	}
	return s.store.UpdateStatus(userID, active)
}

func (s *Service) DeleteUser(actorID, userID int64) error {
	if actorID == userID {
		return fmt.Errorf("%w: you cannot delete your own account", ErrValidation)
	}
	return s.store.DeleteUser(userID)
}

func (s *Service) QuestionBankStats() (*models.QuestionBankStats, error) {
	return s.store.QuestionBankStats()
}

func (s *Service) PlatformStats() (*PlatformStats, error) {
	return s.store.GetPlatformStats()
}

// SystemLogs reports activity over the trailing window, clamped to a
// year. Zero or negative falls back to the last 7 days.
func (s *Service) SystemLogs(days int) (*SystemLogs, error) {
	days = clampLogWindow(days)
	logs, err := s.store.GetSystemLogs(days)
	if err != nil {
		return nil, err
	}
	if logs.UserActivity == nil {
		logs.UserActivity = []UserActivity{}
	}
	if logs.QuizStats == nil {
		logs.QuizStats = []QuizActivityStat{}
	}
	if logs.DailyActivity == nil {
		logs.DailyActivity = []DailyActivity{}
	}
	return logs, nil
}

func clampLogWindow(days int) int {
	if days < 1 {
		return 7
	}
	if days > 365 {
		return 365
	}
	return days
}

func (s *Service) BulkDeleteQuestions(req models.BulkDeleteRequest) (*models.BulkDeleteResult, error) {
	if len(req.QuestionIDs) == 0 {
		return nil, fmt.Errorf("%w: question_ids is required", ErrValidation)
	}
	if len(req.QuestionIDs) > maxBulkDeleteSize {
		return nil, fmt.Errorf("%w: at most %d questions per request", ErrValidation, maxBulkDeleteSize)
	}
	return s.store.BulkDeleteQuestions(req.QuestionIDs)
}

func (s *Service) ExportQuestions() (*models.ExportEnvelope, error) {
	questions, err := s.store.ExportQuestions()
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []models.ExportQuestion{}
	}
	return &models.ExportEnvelope{
		Version:    1,
		ExportedAt: time.Now().UTC(),
		Questions:  questions,
	}, nil
}
