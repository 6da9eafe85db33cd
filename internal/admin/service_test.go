package admin

import (
	"errors"
	"testing"

	"github.com/spaysidokito/math-racers-1/internal/models"
)

func TestChangeRoleValidation(t *testing.T) {
	svc := NewService(nil)

	if _, err := svc.ChangeRole(1, 2, models.Role("superuser")); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown role: got %v, want ErrValidation", err)
	}
	if _, err := svc.ChangeRole(7, 7, models.RoleTeacher); !errors.Is(err, ErrValidation) {
		t.Errorf("self role change: got %v, want ErrValidation", err)
	}
}

func TestChangeStatusSelfDeactivation(t *testing.T) {
	svc := NewService(nil)

	if _, err := svc.ChangeStatus(3, 3, false); !errors.Is(err, ErrValidation) {
		t.Errorf("self deactivation: got %v, want ErrValidation", err)
	}
}

func TestDeleteUserSelf(t *testing.T) {
	svc := NewService(nil)

	if err := svc.DeleteUser(5, 5); !errors.Is(err, ErrValidation) {
		t.Errorf("self delete: got %v, want ErrValidation", err)
	}
}

func TestBulkDeleteValidation(t *testing.T) {
	svc := NewService(nil)

	if _, err := svc.BulkDeleteQuestions(models.BulkDeleteRequest{}); !errors.Is(err, ErrValidation) {
		t.Errorf("empty request: got %v, want ErrValidation", err)
	}

	ids := make([]int64, maxBulkDeleteSize+1)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	if _, err := svc.BulkDeleteQuestions(models.BulkDeleteRequest{QuestionIDs: ids}); !errors.Is(err, ErrValidation) {
		t.Errorf("oversized request: got %v, want ErrValidation", err)
	}
}

func TestClampLogWindow(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{0, 7},
		{-3, 7},
		{1, 1},
		{30, 30},
		{365, 365},
		{400, 365},
	}
	for _, tt := range tests {
		if got := clampLogWindow(tt.days); got != tt.want {
			t.Errorf("clampLogWindow(%d) = %d, want %d", tt.days, got, tt.want)
		}
	}
}

func TestListUsersRejectsUnknownRole(t *testing.T) {
	svc := NewService(nil)

	bogus := models.Role("wizard")
	_, err := svc.ListUsers(models.UserListRequest{Role: &bogus})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("unknown role filter: got %v, want ErrValidation", err)
	}
}
