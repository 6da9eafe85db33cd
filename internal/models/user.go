package models

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

var ValidRoles = map[Role]bool{
	RoleStudent: true,
	RoleTeacher: true,
	RoleAdmin:   true,
}

type User struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	GradeLevel *int      `json:"grade_level,omitempty"`
	Password   string    `json:"-"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Role       string `json:"role,omitempty"`
	GradeLevel int    `json:"grade_level,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SelectGradeRequest struct {
	GradeLevel int `json:"grade_level"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ── Admin Types ───────────────────────────────────────

type UserListRequest struct {
	Role     *Role  `json:"role,omitempty"`
	Search   string `json:"search,omitempty"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type UserListResponse struct {
	Users    []User `json:"users"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type UpdateRoleRequest struct {
	Role Role `json:"role"`
}

type UpdateStatusRequest struct {
	IsActive bool `json:"is_active"`
}
