package domain

import "time"

// Roles a user can hold. Every account starts as RoleUser; RoleAdmin is
// assigned out of band.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Name         string     `json:"name" dynamodbav:"name"`
	Nickname     string     `json:"nickname" dynamodbav:"nickname"`
	Phone        string     `json:"phone" dynamodbav:"phone"`
	Email        string     `json:"email" dynamodbav:"email"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Role         string     `json:"role" dynamodbav:"role"`
	Enable       int        `json:"enable" dynamodbav:"enable"` // 1 = active, 0 = withdrawn
	DeletedAt    *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type SignupRequest struct {
	Name     string `json:"userName" validate:"required"`
	Nickname string `json:"userNickname" validate:"required"`
	Phone    string `json:"userPhone" validate:"required"`
	Email    string `json:"userEmail" validate:"required,email"`
	Password string `json:"userPassword" validate:"required,min=8,max=72"`
}

// UpdateUserField carries a single profile field change. The target field is
// selected by the route (PATCH /users/name, /nickname, /phone), so only one
// value is expected per request.
type UpdateUserField struct {
	Value string `json:"value" validate:"required"`
}

type EmailRequest struct {
	Email string `json:"userEmail" validate:"required,email"`
}

type EmailConfirmRequest struct {
	Email string `json:"userEmail" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}
