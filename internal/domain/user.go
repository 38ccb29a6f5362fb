package domain

import "time"

// Stored user attribute names. Partial updates key on these.
const (
	UserFieldLogin         = "login"
	UserFieldFullName      = "full_name"
	UserFieldEmail         = "email"
	UserFieldPasswordHash  = "password_hash"
	UserFieldRole          = "role"
	UserFieldEmailVerified = "email_verified"
)

type User struct {
	UserID        string    `json:"id" dynamodbav:"user_id"`
	Login         string    `json:"login" dynamodbav:"login"`
	FullName      string    `json:"full_name" dynamodbav:"full_name"`
	Email         string    `json:"email" dynamodbav:"email"`
	PasswordHash  string    `json:"-" dynamodbav:"password_hash"`
	Role          string    `json:"role" dynamodbav:"role"`
	EmailVerified bool      `json:"email_verified" dynamodbav:"email_verified"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateUserRequest struct {
	Login    string `json:"login" validate:"required,max=64"`
	Password string `json:"password" validate:"required,password_policy"`
	Email    string `json:"email" validate:"required,email_policy"`
	FullName string `json:"full_name" validate:"required"`
}

// UpdateUserRequest changes profile fields. Nil fields are left as they are.
type UpdateUserRequest struct {
	Login    *string `json:"login" validate:"omitempty,max=64"`
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// UserSearchRequest matches SearchValue against login and pages the result.
// From and Count default to 0; a zero Count yields an empty page.
type UserSearchRequest struct {
	SearchValue string `json:"search_value"`
	From        int    `json:"from"`
	Count       int    `json:"count"`
}
