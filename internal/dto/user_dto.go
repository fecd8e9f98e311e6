package dto

import "time"

type CreateUserRequest struct {
	Username      string     `json:"username" binding:"required,min=3,max=50"`
	Password      string     `json:"password" binding:"required,min=6"`
	Email         string     `json:"email" binding:"required,email"`
	FirstName     *string    `json:"first_name"`
	LastName      *string    `json:"last_name"`
	Biography     *string    `json:"biography"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	AccountType   string     `json:"account_type" binding:"omitempty,oneof=PERSONAL ACADEMIC PROFESSIONAL"`
	MaritalStatus string     `json:"marital_status" binding:"omitempty,oneof=SINGLE MARRIED WIDOWED"`
}

// UpdateUserRequest is a partial patch; only non-nil fields are applied.
type UpdateUserRequest struct {
	Email         *string    `json:"email" binding:"omitempty,email"`
	Password      *string    `json:"password" binding:"omitempty,min=6"`
	FirstName     *string    `json:"first_name"`
	LastName      *string    `json:"last_name"`
	Biography     *string    `json:"biography"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	AccountType   *string    `json:"account_type" binding:"omitempty,oneof=PERSONAL ACADEMIC PROFESSIONAL"`
	MaritalStatus *string    `json:"marital_status" binding:"omitempty,oneof=SINGLE MARRIED WIDOWED"`
	Salary        *float64   `json:"salary"`
}
