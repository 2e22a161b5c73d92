package dtos

import "time"

type RegisterUserRequest struct {
	Name      string    `json:"name" binding:"required"`
	Surname   string    `json:"surname" binding:"required"`
	BirthDate time.Time `json:"birth_date" binding:"required"`
	Phone     string    `json:"phone" binding:"required"`
	Email     string    `json:"email" binding:"required,email"`
	Password  string    `json:"password" binding:"required,min=6"`

	// Optional fields
	ProfilePhoto string `json:"profile_photo"`
	Role         string `json:"role" binding:"omitempty,oneof=user admin"`
}

type RegisterCompanyRequest struct {
	CompanyName       string `json:"company_name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	RegistrantName    string `json:"registrant_name" binding:"required"`
	RegistrantSurname string `json:"registrant_surname" binding:"required"`
	Description       string `json:"description" binding:"required"`
	Password          string `json:"password" binding:"required,min=6"`
	Phone             string `json:"phone" binding:"required"`

	ProfilePhoto string `json:"profile_photo"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	ResetToken  string `json:"reset_token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// Profile is the caller summary returned by /auth/me.
type Profile struct {
	ID    uint   `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
