package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	UserType     UserType   `json:"user_type" db:"user_type"`
	AvatarURL    *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

type UserType string

const (
	TypeBuyer  UserType = "buyer"
	TypeSeller UserType = "seller"
	TypeAgent  UserType = "agent"
	TypeAdmin  UserType = "admin"
)

func (t UserType) IsValid() bool {
	switch t {
	case TypeBuyer, TypeSeller, TypeAgent, TypeAdmin:
		return true
	default:
		return false
	}
}

// HasRole reports whether the user satisfies the required role. Admins
// satisfy every role; seller and agent are interchangeable for listing
// management.
func (u *User) HasRole(required string) bool {
	if u.UserType == TypeAdmin {
		return true
	}
	switch required {
	case "admin":
		return false
	case "lister":
		return u.UserType == TypeSeller || u.UserType == TypeAgent
	default:
		return string(u.UserType) == required
	}
}

type CreateUserInput struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	FullName string   `json:"full_name" validate:"required,min=2"`
	Phone    *string  `json:"phone,omitempty"`
	UserType UserType `json:"user_type" validate:"omitempty,oneof=buyer seller agent"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
