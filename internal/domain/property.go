package domain

import (
	"time"

	"github.com/google/uuid"
)

type PropertyStatus string

const (
	PropertyPending  PropertyStatus = "pending"
	PropertyApproved PropertyStatus = "approved"
	PropertyRejected PropertyStatus = "rejected"
)

type Property struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	OwnerID         uuid.UUID      `json:"owner_id" db:"owner_id"`
	Title           string         `json:"title" db:"title"`
	Description     string         `json:"description" db:"description"`
	Price           int64          `json:"price" db:"price"`
	Address         string         `json:"address" db:"address"`
	City            string         `json:"city" db:"city"`
	PhotoURL        *string        `json:"photo_url,omitempty" db:"photo_url"`
	Status          PropertyStatus `json:"status" db:"status"`
	RejectionReason *string        `json:"rejection_reason,omitempty" db:"rejection_reason"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

type CreatePropertyInput struct {
	Title       string `json:"title" validate:"required,min=5"`
	Description string `json:"description" validate:"required"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
}
