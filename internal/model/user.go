package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account. Every top-level entity in the system belongs to
// exactly one user; repositories never return rows across that boundary.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
