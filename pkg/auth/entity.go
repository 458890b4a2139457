package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role — роль пользователя внутри организации.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
)

// User — HR-пользователь системы. Все данные скоупятся организацией.
type User struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	Name           string
	PasswordHash   string
	Role           Role
	IsActive       bool
	CreatedAt      time.Time
	LastLoginAt    *time.Time
}
