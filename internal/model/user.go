package model

import "time"

// User roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User carries the credentials and role of an account. Members additionally
// have a Member row referencing the user.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:256;not null" json:"email"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:'member'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}
