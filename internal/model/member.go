package model

import "time"

// Member represents a registered gym member.
type Member struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	FirstName        string    `gorm:"size:128;not null" json:"first_name"`
	LastName         string    `gorm:"size:128;not null" json:"last_name"`
	Email            string    `gorm:"uniqueIndex;size:256;not null" json:"email"`
	Phone            string    `gorm:"size:32;not null" json:"phone"`
	PasswordHash     string    `gorm:"size:256;not null" json:"-"`
	RegistrationDate time.Time `gorm:"not null" json:"registration_date"`
	UserID           *int64    `gorm:"index" json:"user_id,omitempty"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}
