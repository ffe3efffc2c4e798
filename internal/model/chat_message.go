package model

import "time"

// ChatMessage stores one member message to the AI assistant together with
// the assistant's response.
type ChatMessage struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	MemberID  int64     `gorm:"index;not null" json:"member_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Response  string    `gorm:"type:text" json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
