package model

import "time"

// GymCenter represents a gym location.
type GymCenter struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:256;not null" json:"name"`
	Description      string    `gorm:"type:text" json:"description"`
	Address          string    `gorm:"size:512;not null" json:"address"`
	Phone            string    `gorm:"size:32;not null" json:"phone"`
	Email            string    `gorm:"size:256;not null" json:"email"`
	WorkingHoursJSON string    `gorm:"column:working_hours_json;not null;default:'[]'" json:"working_hours"`
	Advertisement    string    `gorm:"type:text" json:"advertisement"`
	ImageURL         string    `gorm:"size:512" json:"image_url"`
	IsActive         bool      `gorm:"not null;default:false" json:"is_active"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// GymCenterPhoto is an extra gallery image for a gym center.
type GymCenterPhoto struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	GymCenterID int64  `gorm:"index;not null" json:"gym_center_id"`
	URL         string `gorm:"size:512;not null" json:"url"`
	Caption     string `gorm:"size:256" json:"caption"`
}
