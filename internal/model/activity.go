package model

import "time"

// ActivityType classifies an activity in the catalog.
type ActivityType string

const (
	ActivityFitness  ActivityType = "fitness"
	ActivityYoga     ActivityType = "yoga"
	ActivityPilates  ActivityType = "pilates"
	ActivityCrossfit ActivityType = "crossfit"
	ActivitySwimming ActivityType = "swimming"
	ActivityOther    ActivityType = "other"
)

// Activity is a bookable class or training offered by a gym center.
type Activity struct {
	ID          int64        `gorm:"primaryKey" json:"id"`
	GymCenterID int64        `gorm:"index;not null" json:"gym_center_id"`
	Name        string       `gorm:"size:256;not null" json:"name"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Type        ActivityType `gorm:"size:32;not null" json:"type"`
	Duration    int          `gorm:"not null" json:"duration"` // minutes
	Price       float64      `gorm:"not null" json:"price"`
	ImageURL    string       `gorm:"size:512" json:"image_url"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}
