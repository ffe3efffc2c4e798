package model

import "time"

// PushSubscription holds a browser push subscription for a member, used to
// notify them when an appointment changes status.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey" json:"endpoint"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth      string    `gorm:"not null" json:"auth"`
	MemberID  int64     `gorm:"index;not null" json:"member_id"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}
