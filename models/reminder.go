// models/reminder.go
package models

import (
	"time"
)

// Reminder is a dated note. It is the only persisted entity.
type Reminder struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Subject   string    `gorm:"type:varchar(255);not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Date      Date      `gorm:"not null;index" json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Reminder) TableName() string {
	return "reminder"
}

// IsOn reports whether the reminder falls on the calendar day of t.
func (r Reminder) IsOn(t time.Time) bool {
	return r.Date == DateOf(t)
}
