package models

import "time"

type TestCategory string

const (
	CategoryCAT      TestCategory = "CAT"
	CategoryMockTest TestCategory = "Mock Test"
)

const DefaultDurationMinutes = 45

type Test struct {
	ID              string       `json:"id" gorm:"primaryKey;size:36"`
	SubjectID       string       `json:"subject_id" gorm:"not null;size:36;index"`
	Category        TestCategory `json:"category" gorm:"not null;size:20"`
	StartTime       time.Time    `json:"start_time" gorm:"not null"`
	EndTime         time.Time    `json:"end_time" gorm:"not null"`
	DurationMinutes int          `json:"duration_minutes" gorm:"not null;default:45"`
	Year            int          `json:"year" gorm:"not null"`
	Semester        int          `json:"semester" gorm:"not null"`
	Department      string       `json:"department" gorm:"not null;size:100;index"`
	CreatedBy       string       `json:"created_by" gorm:"not null;size:36;index"`
	IsActive        bool         `json:"is_active" gorm:"not null"`
	CreatedAt       time.Time    `json:"created_at"`
}

func (Test) TableName() string {
	return "tests"
}

// IsOpenAt reports whether t lies in the inclusive [start, end] window.
func (t *Test) IsOpenAt(at time.Time) bool {
	return !at.Before(t.StartTime) && !at.After(t.EndTime)
}
