package models

import (
	"time"

	"gorm.io/datatypes"
)

// UnitScore counts the questions of one unit in an attempt.
type UnitScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// UnitPerformance maps a unit tag to its counters.
type UnitPerformance map[string]UnitScore

type TestAttempt struct {
	ID              string                              `json:"id" gorm:"primaryKey;size:36"`
	TestID          string                              `json:"test_id" gorm:"not null;size:36;index"`
	StudentID       string                              `json:"student_id" gorm:"not null;size:36;index"`
	Answers         map[string]int                      `json:"answers" gorm:"type:jsonb;serializer:json"`
	Score           int                                 `json:"score" gorm:"not null"`
	TotalQuestions  int                                 `json:"total_questions" gorm:"not null"`
	TabSwitches     int                                 `json:"tab_switches" gorm:"not null;default:0"`
	IsMalpractice   bool                                `json:"is_malpractice" gorm:"not null;default:false"`
	UnitPerformance datatypes.JSONType[UnitPerformance] `json:"unit_performance" gorm:"type:jsonb"`
	CompletionTime  time.Time                           `json:"completion_time"`
	SubmittedAt     time.Time                           `json:"submitted_at" gorm:"not null;index"`
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}

// Units returns the per-unit counters, never nil.
func (a *TestAttempt) Units() UnitPerformance {
	units := a.UnitPerformance.Data()
	if units == nil {
		return UnitPerformance{}
	}
	return units
}
