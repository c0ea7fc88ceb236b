package models

import "time"

type SessionStatus string

const SessionActive SessionStatus = "active"

// LiveSession is the in-memory view of a student sitting a test.
type LiveSession struct {
	TestID          string        `json:"test_id"`
	StudentID       string        `json:"student_id"`
	StudentName     string        `json:"student_name"`
	RegisterNumber  string        `json:"register_number"`
	StartedAt       time.Time     `json:"started_at"`
	CurrentQuestion int           `json:"current_question"`
	Status          SessionStatus `json:"status"`
}
