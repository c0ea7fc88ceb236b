package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents different types of notification events
type EventType string

const (
	EventAttemptSubmitted EventType = "attempt.submitted"
)

const (
	eventSource  = "exam-service"
	eventVersion = "1.0"
)

// NotificationEvent is the envelope every notification is published in.
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// AttemptSubmittedEvent carries what the mail worker needs to write to the student
// without reading the database again.
type AttemptSubmittedEvent struct {
	AttemptID      string    `json:"attempt_id"`
	TestID         string    `json:"test_id"`
	SubjectName    string    `json:"subject_name"`
	CourseCode     string    `json:"course_code"`
	StudentID      string    `json:"student_id"`
	StudentName    string    `json:"student_name"`
	StudentEmail   string    `json:"student_email,omitempty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	IsMalpractice  bool      `json:"is_malpractice"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

func NewAttemptSubmittedEvent(payload AttemptSubmittedEvent) *NotificationEvent {
	return &NotificationEvent{
		ID:        GenerateEventID(),
		Type:      EventAttemptSubmitted,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      payload,
	}
}

// DecodeAttemptSubmitted reads an attempt.submitted envelope back from its wire form.
func DecodeAttemptSubmitted(payload []byte) (*AttemptSubmittedEvent, error) {
	var envelope struct {
		Type EventType       `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode notification event: %w", err)
	}
	if envelope.Type != EventAttemptSubmitted {
		return nil, fmt.Errorf("unexpected event type %q", envelope.Type)
	}

	var event AttemptSubmittedEvent
	if err := json.Unmarshal(envelope.Data, &event); err != nil {
		return nil, fmt.Errorf("failed to decode attempt submitted payload: %w", err)
	}
	return &event, nil
}

// GenerateEventID returns a new unique event id.
func GenerateEventID() string {
	return watermill.NewUUID()
}
