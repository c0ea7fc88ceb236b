// Package session tracks which students are currently inside which test.
//
// State is process-local and lost on restart. It is advisory monitoring data,
// never a source of truth for grading.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

type Tracker struct {
	mu       sync.RWMutex
	sessions map[string]map[string]*models.LiveSession // test id -> student id
	now      func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		sessions: make(map[string]map[string]*models.LiveSession),
		now:      time.Now,
	}
}

// MarkEntered upserts the session for (testID, student), resetting its start time and progress.
func (t *Tracker) MarkEntered(testID string, student *models.Student) models.LiveSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	byStudent, ok := t.sessions[testID]
	if !ok {
		byStudent = make(map[string]*models.LiveSession)
		t.sessions[testID] = byStudent
	}

	session := &models.LiveSession{
		TestID:          testID,
		StudentID:       student.ID,
		StudentName:     student.Name,
		RegisterNumber:  student.RegisterNumber,
		StartedAt:       t.now(),
		CurrentQuestion: 0,
		Status:          models.SessionActive,
	}
	byStudent[student.ID] = session
	return *session
}

// UpdateProgress records the question index the student is on. It reports false when no session is open.
func (t *Tracker) UpdateProgress(testID, studentID string, currentQuestion int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	session, ok := t.sessions[testID][studentID]
	if !ok {
		return false
	}
	session.CurrentQuestion = currentQuestion
	return true
}

// MarkSubmitted removes the session if present.
func (t *Tracker) MarkSubmitted(testID, studentID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	byStudent, ok := t.sessions[testID]
	if !ok {
		return
	}
	delete(byStudent, studentID)
	if len(byStudent) == 0 {
		delete(t.sessions, testID)
	}
}

// ListLive returns copies of the open sessions for a test ordered by start time.
func (t *Tracker) ListLive(testID string) []models.LiveSession {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]models.LiveSession, 0, len(t.sessions[testID]))
	for _, session := range t.sessions[testID] {
		out = append(out, *session)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}
