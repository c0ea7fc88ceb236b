package services

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"sort"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// MaxQuestionsPerTest caps the questions delivered to one student.
const MaxQuestionsPerTest = 25

// QuestionView is a question as shown to a student: no answer, no explanation.
type QuestionView struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	Units        []string `json:"units"`
}

// SelectQuestions returns the student's question sequence for a subject.
// The order depends only on the question ids and studentID, so repeated calls agree.
// The generator is local to the call; it is predictable, not secret.
func SelectQuestions(questions []*models.Question, studentID string) []QuestionView {
	pool := make([]*models.Question, len(questions))
	copy(pool, questions)
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })

	rng := rand.New(rand.NewSource(seedFor(studentID)))
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if len(pool) > MaxQuestionsPerTest {
		pool = pool[:MaxQuestionsPerTest]
	}

	views := make([]QuestionView, 0, len(pool))
	for _, q := range pool {
		views = append(views, QuestionView{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      append([]string(nil), q.Options...),
			Units:        unitsOrEmpty(q.Units),
		})
	}
	return views
}

func seedFor(studentID string) int64 {
	sum := sha256.Sum256([]byte(studentID))
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

func unitsOrEmpty(units []string) []string {
	if units == nil {
		return []string{}
	}
	return append([]string(nil), units...)
}
