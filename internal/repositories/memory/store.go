package memory

import (
	"sync"

	"github.com/SAP-F-2025/exam-service/internal/repositories"
)

// table is an insertion-ordered collection keyed by id.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) insert(id string, row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, repositories.ErrNotFound
	}
	return row, nil
}

// find returns the rows matching keep in insertion order.
func (t *table[T]) find(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0)
	for _, id := range t.order {
		if row := t.rows[id]; keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return rows[:0]
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

type repository struct {
	student  *StudentMemory
	staff    *StaffMemory
	subject  *SubjectMemory
	question *QuestionMemory
	test     *TestMemory
	attempt  *AttemptMemory
}

// NewRepository returns a process-local repository. Data is lost on restart.
func NewRepository() repositories.Repository {
	return &repository{
		student:  NewStudentMemory(),
		staff:    NewStaffMemory(),
		subject:  NewSubjectMemory(),
		question: NewQuestionMemory(),
		test:     NewTestMemory(),
		attempt:  NewAttemptMemory(),
	}
}

func (r *repository) Student() repositories.StudentRepository   { return r.student }
func (r *repository) Staff() repositories.StaffRepository       { return r.staff }
func (r *repository) Subject() repositories.SubjectRepository   { return r.subject }
func (r *repository) Question() repositories.QuestionRepository { return r.question }
func (r *repository) Test() repositories.TestRepository         { return r.test }
func (r *repository) Attempt() repositories.AttemptRepository   { return r.attempt }
