package repositories

import (
	"time"
)

// Repository groups the per-collection repositories behind a single handle.
type Repository interface {
	Student() StudentRepository
	Staff() StaffRepository
	Subject() SubjectRepository
	Question() QuestionRepository
	Test() TestRepository
	Attempt() AttemptRepository
}

// ===== SHARED FILTER STRUCTS =====

type SubjectFilters struct {
	Department *string `json:"department"`
	CreatedBy  *string `json:"created_by"`
}

type QuestionFilters struct {
	SubjectID *string `json:"subject_id"`
	CreatedBy *string `json:"created_by"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

type TestFilters struct {
	CreatedBy  *string    `json:"created_by"`
	Department *string    `json:"department"`
	Year       *int       `json:"year"`
	ActiveOnly bool       `json:"active_only"`
	OpenAt     *time.Time `json:"open_at"` // start <= OpenAt <= end
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

type AttemptFilters struct {
	TestID    *string `json:"test_id"`
	StudentID *string `json:"student_id"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}
