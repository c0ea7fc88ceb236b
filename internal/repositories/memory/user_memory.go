package memory

import (
	"context"
	"sync"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
)

type StudentMemory struct {
	// guards the register number check-and-insert
	mu   sync.Mutex
	rows *table[models.Student]
}

func NewStudentMemory() *StudentMemory {
	return &StudentMemory{rows: newTable[models.Student]()}
}

func (s *StudentMemory) Create(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if exists, _ := s.ExistsByRegisterNumber(ctx, student.RegisterNumber); exists {
		return repositories.ErrDuplicateKey
	}
	s.rows.insert(student.ID, *student)
	return nil
}

func (s *StudentMemory) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.rows.get(id)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentMemory) GetByRegisterNumber(ctx context.Context, registerNumber string) (*models.Student, error) {
	found := s.rows.find(func(st models.Student) bool { return st.RegisterNumber == registerNumber })
	if len(found) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &found[0], nil
}

func (s *StudentMemory) GetByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	out := make([]*models.Student, 0, len(ids))
	for _, id := range ids {
		if student, err := s.rows.get(id); err == nil {
			out = append(out, &student)
		}
	}
	return out, nil
}

func (s *StudentMemory) ExistsByRegisterNumber(ctx context.Context, registerNumber string) (bool, error) {
	found := s.rows.find(func(st models.Student) bool { return st.RegisterNumber == registerNumber })
	return len(found) > 0, nil
}

type StaffMemory struct {
	mu   sync.Mutex
	rows *table[models.Staff]
}

func NewStaffMemory() *StaffMemory {
	return &StaffMemory{rows: newTable[models.Staff]()}
}

func (s *StaffMemory) Create(ctx context.Context, staff *models.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if exists, _ := s.ExistsByEmail(ctx, staff.Email); exists {
		return repositories.ErrDuplicateKey
	}
	s.rows.insert(staff.ID, *staff)
	return nil
}

func (s *StaffMemory) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	staff, err := s.rows.get(id)
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (s *StaffMemory) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	found := s.rows.find(func(st models.Staff) bool { return st.Email == email })
	if len(found) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &found[0], nil
}

func (s *StaffMemory) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	found := s.rows.find(func(st models.Staff) bool { return st.Email == email })
	return len(found) > 0, nil
}
