package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockStudentRepository is a mock implementation of StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	args := m.Called(ctx, id)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

func (m *MockStudentRepository) GetByRegisterNumber(ctx context.Context, registerNumber string) (*models.Student, error) {
	args := m.Called(ctx, registerNumber)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

func (m *MockStudentRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*models.Student), args.Error(1)
}

func (m *MockStudentRepository) ExistsByRegisterNumber(ctx context.Context, registerNumber string) (bool, error) {
	args := m.Called(ctx, registerNumber)
	return args.Bool(0), args.Error(1)
}

// MockRepository exposes a mocked student repository; the rest are unused.
type MockRepository struct {
	mock.Mock
	studentRepo *MockStudentRepository
}

func (m *MockRepository) Student() repositories.StudentRepository   { return m.studentRepo }
func (m *MockRepository) Staff() repositories.StaffRepository       { return nil }
func (m *MockRepository) Subject() repositories.SubjectRepository   { return nil }
func (m *MockRepository) Question() repositories.QuestionRepository { return nil }
func (m *MockRepository) Test() repositories.TestRepository         { return nil }
func (m *MockRepository) Attempt() repositories.AttemptRepository   { return nil }

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(principal models.Principal) (string, time.Time, error) {
	args := m.Called(principal)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
