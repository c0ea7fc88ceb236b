package repositories

import (
	"context"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// StudentRepository persists students keyed by id, looked up by register number.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByRegisterNumber(ctx context.Context, registerNumber string) (*models.Student, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Student, error)
	ExistsByRegisterNumber(ctx context.Context, registerNumber string) (bool, error)
}

// StaffRepository persists staff keyed by id, looked up by email.
type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	GetByEmail(ctx context.Context, email string) (*models.Staff, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
