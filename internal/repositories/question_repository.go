package repositories

import (
	"context"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id string) (*models.Subject, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Subject, error)
	List(ctx context.Context, filters SubjectFilters) ([]*models.Subject, error)
}

// QuestionRepository interface for question-specific operations
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id string) (*models.Question, error)
	// GetByIDs silently skips ids that do not exist.
	GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error)
	GetBySubject(ctx context.Context, subjectID string) ([]*models.Question, error)
	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, error)
}
