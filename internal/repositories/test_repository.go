package repositories

import (
	"context"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

type TestRepository interface {
	Create(ctx context.Context, test *models.Test) error
	GetByID(ctx context.Context, id string) (*models.Test, error)
	List(ctx context.Context, filters TestFilters) ([]*models.Test, error)
}
