package repositories

import (
	"context"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// AttemptRepository persists submitted attempts. Attempts are immutable once created.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.TestAttempt) error
	GetByID(ctx context.Context, id string) (*models.TestAttempt, error)
	List(ctx context.Context, filters AttemptFilters) ([]*models.TestAttempt, error)
}
