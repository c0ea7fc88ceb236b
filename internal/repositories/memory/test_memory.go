package memory

import (
	"context"
	"sort"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
)

type TestMemory struct {
	rows *table[models.Test]
}

func NewTestMemory() *TestMemory {
	return &TestMemory{rows: newTable[models.Test]()}
}

func (t *TestMemory) Create(ctx context.Context, test *models.Test) error {
	t.rows.insert(test.ID, *test)
	return nil
}

func (t *TestMemory) GetByID(ctx context.Context, id string) (*models.Test, error) {
	test, err := t.rows.get(id)
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (t *TestMemory) List(ctx context.Context, filters repositories.TestFilters) ([]*models.Test, error) {
	found := t.rows.find(func(test models.Test) bool {
		if filters.CreatedBy != nil && test.CreatedBy != *filters.CreatedBy {
			return false
		}
		if filters.Department != nil && test.Department != *filters.Department {
			return false
		}
		if filters.Year != nil && test.Year != *filters.Year {
			return false
		}
		if filters.ActiveOnly && !test.IsActive {
			return false
		}
		if filters.OpenAt != nil && !test.IsOpenAt(*filters.OpenAt) {
			return false
		}
		return true
	})
	sort.SliceStable(found, func(i, j int) bool { return found[i].StartTime.Before(found[j].StartTime) })
	found = paginate(found, filters.Limit, filters.Offset)

	out := make([]*models.Test, len(found))
	for i := range found {
		out[i] = &found[i]
	}
	return out, nil
}

type AttemptMemory struct {
	rows *table[models.TestAttempt]
}

func NewAttemptMemory() *AttemptMemory {
	return &AttemptMemory{rows: newTable[models.TestAttempt]()}
}

func (a *AttemptMemory) Create(ctx context.Context, attempt *models.TestAttempt) error {
	a.rows.insert(attempt.ID, *attempt)
	return nil
}

func (a *AttemptMemory) GetByID(ctx context.Context, id string) (*models.TestAttempt, error) {
	attempt, err := a.rows.get(id)
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a *AttemptMemory) List(ctx context.Context, filters repositories.AttemptFilters) ([]*models.TestAttempt, error) {
	found := a.rows.find(func(attempt models.TestAttempt) bool {
		if filters.TestID != nil && attempt.TestID != *filters.TestID {
			return false
		}
		if filters.StudentID != nil && attempt.StudentID != *filters.StudentID {
			return false
		}
		return true
	})
	sort.SliceStable(found, func(i, j int) bool { return found[i].SubmittedAt.Before(found[j].SubmittedAt) })
	found = paginate(found, filters.Limit, filters.Offset)

	out := make([]*models.TestAttempt, len(found))
	for i := range found {
		out[i] = &found[i]
	}
	return out, nil
}
