package postgres

import (
	"context"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"gorm.io/gorm"
)

type TestPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewTestPostgreSQL(db *gorm.DB) repositories.TestRepository {
	return &TestPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (t *TestPostgreSQL) Create(ctx context.Context, test *models.Test) error {
	return t.db.WithContext(ctx).Create(test).Error
}

func (t *TestPostgreSQL) GetByID(ctx context.Context, id string) (*models.Test, error) {
	var test models.Test
	if err := t.db.WithContext(ctx).Where("id = ?", id).First(&test).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (t *TestPostgreSQL) List(ctx context.Context, filters repositories.TestFilters) ([]*models.Test, error) {
	query := t.db.WithContext(ctx).Model(&models.Test{})
	query = t.helpers.ApplyTestFilters(query, filters)
	query = t.helpers.ApplyPagination(query, filters.Limit, filters.Offset)

	var tests []*models.Test
	if err := query.Order("start_time ASC").Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}
