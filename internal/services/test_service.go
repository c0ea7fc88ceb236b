package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/SAP-F-2025/exam-service/internal/validator"
	"github.com/google/uuid"
)

type testService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
	opLogger  *ServiceLogger
}

func NewTestService(repo repositories.Repository, validator *validator.Validator, logger *slog.Logger) TestService {
	return &testService{
		repo:      repo,
		validator: validator,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, "test"),
	}
}

// Create schedules a test. The department is copied from the subject.
func (s *testService) Create(ctx context.Context, req *CreateTestRequest, staffID string) (resp *TestResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "create_test", staffID)
	defer func() {
		id := ""
		if resp != nil {
			id = resp.ID
		}
		op.LogResult(id, "test", err)
	}()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	subject, err := s.repo.Subject().GetByID(ctx, req.SubjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = models.DefaultDurationMinutes
	}

	test := &models.Test{
		ID:              uuid.NewString(),
		SubjectID:       subject.ID,
		Category:        req.Category,
		StartTime:       req.StartTime.UTC(),
		EndTime:         req.EndTime.UTC(),
		DurationMinutes: duration,
		Year:            req.Year,
		Semester:        req.Semester,
		Department:      subject.Department,
		CreatedBy:       staffID,
		IsActive:        true,
	}

	if err := s.repo.Test().Create(ctx, test); err != nil {
		return nil, fmt.Errorf("failed to create test: %w", err)
	}

	return toTestResponse(test, subject), nil
}

func (s *testService) ListOwn(ctx context.Context, staffID string) ([]*TestResponse, error) {
	tests, err := s.repo.Test().List(ctx, repositories.TestFilters{CreatedBy: &staffID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}

	subjects, err := subjectsFor(ctx, s.repo, tests)
	if err != nil {
		return nil, err
	}

	out := make([]*TestResponse, 0, len(tests))
	for _, test := range tests {
		out = append(out, toTestResponse(test, subjects[test.SubjectID]))
	}
	return out, nil
}

// subjectsFor loads the subjects of tests keyed by id.
func subjectsFor(ctx context.Context, repo repositories.Repository, tests []*models.Test) (map[string]*models.Subject, error) {
	ids := make([]string, 0, len(tests))
	seen := make(map[string]bool, len(tests))
	for _, test := range tests {
		if !seen[test.SubjectID] {
			seen[test.SubjectID] = true
			ids = append(ids, test.SubjectID)
		}
	}

	subjects, err := repo.Subject().GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load subjects: %w", err)
	}

	byID := make(map[string]*models.Subject, len(subjects))
	for _, subject := range subjects {
		byID[subject.ID] = subject
	}
	return byID, nil
}
