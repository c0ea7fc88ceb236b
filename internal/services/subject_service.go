package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/cache"
	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/SAP-F-2025/exam-service/internal/validator"
	"github.com/google/uuid"
)

const subjectCachePrefix = "subjects:"

type subjectService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	cacheTTL  time.Duration
	validator *validator.Validator
	logger    *slog.Logger
	opLogger  *ServiceLogger
}

func NewSubjectService(repo repositories.Repository, cacheService cache.CacheService, cacheTTL time.Duration, validator *validator.Validator, logger *slog.Logger) SubjectService {
	return &subjectService{
		repo:      repo,
		cache:     cacheService,
		cacheTTL:  cacheTTL,
		validator: validator,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, "subject"),
	}
}

// Create stores a subject in the staff member's department unless another one is named.
func (s *subjectService) Create(ctx context.Context, req *CreateSubjectRequest, staffID string) (subject *models.Subject, err error) {
	op := s.opLogger.WithOperation(ctx, "create_subject", staffID)
	defer func() {
		id := ""
		if subject != nil {
			id = subject.ID
		}
		op.LogResult(id, "subject", err)
	}()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	staff, err := s.repo.Staff().GetByID(ctx, staffID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}

	department := strings.TrimSpace(req.Department)
	if department == "" {
		department = staff.Department
	}
	if department != staff.Department {
		return nil, NewPermissionError(staffID, "", "subject", "create", "subjects can only be created in your own department")
	}

	subject = &models.Subject{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		CourseCode: strings.TrimSpace(req.CourseCode),
		Department: department,
		CreatedBy:  staffID,
	}

	if err := s.repo.Subject().Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	if err := s.cache.DeletePattern(ctx, subjectCachePrefix+"*"); err != nil {
		s.logger.Warn("Failed to invalidate subject cache", "error", err)
	}

	return subject, nil
}

// List returns the subjects of department, or of every department when it is empty.
func (s *subjectService) List(ctx context.Context, department string) ([]*models.Subject, error) {
	key := subjectCachePrefix + department
	if department == "" {
		key = subjectCachePrefix + "all"
	}

	var cached []*models.Subject
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	filters := repositories.SubjectFilters{}
	if department != "" {
		filters.Department = &department
	}

	subjects, err := s.repo.Subject().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}

	if err := s.cache.Set(ctx, key, subjects, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache subjects", "key", key, "error", err)
	}

	return subjects, nil
}
