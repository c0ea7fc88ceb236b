package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/SAP-F-2025/exam-service/internal/validator"
	"github.com/google/uuid"
)

type questionService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
	opLogger  *ServiceLogger
}

func NewQuestionService(repo repositories.Repository, validator *validator.Validator, logger *slog.Logger) QuestionService {
	return &questionService{
		repo:      repo,
		validator: validator,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, "question"),
	}
}

func (s *questionService) Create(ctx context.Context, req *CreateQuestionRequest, staffID string) (question *models.Question, err error) {
	op := s.opLogger.WithOperation(ctx, "create_question", staffID)
	defer func() {
		id := ""
		if question != nil {
			id = question.ID
		}
		op.LogResult(id, "question", err)
	}()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Subject().GetByID(ctx, req.SubjectID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}

	question = &models.Question{
		ID:            uuid.NewString(),
		QuestionText:  strings.TrimSpace(req.QuestionText),
		Options:       req.Options,
		CorrectAnswer: *req.CorrectAnswer,
		Explanation:   req.Explanation,
		SubjectID:     req.SubjectID,
		Units:         dedupeUnits(req.Units),
		CreatedBy:     staffID,
	}

	if err := s.validator.Question().ValidateQuestion(question); err != nil {
		return nil, err
	}

	if err := s.repo.Question().Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return question, nil
}

// ListOwn returns the questions staffID created, optionally limited to one subject.
func (s *questionService) ListOwn(ctx context.Context, staffID, subjectID string) ([]*models.Question, error) {
	filters := repositories.QuestionFilters{CreatedBy: &staffID}
	if subjectID != "" {
		filters.SubjectID = &subjectID
	}

	questions, err := s.repo.Question().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func dedupeUnits(units []string) []string {
	out := make([]string, 0, len(units))
	seen := make(map[string]bool, len(units))
	for _, unit := range units {
		if seen[unit] {
			continue
		}
		seen[unit] = true
		out = append(out, unit)
	}
	return out
}
