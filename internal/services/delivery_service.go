package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/SAP-F-2025/exam-service/internal/session"
)

type deliveryService struct {
	repo     repositories.Repository
	tracker  *session.Tracker
	logger   *slog.Logger
	opLogger *ServiceLogger
	now      func() time.Time
}

func NewDeliveryService(repo repositories.Repository, tracker *session.Tracker, logger *slog.Logger, now func() time.Time) DeliveryService {
	return &deliveryService{
		repo:     repo,
		tracker:  tracker,
		logger:   logger,
		opLogger: NewServiceLogger(logger, "delivery"),
		now:      now,
	}
}

// ListAvailable returns the active tests open now for the student's department and year.
func (s *deliveryService) ListAvailable(ctx context.Context, studentID string) ([]AvailableTest, error) {
	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tests, err := s.repo.Test().List(ctx, repositories.TestFilters{
		Department: &student.Department,
		Year:       &student.Year,
		ActiveOnly: true,
		OpenAt:     &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}

	subjects, err := subjectsFor(ctx, s.repo, tests)
	if err != nil {
		return nil, err
	}

	out := make([]AvailableTest, 0, len(tests))
	for _, test := range tests {
		if CheckEligibility(test, student, now) != nil {
			continue
		}
		out = append(out, toAvailableTest(test, subjects[test.SubjectID]))
	}
	return out, nil
}

// Start authorizes entry, opens a live session and returns the student's questions.
func (s *deliveryService) Start(ctx context.Context, testID, studentID string) (delivered *DeliveredTest, err error) {
	op := s.opLogger.WithOperation(ctx, "start_test", studentID)
	defer func() { op.LogResult(testID, "test", err) }()

	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	test, err := s.repo.Test().GetByID(ctx, testID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to load test: %w", err)
	}
	if err := CheckEligibility(test, student, s.now()); err != nil {
		return nil, err
	}

	questions, err := s.repo.Question().GetBySubject(ctx, test.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	s.tracker.MarkEntered(test.ID, student)

	return &DeliveredTest{
		TestID:          test.ID,
		DurationMinutes: test.DurationMinutes,
		EndTime:         test.EndTime,
		Questions:       SelectQuestions(questions, student.ID),
	}, nil
}

func (s *deliveryService) UpdateProgress(ctx context.Context, testID, studentID string, currentQuestion int) error {
	if currentQuestion < 0 || currentQuestion >= MaxQuestionsPerTest {
		return NewValidationError("current_question", fmt.Sprintf("must be between 0 and %d", MaxQuestionsPerTest-1), currentQuestion)
	}
	if !s.tracker.UpdateProgress(testID, studentID, currentQuestion) {
		return ErrSessionNotFound
	}
	return nil
}

// LiveStatus lists the students currently sitting testID.
func (s *deliveryService) LiveStatus(ctx context.Context, testID string) (*LiveStatusResponse, error) {
	if _, err := s.repo.Test().GetByID(ctx, testID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to load test: %w", err)
	}

	sessions := s.tracker.ListLive(testID)
	return &LiveStatusResponse{
		TestID:      testID,
		ActiveCount: len(sessions),
		Sessions:    sessions,
	}, nil
}

func (s *deliveryService) loadStudent(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	return student, nil
}
