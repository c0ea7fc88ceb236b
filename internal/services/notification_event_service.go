package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/exam-service/internal/events"
	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
)

// NotificationEventService turns domain changes into published notification events.
type NotificationEventService interface {
	NotifyAttemptSubmitted(ctx context.Context, attempt *models.TestAttempt, test *models.Test, student *models.Student) error
}

type notificationEventService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewNotificationEventService(
	repo repositories.Repository,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
) NotificationEventService {
	return &notificationEventService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *notificationEventService) NotifyAttemptSubmitted(ctx context.Context, attempt *models.TestAttempt, test *models.Test, student *models.Student) error {
	s.logger.Info("Publishing attempt submitted event", "attempt_id", attempt.ID)

	payload := events.AttemptSubmittedEvent{
		AttemptID:      attempt.ID,
		TestID:         test.ID,
		StudentID:      student.ID,
		StudentName:    student.Name,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     Percentage(attempt.Score, attempt.TotalQuestions),
		IsMalpractice:  attempt.IsMalpractice,
		SubmittedAt:    attempt.SubmittedAt,
	}
	if student.Email != nil {
		payload.StudentEmail = *student.Email
	}

	// The subject only decorates the mail, so a lookup failure is not fatal.
	if subject, err := s.repo.Subject().GetByID(ctx, test.SubjectID); err == nil {
		payload.SubjectName = subject.Name
		payload.CourseCode = subject.CourseCode
	} else {
		s.logger.Warn("Subject lookup failed for notification", "subject_id", test.SubjectID, "error", err)
	}

	if err := s.eventPublisher.PublishNotificationEvent(ctx, events.NewAttemptSubmittedEvent(payload)); err != nil {
		return fmt.Errorf("failed to publish attempt submitted event: %w", err)
	}
	return nil
}
