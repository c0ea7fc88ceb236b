package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/cache"
	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/SAP-F-2025/exam-service/internal/session"
	"github.com/SAP-F-2025/exam-service/internal/validator"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const publishTimeout = 10 * time.Second

type attemptService struct {
	repo      repositories.Repository
	tracker   *session.Tracker
	cache     cache.CacheService
	notifier  NotificationEventService
	validator *validator.Validator
	logger    *slog.Logger
	opLogger  *ServiceLogger
	now       func() time.Time
}

func NewAttemptService(
	repo repositories.Repository,
	tracker *session.Tracker,
	cacheService cache.CacheService,
	notifier NotificationEventService,
	validator *validator.Validator,
	logger *slog.Logger,
	now func() time.Time,
) AttemptService {
	return &attemptService{
		repo:      repo,
		tracker:   tracker,
		cache:     cacheService,
		notifier:  notifier,
		validator: validator,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, "attempt"),
		now:       now,
	}
}

// Submit grades and stores an attempt. The test window is not re-checked here.
func (s *attemptService) Submit(ctx context.Context, req *SubmitTestRequest, studentID string) (resp *SubmitTestResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "submit_test", studentID)
	defer func() {
		id := ""
		if resp != nil {
			id = resp.AttemptID
		}
		op.LogResult(id, "attempt", err)
	}()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	test, err := s.repo.Test().GetByID(ctx, req.TestID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to load test: %w", err)
	}

	ids := make([]string, 0, len(req.Answers))
	for id := range req.Answers {
		ids = append(ids, id)
	}
	resolved, err := s.repo.Question().GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve questions: %w", err)
	}

	result := ScoreAnswers(resolved, req.Answers)

	now := s.now().UTC()
	completion := now
	if req.CompletionTime != nil {
		completion = req.CompletionTime.UTC()
	}

	attempt := &models.TestAttempt{
		ID:              uuid.NewString(),
		TestID:          test.ID,
		StudentID:       student.ID,
		Answers:         req.Answers,
		Score:           result.Score,
		TotalQuestions:  result.TotalQuestions,
		TabSwitches:     req.TabSwitches,
		IsMalpractice:   req.IsMalpractice,
		UnitPerformance: datatypes.NewJSONType(result.UnitPerformance),
		CompletionTime:  completion,
		SubmittedAt:     now,
	}
	if attempt.Answers == nil {
		attempt.Answers = map[string]int{}
	}

	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	s.tracker.MarkSubmitted(test.ID, student.ID)

	if err := s.cache.Delete(ctx, insightsCacheKey(test.ID)); err != nil {
		s.logger.Warn("Failed to invalidate insights cache", "test_id", test.ID, "error", err)
	}

	s.notifySubmitted(attempt, test, student)

	percentage := Percentage(attempt.Score, attempt.TotalQuestions)
	return &SubmitTestResponse{
		Message:         "Test submitted successfully",
		AttemptID:       attempt.ID,
		Score:           attempt.Score,
		Total:           attempt.TotalQuestions,
		Percentage:      percentage,
		IsMalpractice:   attempt.IsMalpractice,
		UnitPerformance: UnitBreakdown(result.UnitPerformance),
	}, nil
}

// notifySubmitted hands the event off without waiting for it.
func (s *attemptService) notifySubmitted(attempt *models.TestAttempt, test *models.Test, student *models.Student) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.notifier.NotifyAttemptSubmitted(ctx, attempt, test, student); err != nil {
			s.logger.Error("Submission notification failed",
				"attempt_id", attempt.ID,
				"error", err)
		}
	}()
}

// GetResult returns the per-question review of the caller's own attempt.
func (s *attemptService) GetResult(ctx context.Context, attemptID, studentID string) (*AttemptResultResponse, error) {
	attempt, err := s.ownAttempt(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(attempt.Answers))
	for id := range attempt.Answers {
		ids = append(ids, id)
	}
	questions, err := s.repo.Question().GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	reviews := make([]QuestionReview, 0, len(questions))
	for _, q := range questions {
		selected, answered := attempt.Answers[q.ID]
		review := QuestionReview{
			QuestionID:    q.ID,
			Question:      q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Units:         unitsOrEmpty(q.Units),
		}
		if answered {
			answer := selected
			review.StudentAnswer = &answer
			review.IsCorrect = selected == q.CorrectAnswer
		}
		reviews = append(reviews, review)
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].QuestionID < reviews[j].QuestionID })

	return &AttemptResultResponse{
		AttemptID:     attempt.ID,
		TestID:        attempt.TestID,
		Score:         attempt.Score,
		Total:         attempt.TotalQuestions,
		Percentage:    Percentage(attempt.Score, attempt.TotalQuestions),
		IsMalpractice: attempt.IsMalpractice,
		TabSwitches:   attempt.TabSwitches,
		SubmittedAt:   attempt.SubmittedAt,
		Results:       reviews,
	}, nil
}

// GetInsights returns the per-unit breakdown of the caller's own attempt.
func (s *attemptService) GetInsights(ctx context.Context, attemptID, studentID string) (*AttemptInsightsResponse, error) {
	attempt, err := s.ownAttempt(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}

	return &AttemptInsightsResponse{
		AttemptID:  attempt.ID,
		TestID:     attempt.TestID,
		Score:      attempt.Score,
		Total:      attempt.TotalQuestions,
		Percentage: Percentage(attempt.Score, attempt.TotalQuestions),
		Units:      UnitBreakdown(attempt.Units()),
	}, nil
}

func (s *attemptService) ownAttempt(ctx context.Context, attemptID, studentID string) (*models.TestAttempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to load attempt: %w", err)
	}
	if attempt.StudentID != studentID {
		return nil, NewPermissionError(studentID, attemptID, "attempt", "read", "attempt belongs to another student")
	}
	return attempt, nil
}
