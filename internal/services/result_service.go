package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/cache"
	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const (
	insightsCachePrefix = "insights:"
	resultsSheetName    = "Results"
)

func insightsCacheKey(testID string) string {
	return insightsCachePrefix + testID
}

type resultService struct {
	repo     repositories.Repository
	cache    cache.CacheService
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewResultService(repo repositories.Repository, cacheService cache.CacheService, cacheTTL time.Duration, logger *slog.Logger) ResultService {
	return &resultService{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// TestResults joins every attempt of testID with its student. Attempts whose
// student no longer exists are left out.
func (s *resultService) TestResults(ctx context.Context, testID string) (*TestResultsResponse, error) {
	attempts, err := s.attemptsOf(ctx, testID)
	if err != nil {
		return nil, err
	}

	studentIDs := make([]string, 0, len(attempts))
	for _, attempt := range attempts {
		studentIDs = append(studentIDs, attempt.StudentID)
	}
	students, err := s.repo.Student().GetByIDs(ctx, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}
	byID := make(map[string]*models.Student, len(students))
	for _, student := range students {
		byID[student.ID] = student
	}

	roster := make([]RosterEntry, 0, len(attempts))
	for _, attempt := range attempts {
		student, ok := byID[attempt.StudentID]
		if !ok {
			continue
		}
		roster = append(roster, RosterEntry{
			AttemptID:      attempt.ID,
			StudentID:      student.ID,
			StudentName:    student.Name,
			RegisterNumber: student.RegisterNumber,
			RollNumber:     student.RollNumber,
			Department:     student.Department,
			Score:          attempt.Score,
			Total:          attempt.TotalQuestions,
			Percentage:     Percentage(attempt.Score, attempt.TotalQuestions),
			IsMalpractice:  attempt.IsMalpractice,
			TabSwitches:    attempt.TabSwitches,
			SubmittedAt:    attempt.SubmittedAt,
		})
	}

	return &TestResultsResponse{TestID: testID, Results: roster}, nil
}

func (s *resultService) TestInsights(ctx context.Context, testID string) (*TestInsights, error) {
	key := insightsCacheKey(testID)

	var cached TestInsights
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	attempts, err := s.attemptsOf(ctx, testID)
	if err != nil {
		return nil, err
	}

	report := ComputeTestInsights(testID, attempts)
	if err := s.cache.Set(ctx, key, report, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache test insights", "test_id", testID, "error", err)
	}
	return report, nil
}

// ExportResults renders the roster of testID as an xlsx workbook.
func (s *resultService) ExportResults(ctx context.Context, testID string) ([]byte, error) {
	results, err := s.TestResults(ctx, testID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(resultsSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{
		"Student Name", "Register Number", "Roll Number", "Department", "Score",
		"Total", "Percentage", "Malpractice", "Tab Switches", "Submitted At",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(resultsSheetName, cell, header)
	}

	for rowIndex, entry := range results.Results {
		row := []interface{}{
			entry.StudentName, entry.RegisterNumber, entry.RollNumber, entry.Department, entry.Score,
			entry.Total, entry.Percentage, entry.IsMalpractice, entry.TabSwitches, entry.SubmittedAt.Format(time.RFC3339),
		}
		for colIndex, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			f.SetCellValue(resultsSheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *resultService) attemptsOf(ctx context.Context, testID string) ([]*models.TestAttempt, error) {
	if _, err := s.repo.Test().GetByID(ctx, testID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to load test: %w", err)
	}

	attempts, err := s.repo.Attempt().List(ctx, repositories.AttemptFilters{TestID: &testID})
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return attempts, nil
}
