package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/events"
	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories/memory"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationEventService_NotifyAttemptSubmitted(t *testing.T) {
	logger := utils.NewDiscardLogger()
	publisher := events.NewMockEventPublisher(logger)
	repo := memory.NewRepository()
	ctx := context.Background()

	subject := &models.Subject{ID: "sub-1", Name: "Data Structures", CourseCode: "CS301"}
	require.NoError(t, repo.Subject().Create(ctx, subject))

	email := "asha@example.com"
	student := &models.Student{ID: "stu-1", Name: "Asha", Email: &email}
	test := &models.Test{ID: "test-1", SubjectID: subject.ID}
	attempt := &models.TestAttempt{ID: "att-1", Score: 1, TotalQuestions: 2, SubmittedAt: time.Now()}

	service := NewNotificationEventService(repo, publisher, logger)

	t.Run("publishes envelope", func(t *testing.T) {
		require.NoError(t, service.NotifyAttemptSubmitted(ctx, attempt, test, student))

		published := publisher.GetPublishedEvents()
		require.Len(t, published, 1)

		event := published[0]
		assert.Equal(t, events.EventAttemptSubmitted, event.Type)
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, "exam-service", event.Source)
		assert.Equal(t, "1.0", event.Version)
		assert.False(t, event.Timestamp.IsZero())

		data, ok := event.Data.(events.AttemptSubmittedEvent)
		require.True(t, ok)
		assert.Equal(t, "att-1", data.AttemptID)
		assert.Equal(t, "Data Structures", data.SubjectName)
		assert.Equal(t, "CS301", data.CourseCode)
		assert.Equal(t, email, data.StudentEmail)
		assert.Equal(t, 50.0, data.Percentage)
	})

	t.Run("missing subject still publishes", func(t *testing.T) {
		publisher.ClearEvents()

		orphan := &models.Test{ID: "test-2", SubjectID: "gone"}
		require.NoError(t, service.NotifyAttemptSubmitted(ctx, attempt, orphan, &models.Student{ID: "stu-2"}))

		published := publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		data := published[0].Data.(events.AttemptSubmittedEvent)
		assert.Empty(t, data.SubjectName)
		assert.Empty(t, data.StudentEmail)
	})

	t.Run("publisher failure is returned", func(t *testing.T) {
		publisher.ClearEvents()
		publisher.Err = errors.New("broker down")
		defer func() { publisher.Err = nil }()

		err := service.NotifyAttemptSubmitted(ctx, attempt, test, student)
		assert.ErrorContains(t, err, "broker down")
	})
}
