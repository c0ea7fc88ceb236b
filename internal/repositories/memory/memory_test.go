package memory

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) repositories.Repository {
	t.Helper()
	return NewRepository()
}

func TestStudentMemory_DuplicateRegisterNumber(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Student().Create(ctx, &models.Student{ID: "s1", RegisterNumber: "REG-1"}))
	err := repo.Student().Create(ctx, &models.Student{ID: "s2", RegisterNumber: "REG-1"})
	assert.True(t, repositories.IsDuplicateKeyError(err))

	_, err = repo.Student().GetByID(ctx, "s2")
	assert.True(t, repositories.IsNotFoundError(err))

	found, err := repo.Student().GetByRegisterNumber(ctx, "REG-1")
	require.NoError(t, err)
	assert.Equal(t, "s1", found.ID)
}

func TestStaffMemory_GetByEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Staff().Create(ctx, &models.Staff{ID: "t1", Email: "a@college.edu"}))

	exists, err := repo.Staff().ExistsByEmail(ctx, "a@college.edu")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Staff().GetByEmail(ctx, "missing@college.edu")
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestTestMemory_ListOpenForStudent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	tests := []*models.Test{
		{ID: "open", Department: "Computer Engineering", Year: 2, IsActive: true, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)},
		{ID: "future", Department: "Computer Engineering", Year: 2, IsActive: true, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
		{ID: "past", Department: "Computer Engineering", Year: 2, IsActive: true, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour)},
		{ID: "other-year", Department: "Computer Engineering", Year: 3, IsActive: true, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)},
		{ID: "inactive", Department: "Computer Engineering", Year: 2, IsActive: false, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)},
	}
	for _, test := range tests {
		require.NoError(t, repo.Test().Create(ctx, test))
	}

	department := "Computer Engineering"
	year := 2
	found, err := repo.Test().List(ctx, repositories.TestFilters{
		Department: &department,
		Year:       &year,
		ActiveOnly: true,
		OpenAt:     &now,
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "open", found[0].ID)
}

func TestQuestionMemory_GetByIDsSkipsUnknown(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Question().Create(ctx, &models.Question{ID: "q1", SubjectID: "sub"}))
	require.NoError(t, repo.Question().Create(ctx, &models.Question{ID: "q2", SubjectID: "sub"}))

	found, err := repo.Question().GetByIDs(ctx, []string{"q1", "ghost", "q2"})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestAttemptMemory_ListByTest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Attempt().Create(ctx, &models.TestAttempt{ID: "a2", TestID: "t1", SubmittedAt: now}))
	require.NoError(t, repo.Attempt().Create(ctx, &models.TestAttempt{ID: "a1", TestID: "t1", SubmittedAt: now.Add(-time.Minute)}))
	require.NoError(t, repo.Attempt().Create(ctx, &models.TestAttempt{ID: "a3", TestID: "t2", SubmittedAt: now}))

	testID := "t1"
	found, err := repo.Attempt().List(ctx, repositories.AttemptFilters{TestID: &testID})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "a1", found[0].ID)
	assert.Equal(t, "a2", found[1].ID)
}
