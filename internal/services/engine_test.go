package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func makeQuestions(n int, units ...string) []*models.Question {
	questions := make([]*models.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, &models.Question{
			ID:            fmt.Sprintf("q-%03d", i),
			QuestionText:  fmt.Sprintf("Question %d", i),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
			Explanation:   "because",
			Units:         units,
		})
	}
	return questions
}

func openTest(now time.Time) *models.Test {
	return &models.Test{
		ID:         "test-1",
		StartTime:  now.Add(-time.Hour),
		EndTime:    now.Add(time.Hour),
		Department: "Computer Engineering",
		Year:       2,
		IsActive:   true,
	}
}

func TestCheckEligibility(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	student := &models.Student{ID: "s1", Department: "Computer Engineering", Year: 2}

	tests := []struct {
		name   string
		mutate func(*models.Test)
		nilled bool
		reason EligibilityReason
	}{
		{name: "eligible"},
		{name: "missing test", nilled: true, reason: EligibilityNotFound},
		{name: "inactive", mutate: func(tt *models.Test) { tt.IsActive = false }, reason: EligibilityNotFound},
		{name: "not yet open", mutate: func(tt *models.Test) { tt.StartTime = now.Add(time.Minute) }, reason: EligibilityNotYetOpen},
		{name: "expired", mutate: func(tt *models.Test) { tt.EndTime = now.Add(-time.Minute) }, reason: EligibilityExpired},
		{name: "other department", mutate: func(tt *models.Test) { tt.Department = "Civil Engineering" }, reason: EligibilityDepartmentMismatch},
		{name: "other year", mutate: func(tt *models.Test) { tt.Year = 3 }, reason: EligibilityYearMismatch},
		{name: "start boundary inclusive", mutate: func(tt *models.Test) { tt.StartTime = now }},
		{name: "end boundary inclusive", mutate: func(tt *models.Test) { tt.EndTime = now }},
		{name: "window checked before audience", mutate: func(tt *models.Test) {
			tt.EndTime = now.Add(-time.Minute)
			tt.Department = "Civil Engineering"
		}, reason: EligibilityExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test := openTest(now)
			if tt.mutate != nil {
				tt.mutate(test)
			}
			if tt.nilled {
				test = nil
			}

			err := CheckEligibility(test, student, now)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}

			var ee *EligibilityError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, tt.reason, ee.Reason)
		})
	}
}

func TestCheckEligibility_ErrorClasses(t *testing.T) {
	now := time.Now()
	student := &models.Student{Department: "Computer Engineering", Year: 2}

	err := CheckEligibility(nil, student, now)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsForbidden(err))

	test := openTest(now)
	test.Year = 4
	err = CheckEligibility(test, student, now)
	assert.True(t, IsForbidden(err))
	assert.False(t, IsNotFound(err))
}

func TestSelectQuestions_Deterministic(t *testing.T) {
	questions := makeQuestions(40, "Unit 1")

	first := SelectQuestions(questions, "student-a")
	second := SelectQuestions(questions, "student-a")
	assert.Equal(t, first, second)

	reversed := make([]*models.Question, len(questions))
	for i, q := range questions {
		reversed[len(questions)-1-i] = q
	}
	assert.Equal(t, first, SelectQuestions(reversed, "student-a"), "input order must not matter")

	other := SelectQuestions(questions, "student-b")
	assert.NotEqual(t, ids(first), ids(other))
}

func TestSelectQuestions_Cap(t *testing.T) {
	views := SelectQuestions(makeQuestions(40), "student-a")
	require.Len(t, views, MaxQuestionsPerTest)

	seen := map[string]bool{}
	for _, v := range views {
		assert.False(t, seen[v.ID], "duplicate question %s", v.ID)
		seen[v.ID] = true
	}

	assert.Len(t, SelectQuestions(makeQuestions(10), "student-a"), 10)
	assert.Empty(t, SelectQuestions(nil, "student-a"))
}

func TestSelectQuestions_DoesNotMutateInput(t *testing.T) {
	questions := makeQuestions(5)
	before := ids(toViews(questions))
	SelectQuestions(questions, "student-a")
	assert.Equal(t, before, ids(toViews(questions)))
}

func TestSelectQuestions_HidesAnswers(t *testing.T) {
	views := SelectQuestions(makeQuestions(3), "student-a")
	for _, v := range views {
		assert.NotEmpty(t, v.QuestionText)
		assert.Len(t, v.Options, 4)
		assert.NotNil(t, v.Units)
	}
}

func TestScoreAnswers(t *testing.T) {
	q1 := &models.Question{ID: "q1", CorrectAnswer: 1, Units: []string{"Unit 1"}}
	q2 := &models.Question{ID: "q2", CorrectAnswer: 2, Units: []string{"Unit 1", "Unit 2"}}
	q3 := &models.Question{ID: "q3", CorrectAnswer: 0}

	answers := map[string]int{"q1": 1, "q2": 3, "q3": 0, "ghost": 2}
	result := ScoreAnswers([]*models.Question{q1, q2, q3}, answers)

	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, models.UnitScore{Correct: 1, Total: 2}, result.UnitPerformance["Unit 1"])
	assert.Equal(t, models.UnitScore{Correct: 0, Total: 1}, result.UnitPerformance["Unit 2"])
	assert.Len(t, result.UnitPerformance, 2)
}

func TestScoreAnswers_IgnoresUnansweredAndDuplicates(t *testing.T) {
	q1 := &models.Question{ID: "q1", CorrectAnswer: 1}
	result := ScoreAnswers([]*models.Question{q1, q1, {ID: "q2"}}, map[string]int{"q1": 1})

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 1, result.TotalQuestions)
	assert.NotNil(t, result.UnitPerformance)
}

func TestScoreAnswers_Empty(t *testing.T) {
	result := ScoreAnswers(nil, map[string]int{})
	assert.Zero(t, result.Score)
	assert.Zero(t, result.TotalQuestions)
	assert.Zero(t, Percentage(result.Score, result.TotalQuestions))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 100.0, Percentage(5, 5))
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 33.33, Percentage(1, 3))
}

func TestComputeTestInsights(t *testing.T) {
	attempts := []*models.TestAttempt{
		{
			Score: 1, TotalQuestions: 1,
			UnitPerformance: datatypes.NewJSONType(models.UnitPerformance{"Unit 1": {Correct: 1, Total: 1}}),
		},
		{
			Score: 2, TotalQuestions: 4, IsMalpractice: true,
			UnitPerformance: datatypes.NewJSONType(models.UnitPerformance{
				"Unit 1": {Correct: 1, Total: 3},
				"Unit 2": {Correct: 1, Total: 1},
			}),
		},
	}

	report := ComputeTestInsights("t1", attempts)

	assert.True(t, report.HasAttempts)
	assert.Equal(t, 2, report.TotalAttempts)
	assert.Equal(t, 1.5, report.AverageScore)
	assert.Equal(t, 75.0, report.AveragePercentage)
	assert.Equal(t, 1, report.MalpracticeCount)
	assert.Equal(t, 0.5, report.MalpracticeRate)

	require.Len(t, report.Units, 2)
	assert.Equal(t, UnitInsight{Unit: "Unit 1", Correct: 2, Total: 4, Percentage: 50}, report.Units[0])
	assert.Equal(t, UnitInsight{Unit: "Unit 2", Correct: 1, Total: 1, Percentage: 100}, report.Units[1])
}

func TestComputeTestInsights_Empty(t *testing.T) {
	report := ComputeTestInsights("t1", nil)

	assert.False(t, report.HasAttempts)
	assert.Equal(t, "t1", report.TestID)
	assert.Zero(t, report.TotalAttempts)
	assert.Zero(t, report.AverageScore)
	assert.NotNil(t, report.Units)
	assert.Empty(t, report.Units)
}

func TestComputeTestInsights_MalpracticeRateIsFraction(t *testing.T) {
	attempt := func(flagged bool) *models.TestAttempt {
		return &models.TestAttempt{Score: 1, TotalQuestions: 2, IsMalpractice: flagged}
	}

	tests := []struct {
		name     string
		attempts []*models.TestAttempt
		expected float64
	}{
		{"half flagged", []*models.TestAttempt{attempt(true), attempt(false)}, 0.5},
		{"one of three", []*models.TestAttempt{attempt(true), attempt(false), attempt(false)}, 0.3333},
		{"all flagged", []*models.TestAttempt{attempt(true), attempt(true)}, 1},
		{"none flagged", []*models.TestAttempt{attempt(false)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ComputeTestInsights("t1", tt.attempts)
			assert.Equal(t, tt.expected, report.MalpracticeRate)
			assert.LessOrEqual(t, report.MalpracticeRate, 1.0)
		})
	}
}

func ids(views []QuestionView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

func toViews(questions []*models.Question) []QuestionView {
	out := make([]QuestionView, len(questions))
	for i, q := range questions {
		out[i] = QuestionView{ID: q.ID}
	}
	return out
}
