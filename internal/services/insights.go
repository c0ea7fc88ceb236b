package services

import (
	"math"
	"sort"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// UnitInsight is the aggregate for one unit.
type UnitInsight struct {
	Unit       string  `json:"unit"`
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// TestInsights summarises every attempt of a test. HasAttempts is false for
// the empty state, in which case the numeric fields are all zero.
type TestInsights struct {
	TestID            string        `json:"test_id"`
	HasAttempts       bool          `json:"has_attempts"`
	TotalAttempts     int           `json:"total_attempts"`
	AverageScore      float64       `json:"average_score"`
	AveragePercentage float64       `json:"average_percentage"`
	MalpracticeCount  int           `json:"malpractice_count"`
	// MalpracticeRate is the flagged fraction of attempts, in [0, 1].
	MalpracticeRate   float64       `json:"malpractice_rate"`
	Units             []UnitInsight `json:"units"`
}

// ComputeTestInsights aggregates attempts. Unit percentages pool the counters
// of all attempts, so they are weighted by question count rather than by student.
func ComputeTestInsights(testID string, attempts []*models.TestAttempt) *TestInsights {
	report := &TestInsights{TestID: testID, Units: []UnitInsight{}}
	if len(attempts) == 0 {
		return report
	}

	report.HasAttempts = true
	report.TotalAttempts = len(attempts)

	var scoreSum, percentageSum float64
	pooled := models.UnitPerformance{}
	for _, attempt := range attempts {
		scoreSum += float64(attempt.Score)
		percentageSum += Percentage(attempt.Score, attempt.TotalQuestions)
		if attempt.IsMalpractice {
			report.MalpracticeCount++
		}
		for unit, counter := range attempt.Units() {
			sum := pooled[unit]
			sum.Correct += counter.Correct
			sum.Total += counter.Total
			pooled[unit] = sum
		}
	}

	n := float64(len(attempts))
	report.AverageScore = round2(scoreSum / n)
	report.AveragePercentage = round2(percentageSum / n)
	report.MalpracticeRate = round4(float64(report.MalpracticeCount) / n)
	report.Units = UnitBreakdown(pooled)

	return report
}

// UnitBreakdown turns counters into a unit-ordered list with percentages.
func UnitBreakdown(units models.UnitPerformance) []UnitInsight {
	out := make([]UnitInsight, 0, len(units))
	for unit, counter := range units {
		out = append(out, UnitInsight{
			Unit:       unit,
			Correct:    counter.Correct,
			Total:      counter.Total,
			Percentage: Percentage(counter.Correct, counter.Total),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Unit < out[j].Unit })
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
