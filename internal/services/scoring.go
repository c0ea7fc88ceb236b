package services

import (
	"math"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// ScoreResult is the outcome of grading one set of answers.
type ScoreResult struct {
	Score           int
	TotalQuestions  int
	UnitPerformance models.UnitPerformance
}

// ScoreAnswers grades answers against the questions resolved from its keys.
// Keys with no resolved question are ignored, so TotalQuestions counts resolved
// questions only. A question tagged with several units counts once in each.
func ScoreAnswers(resolved []*models.Question, answers map[string]int) ScoreResult {
	result := ScoreResult{UnitPerformance: models.UnitPerformance{}}
	seen := make(map[string]bool, len(resolved))

	for _, q := range resolved {
		selected, answered := answers[q.ID]
		if !answered || seen[q.ID] {
			continue
		}
		seen[q.ID] = true

		correct := selected == q.CorrectAnswer
		result.TotalQuestions++
		if correct {
			result.Score++
		}

		for _, unit := range q.Units {
			counter := result.UnitPerformance[unit]
			counter.Total++
			if correct {
				counter.Correct++
			}
			result.UnitPerformance[unit] = counter
		}
	}

	return result
}

// Percentage returns part/total*100 rounded to two decimals, or 0 when total is 0.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
