package service

import (
	"math"

	"roadcode_backend/internal/model"
)

// GradeResult is the outcome of grading one exam paper.
type GradeResult struct {
	Correct int  `json:"correctAnswers"`
	Total   int  `json:"totalQuestions"`
	Score   int  `json:"score"`
	Passed  bool `json:"passed"`
}

// IsCorrect reports whether the selected option is one of the question's
// correct options. A question may carry several correct flags; matching any
// of them counts. An empty selection is always wrong.
func IsCorrect(q *model.Question, selectedOptionID string) bool {
	if q == nil || selectedOptionID == "" {
		return false
	}
	for _, opt := range q.Options {
		if opt.ID == selectedOptionID && opt.IsCorrect {
			return true
		}
	}
	return false
}

// Grade scores a finished paper. Total is the paper length, so unanswered
// questions count against the user. The score is the rounded percentage of
// correct answers; passing requires reaching the absolute correct-answer
// threshold, which deliberately is not a percentage of the paper — the two
// diverge whenever the paper is shorter than the configured size.
func Grade(paper model.Paper, answers map[string]string, questions map[string]*model.Question, passThreshold int) GradeResult {
	result := GradeResult{Total: len(paper)}

	for _, questionID := range paper {
		selected, ok := answers[questionID]
		if !ok {
			continue
		}
		if IsCorrect(questions[questionID], selected) {
			result.Correct++
		}
	}

	if result.Total > 0 {
		result.Score = int(math.Round(float64(result.Correct) / float64(result.Total) * 100))
	}
	result.Passed = result.Correct >= passThreshold

	return result
}
