package service_test

import (
	"fmt"
	"testing"

	"roadcode_backend/internal/model"
	"roadcode_backend/internal/service"
)

func TestIsCorrect(t *testing.T) {
	question := &model.Question{
		UUIDBase: model.UUIDBase{ID: "q1"},
		Options: model.QuestionOptions{
			{ID: "a", Text: "first", IsCorrect: true},
			{ID: "b", Text: "second"},
			{ID: "c", Text: "third", IsCorrect: true},
		},
	}

	tests := []struct {
		name     string
		question *model.Question
		selected string
		want     bool
	}{
		{name: "correct option", question: question, selected: "a", want: true},
		{name: "second correct option", question: question, selected: "c", want: true},
		{name: "wrong option", question: question, selected: "b", want: false},
		{name: "unknown option", question: question, selected: "z", want: false},
		{name: "empty selection", question: question, selected: "", want: false},
		{name: "nil question", question: nil, selected: "a", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := service.IsCorrect(tt.question, tt.selected); got != tt.want {
				t.Errorf("IsCorrect(%q) = %v, want %v", tt.selected, got, tt.want)
			}
		})
	}
}

func gradeFixture(size int) (model.Paper, map[string]*model.Question) {
	paper := make(model.Paper, size)
	questions := make(map[string]*model.Question, size)
	for i := 0; i < size; i++ {
		q := playableQuestion(fmt.Sprintf("q%03d", i), "priority")
		paper[i] = q.ID
		questions[q.ID] = &q
	}
	return paper, questions
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name       string
		paperSize  int
		correct    int
		wrong      int
		wantScore  int
		wantPassed bool
	}{
		{name: "perfect paper", paperSize: 30, correct: 30, wantScore: 100, wantPassed: true},
		{name: "one short of the threshold", paperSize: 30, correct: 24, wrong: 6, wantScore: 80, wantPassed: false},
		{name: "exactly at the threshold", paperSize: 30, correct: 25, wrong: 5, wantScore: 83, wantPassed: true},
		{name: "unanswered count against the total", paperSize: 30, correct: 25, wrong: 0, wantScore: 83, wantPassed: true},
		{name: "all wrong", paperSize: 30, correct: 0, wrong: 30, wantScore: 0, wantPassed: false},
		{name: "short paper cannot pass an absolute threshold", paperSize: 10, correct: 10, wantScore: 100, wantPassed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paper, questions := gradeFixture(tt.paperSize)

			answers := make(map[string]string)
			for i, questionID := range paper {
				switch {
				case i < tt.correct:
					answers[questionID] = questionID + "-a"
				case i < tt.correct+tt.wrong:
					answers[questionID] = questionID + "-b"
				}
			}

			result := service.Grade(paper, answers, questions, 25)

			if result.Total != tt.paperSize {
				t.Errorf("Total = %d, want %d", result.Total, tt.paperSize)
			}
			if result.Correct != tt.correct {
				t.Errorf("Correct = %d, want %d", result.Correct, tt.correct)
			}
			if result.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", result.Score, tt.wantScore)
			}
			if result.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", result.Passed, tt.wantPassed)
			}
		})
	}
}

func TestGrade_EmptyPaper(t *testing.T) {
	result := service.Grade(nil, nil, nil, 25)
	if result.Total != 0 || result.Correct != 0 || result.Score != 0 {
		t.Errorf("empty paper graded as %+v, want all zero", result)
	}
	if result.Passed {
		t.Error("empty paper must not pass")
	}
}

func TestGrade_AnswerToRemovedQuestion(t *testing.T) {
	paper, questions := gradeFixture(3)
	// The question was deleted from the bank after the paper was drawn.
	delete(questions, paper[0])

	answers := map[string]string{
		paper[0]: paper[0] + "-a",
		paper[1]: paper[1] + "-a",
	}

	result := service.Grade(paper, answers, questions, 25)
	if result.Correct != 1 {
		t.Errorf("Correct = %d, want 1: a removed question cannot be graded correct", result.Correct)
	}
	if result.Total != 3 {
		t.Errorf("Total = %d, want 3: the paper length is fixed", result.Total)
	}
}

func TestGrade_Deterministic(t *testing.T) {
	paper, questions := gradeFixture(30)
	answers := make(map[string]string)
	for i, questionID := range paper {
		if i%2 == 0 {
			answers[questionID] = questionID + "-a"
		}
	}

	first := service.Grade(paper, answers, questions, 25)
	second := service.Grade(paper, answers, questions, 25)
	if first != second {
		t.Errorf("Grade is not deterministic: %+v != %+v", first, second)
	}
}
