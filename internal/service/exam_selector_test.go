package service_test

import (
	"math/rand"
	"testing"

	"roadcode_backend/internal/model"
	"roadcode_backend/internal/service"
)

func unplayableQuestion(id string) model.Question {
	return model.Question{
		UUIDBase: model.UUIDBase{ID: id},
		Text:     "Question " + id,
		Category: "misc",
		Options: model.QuestionOptions{
			{ID: id + "-a", Text: "A"},
			{ID: id + "-b", Text: "B"},
		},
	}
}

func TestSelectQuestions_SizeCaps(t *testing.T) {
	tests := []struct {
		name        string
		poolSize    int
		targetCount int
		want        int
	}{
		{name: "pool larger than target", poolSize: 50, targetCount: 30, want: 30},
		{name: "pool smaller than target", poolSize: 12, targetCount: 30, want: 12},
		{name: "pool equals target", poolSize: 30, targetCount: 30, want: 30},
		{name: "single question", poolSize: 1, targetCount: 30, want: 1},
		{name: "zero target", poolSize: 10, targetCount: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			selected := service.SelectQuestions(buildPool(tt.poolSize, "priority"), nil, tt.targetCount, 5, rng)
			if len(selected) != tt.want {
				t.Errorf("expected %d questions, got %d", tt.want, len(selected))
			}
		})
	}
}

func TestSelectQuestions_Distinct(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	selected := service.SelectQuestions(buildPool(100, "priority"), nil, 30, 5, rng)

	seen := make(map[string]bool, len(selected))
	for _, q := range selected {
		if seen[q.ID] {
			t.Errorf("question %s selected twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSelectQuestions_FiltersUnplayable(t *testing.T) {
	pool := buildPool(5, "priority")
	pool = append(pool, unplayableQuestion("bad1"), unplayableQuestion("bad2"))
	pool = append(pool, model.Question{
		UUIDBase: model.UUIDBase{ID: "single"},
		Options:  model.QuestionOptions{{ID: "single-a", IsCorrect: true}},
	})

	rng := rand.New(rand.NewSource(7))
	selected := service.SelectQuestions(pool, nil, 30, 5, rng)

	if len(selected) != 5 {
		t.Fatalf("expected only the 5 playable questions, got %d", len(selected))
	}
	for _, q := range selected {
		if !q.Playable() {
			t.Errorf("unplayable question %s made it onto the paper", q.ID)
		}
	}
}

func TestSelectQuestions_FallbackWhenNothingPlayable(t *testing.T) {
	pool := []model.Question{unplayableQuestion("bad1"), unplayableQuestion("bad2")}

	rng := rand.New(rand.NewSource(7))
	selected := service.SelectQuestions(pool, nil, 30, 5, rng)

	if len(selected) != 2 {
		t.Errorf("expected the unfiltered pool as fallback, got %d questions", len(selected))
	}
}

func TestSelectQuestions_EmptyPool(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	if selected := service.SelectQuestions(nil, map[string]int{"q": 3}, 30, 5, rng); len(selected) != 0 {
		t.Errorf("expected no questions from an empty pool, got %d", len(selected))
	}
}

// An error-prone question should appear on papers markedly more often than an
// unweighted one. This is a statistical property, so it runs many trials with
// a fixed seed.
func TestSelectQuestions_ErrorBias(t *testing.T) {
	pool := buildPool(60, "priority")
	weights := map[string]int{"q000": 4}
	rng := rand.New(rand.NewSource(99))

	const trials = 1000
	var weightedHits, plainHits int
	for i := 0; i < trials; i++ {
		for _, q := range service.SelectQuestions(pool, weights, 10, 5, rng) {
			switch q.ID {
			case "q000":
				weightedHits++
			case "q001":
				plainHits++
			}
		}
	}

	// With weight 21 vs 1 the weighted question lands on nearly every paper;
	// a 3x margin keeps the assertion far from the noise floor.
	if weightedHits < plainHits*3 {
		t.Errorf("error-weighted question selected %d times vs %d for an unweighted one; expected a strong bias", weightedHits, plainHits)
	}
}

func TestSelectQuestions_ZeroBiasIgnoresWeights(t *testing.T) {
	pool := buildPool(60, "priority")
	weights := map[string]int{"q000": 100}
	rng := rand.New(rand.NewSource(5))

	const trials = 500
	var weightedHits int
	for i := 0; i < trials; i++ {
		for _, q := range service.SelectQuestions(pool, weights, 10, 0, rng) {
			if q.ID == "q000" {
				weightedHits++
			}
		}
	}

	// Expected rate is 10/60 per trial. Anything past half the trials would
	// mean the weight leaked through despite bias 0.
	if weightedHits > trials/2 {
		t.Errorf("with bias 0 the weighted question was selected %d/%d times", weightedHits, trials)
	}
}
