package service

import (
	"math/rand"
	"sort"

	"roadcode_backend/internal/model"
)

// SelectQuestions draws an exam paper from the question pool, biased towards
// questions the user has answered incorrectly before.
//
// Each candidate gets weight 1 + priorErrors*bias and a score of
// weight * U[0,1); sorting by score descending and taking the top K is an
// approximation of weighted sampling without replacement, not the exact
// thing: error-prone questions are more likely, never guaranteed, to make
// the cut. The selected set is shuffled afterwards so heavy questions do not
// cluster at the front of the paper.
//
// Only playable questions (two or more options, at least one correct) are
// considered. If the pool holds no playable question at all, the unfiltered
// pool is used as a degraded fallback; an empty pool yields an empty result
// and the caller decides how to fail.
//
// The result never exceeds the candidate pool size and never repeats a
// question.
func SelectQuestions(pool []model.Question, weights map[string]int, targetCount, bias int, rng *rand.Rand) []model.Question {
	if targetCount <= 0 || len(pool) == 0 {
		return nil
	}

	candidates := make([]model.Question, 0, len(pool))
	for _, q := range pool {
		if q.Playable() {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}

	type scored struct {
		score    float64
		question model.Question
	}
	ranked := make([]scored, len(candidates))
	for i, q := range candidates {
		weight := float64(1 + weights[q.ID]*bias)
		ranked[i] = scored{
			score:    weight * rng.Float64(),
			question: q,
		}
	}

	// Highest randomized score first.
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	k := targetCount
	if len(ranked) < k {
		k = len(ranked)
	}

	selected := make([]model.Question, k)
	for i := 0; i < k; i++ {
		selected[i] = ranked[i].question
	}

	rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	return selected
}
