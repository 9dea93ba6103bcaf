package service_test

import (
	"context"
	"testing"
	"time"

	"roadcode_backend/internal/model"
	"roadcode_backend/internal/service"
)

// seedSession stores a completed session with one answer per question,
// correct or wrong per the flags slice.
func seedSession(store *fakeExamStore, userID uint, id string, startedAt time.Time, paper model.Paper, correct []bool) {
	completedAt := startedAt.Add(20 * time.Minute)
	score := 0
	n := 0
	for _, c := range correct {
		if c {
			n++
		}
	}
	if len(paper) > 0 {
		score = n * 100 / len(paper)
	}
	session := &model.ExamSession{
		UUIDBase:    model.UUIDBase{ID: id},
		UserID:      userID,
		Paper:       paper,
		Status:      model.ExamCompleted,
		Score:       score,
		Passed:      n >= len(paper),
		StartedAt:   startedAt,
		CompletedAt: &completedAt,
	}
	store.sessions[id] = session

	byQuestion := make(map[string]*model.ExamAnswer, len(paper))
	for i, questionID := range paper {
		suffix := "-a"
		if !correct[i] {
			suffix = "-b"
		}
		flag := correct[i]
		gradedAt := completedAt
		byQuestion[questionID] = &model.ExamAnswer{
			SessionID:        id,
			QuestionID:       questionID,
			SelectedOptionID: questionID + suffix,
			IsCorrect:        flag,
			GradedAt:         &gradedAt,
		}
	}
	store.answers[id] = byQuestion
}

func TestStatsSummary(t *testing.T) {
	pool := []model.Question{
		playableQuestion("p1", "priority"),
		playableQuestion("p2", "priority"),
		playableQuestion("s1", "signals"),
		playableQuestion("s2", "signals"),
	}
	store := newFakeExamStore()
	svc := service.NewStatsService(store, &fakeQuestions{pool: pool}, testConfig())

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	// priority: 3 correct of 4; signals: 1 correct of 4.
	seedSession(store, 1, "s-old", base, model.Paper{"p1", "p2", "s1", "s2"}, []bool{true, true, false, true})
	seedSession(store, 1, "s-new", base.Add(24*time.Hour), model.Paper{"p1", "p2", "s1", "s2"}, []bool{true, false, false, false})

	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	if summary.TotalErrors != 4 {
		t.Errorf("TotalErrors = %d, want 4", summary.TotalErrors)
	}
	if summary.BestCategory != "priority" {
		t.Errorf("BestCategory = %q, want priority", summary.BestCategory)
	}
	if summary.WorstCategory != "signals" {
		t.Errorf("WorstCategory = %q, want signals", summary.WorstCategory)
	}
	if len(summary.RecentExams) != 2 {
		t.Fatalf("expected 2 recent exams, got %d", len(summary.RecentExams))
	}
	if summary.RecentExams[0].SessionID != "s-new" {
		t.Errorf("recent exams not newest-first: got %s first", summary.RecentExams[0].SessionID)
	}
	if summary.RecentExams[0].Total != 4 {
		t.Errorf("recent exam Total = %d, want the paper length 4", summary.RecentExams[0].Total)
	}
}

func TestStatsSummary_EmptyHistory(t *testing.T) {
	store := newFakeExamStore()
	svc := service.NewStatsService(store, &fakeQuestions{}, testConfig())

	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.TotalErrors != 0 || summary.BestCategory != "" || summary.WorstCategory != "" {
		t.Errorf("empty history should yield a zero summary, got %+v", summary)
	}
	if summary.RecentExams == nil || len(summary.RecentExams) != 0 {
		t.Errorf("RecentExams should be an empty slice, got %#v", summary.RecentExams)
	}
}

func TestStatsSummary_RecentLimit(t *testing.T) {
	pool := []model.Question{playableQuestion("p1", "priority")}
	store := newFakeExamStore()
	svc := service.NewStatsService(store, &fakeQuestions{pool: pool}, testConfig())

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		id := string(rune('a' + i))
		seedSession(store, 1, "s-"+id, base.Add(time.Duration(i)*time.Hour), model.Paper{"p1"}, []bool{false})
	}

	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if len(summary.RecentExams) != 5 {
		t.Errorf("expected the 5 most recent exams, got %d", len(summary.RecentExams))
	}
	if summary.TotalErrors != 5 {
		t.Errorf("TotalErrors = %d, want 5: only the recent window counts", summary.TotalErrors)
	}
}

func TestStatsSummary_RemovedQuestionSkipped(t *testing.T) {
	pool := []model.Question{playableQuestion("p1", "priority")}
	store := newFakeExamStore()
	svc := service.NewStatsService(store, &fakeQuestions{pool: pool}, testConfig())

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	// "gone" is on the paper but no longer in the bank.
	seedSession(store, 1, "s1", base, model.Paper{"p1", "gone"}, []bool{false, false})

	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.TotalErrors != 1 {
		t.Errorf("TotalErrors = %d, want 1: removed questions are skipped", summary.TotalErrors)
	}
}

func TestStatsActivity(t *testing.T) {
	store := newFakeExamStore()
	svc := service.NewStatsService(store, &fakeQuestions{}, testConfig())

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	seedSession(store, 1, "done", base, model.Paper{}, nil)
	store.sessions["open"] = &model.ExamSession{
		UUIDBase:  model.UUIDBase{ID: "open"},
		UserID:    1,
		Status:    model.ExamInProgress,
		StartedAt: base.Add(time.Hour),
	}
	store.sessions["other-user"] = &model.ExamSession{
		UUIDBase:  model.UUIDBase{ID: "other-user"},
		UserID:    2,
		Status:    model.ExamInProgress,
		StartedAt: base,
	}

	entries, err := svc.Activity(context.Background(), 1)
	if err != nil {
		t.Fatalf("Activity returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 activity entries, got %d", len(entries))
	}
	if entries[0].SessionID != "open" {
		t.Errorf("activity not newest-first: got %s first", entries[0].SessionID)
	}
	if entries[0].Status != model.ExamInProgress {
		t.Errorf("expected the open session's status, got %s", entries[0].Status)
	}
	for _, entry := range entries {
		if entry.Type != "exam" {
			t.Errorf("entry type = %q, want exam", entry.Type)
		}
	}
}
