package service

import (
	"context"
	"sort"
	"time"

	"roadcode_backend/internal/config"
	"roadcode_backend/internal/model"
)

// SessionHistory is the read-only session access the aggregator needs. It
// never mutates session state.
type SessionHistory interface {
	ListCompletedByUser(userID uint, limit int) ([]model.ExamSession, error)
	ListRecentByUser(userID uint, limit int) ([]model.ExamSession, error)
	ListAnswers(sessionID string) ([]model.ExamAnswer, error)
}

type StatsService struct {
	History   SessionHistory
	Questions QuestionProvider
	Cfg       *config.Config
}

func NewStatsService(history SessionHistory, questions QuestionProvider, cfg *config.Config) *StatsService {
	return &StatsService{
		History:   history,
		Questions: questions,
		Cfg:       cfg,
	}
}

type RecentExam struct {
	SessionID string    `json:"sessionId"`
	Date      time.Time `json:"date"`
	Score     int       `json:"score"`
	Passed    bool      `json:"passed"`
	Total     int       `json:"total"`
}

type StatsSummary struct {
	TotalErrors   int          `json:"totalErrors"`
	BestCategory  string       `json:"bestCategory"`
	WorstCategory string       `json:"worstCategory"`
	RecentExams   []RecentExam `json:"recentExams"`
}

type ActivityEntry struct {
	SessionID string           `json:"sessionId"`
	Type      string           `json:"type"`
	Date      time.Time        `json:"date"`
	Status    model.ExamStatus `json:"status"`
	Score     int              `json:"score"`
}

// Summary aggregates the user's most recent completed sessions. Correctness
// is recomputed against the current question bank rather than read from the
// finish-time snapshot, so the report always reflects the bank as it stands.
// Categories are ranked by correctness ratio; ties go to the first category
// in alphabetical order, which keeps the report deterministic.
func (s *StatsService) Summary(ctx context.Context, userID uint) (*StatsSummary, error) {
	sessions, err := s.History.ListCompletedByUser(userID, s.Cfg.Exam.StatsRecent)
	if err != nil {
		return nil, err
	}

	summary := &StatsSummary{RecentExams: []RecentExam{}}
	if len(sessions) == 0 {
		return summary, nil
	}

	type categoryTally struct {
		correct int
		total   int
	}
	tallies := make(map[string]*categoryTally)

	for _, session := range sessions {
		date := session.StartedAt
		if session.CompletedAt != nil {
			date = *session.CompletedAt
		}
		summary.RecentExams = append(summary.RecentExams, RecentExam{
			SessionID: session.ID,
			Date:      date,
			Score:     session.Score,
			Passed:    session.Passed,
			Total:     len(session.Paper),
		})

		answers, err := s.History.ListAnswers(session.ID)
		if err != nil {
			return nil, err
		}

		questionMap, err := s.questionsByID(ctx, session.Paper)
		if err != nil {
			return nil, err
		}

		for _, answer := range answers {
			question := questionMap[answer.QuestionID]
			if question == nil {
				// The question vanished from the bank since this session.
				continue
			}

			tally := tallies[question.Category]
			if tally == nil {
				tally = &categoryTally{}
				tallies[question.Category] = tally
			}
			tally.total++
			if IsCorrect(question, answer.SelectedOptionID) {
				tally.correct++
			} else {
				summary.TotalErrors++
			}
		}
	}

	categories := make([]string, 0, len(tallies))
	for category := range tallies {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	bestRatio, worstRatio := -1.0, 2.0
	for _, category := range categories {
		tally := tallies[category]
		ratio := float64(tally.correct) / float64(tally.total)
		if ratio > bestRatio {
			bestRatio = ratio
			summary.BestCategory = category
		}
		if ratio < worstRatio {
			worstRatio = ratio
			summary.WorstCategory = category
		}
	}

	return summary, nil
}

// Activity lists the user's latest sessions regardless of status.
func (s *StatsService) Activity(ctx context.Context, userID uint) ([]ActivityEntry, error) {
	sessions, err := s.History.ListRecentByUser(userID, 20)
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, len(sessions))
	for i, session := range sessions {
		entries[i] = ActivityEntry{
			SessionID: session.ID,
			Type:      "exam",
			Date:      session.StartedAt,
			Status:    session.Status,
			Score:     session.Score,
		}
	}
	return entries, nil
}

func (s *StatsService) questionsByID(ctx context.Context, ids []string) (map[string]*model.Question, error) {
	questions, err := s.Questions.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	questionMap := make(map[string]*model.Question, len(questions))
	for i := range questions {
		questionMap[questions[i].ID] = &questions[i]
	}
	return questionMap, nil
}
