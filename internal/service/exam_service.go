package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"roadcode_backend/internal/config"
	"roadcode_backend/internal/model"
	"roadcode_backend/internal/util"
	"roadcode_backend/pkg/logger"
	"roadcode_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionProvider is the read-only view of the question bank the exam
// engine consumes.
type QuestionProvider interface {
	Pool(ctx context.Context) ([]model.Question, error)
	ByID(ctx context.Context, id string) (*model.Question, error)
	ByIDs(ctx context.Context, ids []string) ([]model.Question, error)
}

// ExamStore is the durable session storage the exam engine mutates.
type ExamStore interface {
	Create(session *model.ExamSession) error
	FindByIDForUser(id string, userID uint) (*model.ExamSession, error)
	UpsertAnswer(answer *model.ExamAnswer) error
	ListAnswers(sessionID string) ([]model.ExamAnswer, error)
	CompleteSession(sessionID string, score int, passed bool, completedAt time.Time, graded []model.ExamAnswer) (bool, error)
	ErrorCounts(userID uint) (map[string]int, error)
}

type ExamService struct {
	Questions QuestionProvider
	Store     ExamStore
	Cfg       *config.Config
}

func NewExamService(questions QuestionProvider, store ExamStore, cfg *config.Config) *ExamService {
	return &ExamService{
		Questions: questions,
		Store:     store,
		Cfg:       cfg,
	}
}

// ExamOptionView is an option as shown to the candidate: the correctness
// flag never leaves the server while the session is open.
type ExamOptionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type ExamQuestionView struct {
	QuestionID string           `json:"questionId"`
	Text       string           `json:"text"`
	Category   string           `json:"category"`
	ImageURL   string           `json:"imageUrl,omitempty"`
	Options    []ExamOptionView `json:"options"`
}

type ExamStartView struct {
	SessionID string             `json:"sessionId"`
	Status    model.ExamStatus   `json:"status"`
	StartedAt time.Time          `json:"startedAt"`
	Questions []ExamQuestionView `json:"questions"`
}

// StartExam selects a fresh paper for the user and opens an in_progress
// session. The paper is recorded verbatim on the session so grading stays
// stable even if the question bank changes underneath it.
func (s *ExamService) StartExam(ctx context.Context, userID uint) (*ExamStartView, error) {
	pool, err := s.Questions.Pool(ctx)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, util.ErrEmptyPool
	}

	weights, err := s.Store.ErrorCounts(userID)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	selected := SelectQuestions(pool, weights, s.Cfg.Exam.TargetCount, s.Cfg.Exam.ErrorBias, rng)
	if len(selected) == 0 {
		return nil, util.ErrEmptyPool
	}

	paper := make(model.Paper, len(selected))
	for i, q := range selected {
		paper[i] = q.ID
	}

	session := &model.ExamSession{
		UserID:    userID,
		Paper:     paper,
		Status:    model.ExamInProgress,
		StartedAt: time.Now(),
	}
	if err := s.Store.Create(session); err != nil {
		return nil, err
	}

	monitoring.ExamsStarted.Inc()
	logger.Log.Info("exam session started",
		zap.String("session_id", session.ID),
		zap.Uint("user_id", userID),
		zap.Int("paper_size", len(paper)),
	)

	return &ExamStartView{
		SessionID: session.ID,
		Status:    session.Status,
		StartedAt: session.StartedAt,
		Questions: sanitizeQuestions(selected),
	}, nil
}

// SubmitAnswer records the selected option for one paper question. Repeated
// submissions for the same question replace the prior one; nothing about
// correctness is computed or stored here.
func (s *ExamService) SubmitAnswer(ctx context.Context, userID uint, sessionID, questionID, optionID string) error {
	session, err := s.Store.FindByIDForUser(sessionID, userID)
	if err != nil {
		return mapSessionErr(err)
	}
	if session.Status != model.ExamInProgress {
		return util.ErrExamCompleted
	}
	if !session.Paper.Contains(questionID) {
		return util.ErrQuestionNotOnPaper
	}

	return s.Store.UpsertAnswer(&model.ExamAnswer{
		SessionID:        sessionID,
		QuestionID:       questionID,
		SelectedOptionID: optionID,
	})
}

type ExamFinishView struct {
	GradeResult
	CompletedAt time.Time       `json:"completedAt"`
	Details     []ExamDetailRow `json:"details"`
}

// FinishExam grades the paper against the current question bank and closes
// the session. The status transition is a compare-and-swap in storage, so a
// duplicate finish fails without touching the stored score.
func (s *ExamService) FinishExam(ctx context.Context, userID uint, sessionID string) (*ExamFinishView, error) {
	session, err := s.Store.FindByIDForUser(sessionID, userID)
	if err != nil {
		return nil, mapSessionErr(err)
	}
	if session.Status != model.ExamInProgress {
		return nil, util.ErrExamCompleted
	}

	answers, err := s.Store.ListAnswers(sessionID)
	if err != nil {
		return nil, err
	}
	answerMap := make(map[string]string, len(answers))
	for _, a := range answers {
		answerMap[a.QuestionID] = a.SelectedOptionID
	}

	questionMap, err := s.questionsOnPaper(ctx, session.Paper)
	if err != nil {
		return nil, err
	}

	result := Grade(session.Paper, answerMap, questionMap, s.Cfg.Exam.PassThreshold)

	graded := make([]model.ExamAnswer, 0, len(answers))
	for _, a := range answers {
		graded = append(graded, model.ExamAnswer{
			SessionID:        a.SessionID,
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
			IsCorrect:        IsCorrect(questionMap[a.QuestionID], a.SelectedOptionID),
		})
	}

	completedAt := time.Now()
	swapped, err := s.Store.CompleteSession(sessionID, result.Score, result.Passed, completedAt, graded)
	if err != nil {
		return nil, err
	}
	if !swapped {
		// A concurrent finish won the swap.
		return nil, util.ErrExamCompleted
	}

	outcome := "failed"
	if result.Passed {
		outcome = "passed"
	}
	monitoring.ExamsFinished.WithLabelValues(outcome).Inc()
	logger.Log.Info("exam session finished",
		zap.String("session_id", sessionID),
		zap.Int("score", result.Score),
		zap.Bool("passed", result.Passed),
	)

	return &ExamFinishView{
		GradeResult: result,
		CompletedAt: completedAt,
		Details:     s.buildDetails(session.Paper, answerMap, questionMap, true),
	}, nil
}

// ExamDetailRow is the per-question breakdown of a session. The correct
// option and the correctness flag are only populated once the session is
// completed; while it is open the client sees its own selections but not the
// answer key.
type ExamDetailRow struct {
	QuestionID       string           `json:"questionId"`
	Text             string           `json:"text"`
	Category         string           `json:"category"`
	ImageURL         string           `json:"imageUrl,omitempty"`
	Options          []ExamOptionView `json:"options"`
	SelectedOptionID string           `json:"selectedOptionId,omitempty"`
	CorrectOptionID  string           `json:"correctOptionId,omitempty"`
	IsCorrect        *bool            `json:"isCorrect,omitempty"`
	Explanation      string           `json:"explanation,omitempty"`
}

type ExamDetailView struct {
	SessionID   string           `json:"sessionId"`
	Status      model.ExamStatus `json:"status"`
	Score       int              `json:"score"`
	Passed      bool             `json:"passed"`
	StartedAt   time.Time        `json:"startedAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	Questions   []ExamDetailRow  `json:"questions"`
}

// GetExamDetail resolves the full per-question breakdown for an open or
// completed session, always against the current question bank.
func (s *ExamService) GetExamDetail(ctx context.Context, userID uint, sessionID string) (*ExamDetailView, error) {
	session, err := s.Store.FindByIDForUser(sessionID, userID)
	if err != nil {
		return nil, mapSessionErr(err)
	}

	answers, err := s.Store.ListAnswers(sessionID)
	if err != nil {
		return nil, err
	}
	answerMap := make(map[string]string, len(answers))
	for _, a := range answers {
		answerMap[a.QuestionID] = a.SelectedOptionID
	}

	questionMap, err := s.questionsOnPaper(ctx, session.Paper)
	if err != nil {
		return nil, err
	}

	revealed := session.Status == model.ExamCompleted

	return &ExamDetailView{
		SessionID:   session.ID,
		Status:      session.Status,
		Score:       session.Score,
		Passed:      session.Passed,
		StartedAt:   session.StartedAt,
		CompletedAt: session.CompletedAt,
		Questions:   s.buildDetails(session.Paper, answerMap, questionMap, revealed),
	}, nil
}

type TrainingResult struct {
	IsCorrect       bool   `json:"isCorrect"`
	Explanation     string `json:"explanation"`
	CorrectOptionID string `json:"correctOptionId"`
}

// CheckTraining is the single-question training mode: immediate feedback,
// no session involved.
func (s *ExamService) CheckTraining(ctx context.Context, questionID, optionID string) (*TrainingResult, error) {
	question, err := s.Questions.ByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	explanation := question.Explanation
	if explanation == "" {
		explanation = "No explanation available."
	}

	return &TrainingResult{
		IsCorrect:       IsCorrect(question, optionID),
		Explanation:     explanation,
		CorrectOptionID: question.CorrectOptionID(),
	}, nil
}

func (s *ExamService) questionsOnPaper(ctx context.Context, paper model.Paper) (map[string]*model.Question, error) {
	questions, err := s.Questions.ByIDs(ctx, paper)
	if err != nil {
		return nil, err
	}
	questionMap := make(map[string]*model.Question, len(questions))
	for i := range questions {
		questionMap[questions[i].ID] = &questions[i]
	}
	return questionMap, nil
}

func (s *ExamService) buildDetails(paper model.Paper, answers map[string]string, questions map[string]*model.Question, revealed bool) []ExamDetailRow {
	rows := make([]ExamDetailRow, 0, len(paper))
	for _, questionID := range paper {
		row := ExamDetailRow{QuestionID: questionID}

		q := questions[questionID]
		if q != nil {
			row.Text = q.Text
			row.Category = q.Category
			row.ImageURL = q.ImageURL
			row.Options = sanitizeOptions(q.Options)
		}
		row.SelectedOptionID = answers[questionID]

		if revealed && q != nil {
			row.CorrectOptionID = q.CorrectOptionID()
			correct := IsCorrect(q, row.SelectedOptionID)
			row.IsCorrect = &correct
			row.Explanation = q.Explanation
		}

		rows = append(rows, row)
	}
	return rows
}

func sanitizeOptions(options model.QuestionOptions) []ExamOptionView {
	views := make([]ExamOptionView, len(options))
	for i, opt := range options {
		views[i] = ExamOptionView{ID: opt.ID, Text: opt.Text}
	}
	return views
}

func sanitizeQuestions(questions []model.Question) []ExamQuestionView {
	views := make([]ExamQuestionView, len(questions))
	for i, q := range questions {
		views[i] = ExamQuestionView{
			QuestionID: q.ID,
			Text:       q.Text,
			Category:   q.Category,
			ImageURL:   q.ImageURL,
			Options:    sanitizeOptions(q.Options),
		}
	}
	return views
}

func mapSessionErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrExamNotFound
	}
	return err
}
