package repository

import (
	"time"

	"roadcode_backend/internal/model"
	"roadcode_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(session *model.ExamSession) error {
	return r.DB.Create(session).Error
}

func (r *ExamRepository) FindByIDForUser(id string, userID uint) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UpsertAnswer records the user's selection for one paper question. The
// unique key on (session_id, question_id) turns concurrent submissions for
// the same question into last-write-wins. The session row is locked for the
// duration of the write, so a finish running at the same time either sees
// this answer or rejects it, never half of each.
func (r *ExamRepository) UpsertAnswer(answer *model.ExamAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var session model.ExamSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "status").
			First(&session, "id = ?", answer.SessionID).Error; err != nil {
			return err
		}
		if session.Status != model.ExamInProgress {
			return util.ErrExamCompleted
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"selected_option_id": answer.SelectedOptionID,
				"updated_at":         time.Now(),
			}),
		}).Create(answer).Error
	})
}

func (r *ExamRepository) ListAnswers(sessionID string) ([]model.ExamAnswer, error) {
	var answers []model.ExamAnswer
	err := r.DB.Where("session_id = ?", sessionID).Find(&answers).Error
	return answers, err
}

// CompleteSession transitions a session to completed and writes the graded
// result. The status predicate makes the transition a compare-and-swap: a
// racing duplicate finish matches zero rows and reports false without
// touching the stored score. The per-answer correctness snapshot is written
// in the same transaction.
func (r *ExamRepository) CompleteSession(sessionID string, score int, passed bool, completedAt time.Time, graded []model.ExamAnswer) (bool, error) {
	swapped := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ExamSession{}).
			Where("id = ? AND status = ?", sessionID, model.ExamInProgress).
			Updates(map[string]interface{}{
				"status":       model.ExamCompleted,
				"score":        score,
				"passed":       passed,
				"completed_at": completedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		swapped = true

		for _, a := range graded {
			if err := tx.Model(&model.ExamAnswer{}).
				Where("session_id = ? AND question_id = ?", sessionID, a.QuestionID).
				Updates(map[string]interface{}{
					"is_correct": a.IsCorrect,
					"graded_at":  completedAt,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return swapped, err
}

// ErrorCounts tallies how often the user answered each question incorrectly
// across completed sessions. Only graded answers count; the result feeds the
// error-biased selector.
func (r *ExamRepository) ErrorCounts(userID uint) (map[string]int, error) {
	type row struct {
		QuestionID string
		Count      int
	}
	var rows []row
	err := r.DB.Table("exam_answers a").
		Select("a.question_id as question_id, COUNT(*) as count").
		Joins("JOIN exam_sessions s ON s.id = a.session_id").
		Where("s.user_id = ? AND s.status = ? AND a.is_correct = ? AND a.graded_at IS NOT NULL", userID, model.ExamCompleted, false).
		Group("a.question_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.QuestionID] = r.Count
	}
	return counts, nil
}

func (r *ExamRepository) ListCompletedByUser(userID uint, limit int) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.DB.Where("user_id = ? AND status = ?", userID, model.ExamCompleted).
		Order("completed_at desc").Limit(limit).Find(&sessions).Error
	return sessions, err
}

func (r *ExamRepository) ListRecentByUser(userID uint, limit int) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.DB.Where("user_id = ?", userID).
		Order("started_at desc").Limit(limit).Find(&sessions).Error
	return sessions, err
}
