package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type ExamStatus string

const (
	ExamInProgress ExamStatus = "in_progress"
	ExamCompleted  ExamStatus = "completed"
)

// Paper is the ordered list of question ids fixed when a session is created.
// It never changes afterwards, so grading stays stable against the session
// even when the question bank moves on. Stored as a JSON column.
type Paper []string

func (p Paper) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Paper) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for Paper")
	}
	return json.Unmarshal(data, p)
}

// Contains reports whether the question id is on the paper.
func (p Paper) Contains(questionID string) bool {
	for _, id := range p {
		if id == questionID {
			return true
		}
	}
	return false
}

// swagger:model ExamSession
type ExamSession struct {
	UUIDBase
	UserID      uint       `gorm:"index;type:bigint unsigned" json:"userId"`
	Paper       Paper      `gorm:"type:json" json:"paper"`
	Status      ExamStatus `gorm:"size:20;index;default:'in_progress'" json:"status"`
	Score       int        `gorm:"default:0" json:"score"`
	Passed      bool       `gorm:"default:false" json:"passed"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

// ExamAnswer is the user's currently selected option for one paper question.
// The (session_id, question_id) unique key makes answer submission
// last-write-wins per question. IsCorrect is a snapshot written at finish
// time; until then correctness is never stored.
type ExamAnswer struct {
	BaseModel
	SessionID        string     `gorm:"index;type:varchar(36);uniqueIndex:idx_session_question" json:"sessionId"`
	QuestionID       string     `gorm:"type:varchar(36);uniqueIndex:idx_session_question" json:"questionId"`
	SelectedOptionID string     `gorm:"type:varchar(36)" json:"selectedOptionId"`
	IsCorrect        bool       `gorm:"default:false" json:"isCorrect"`
	GradedAt         *time.Time `json:"gradedAt,omitempty"`
}

func (ExamAnswer) TableName() string {
	return "exam_answers"
}
