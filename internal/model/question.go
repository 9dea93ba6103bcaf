package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// QuestionOption is one selectable answer of a multiple-choice question.
// The owning question alone decides correctness; more than one option may
// carry the correct flag.
type QuestionOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionOptions is stored as a JSON column.
type QuestionOptions []QuestionOption

func (o QuestionOptions) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *QuestionOptions) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for QuestionOptions")
	}
	return json.Unmarshal(data, o)
}

// swagger:model Question
type Question struct {
	UUIDBase
	Text        string          `gorm:"type:text;not null" json:"text"`
	Category    string          `gorm:"size:100;index" json:"category"`
	ImageURL    string          `gorm:"size:255" json:"imageUrl,omitempty"`
	Options     QuestionOptions `gorm:"type:json" json:"options"`
	Explanation string          `gorm:"type:text" json:"explanation"`
}

func (Question) TableName() string {
	return "questions"
}

// Playable reports whether the question can be put on an exam paper: it
// needs at least two options and at least one marked correct.
func (q *Question) Playable() bool {
	if len(q.Options) < 2 {
		return false
	}
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return true
		}
	}
	return false
}

// CorrectOptionID returns the id of the first option flagged correct, or ""
// when none is.
func (q *Question) CorrectOptionID() string {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return opt.ID
		}
	}
	return ""
}
