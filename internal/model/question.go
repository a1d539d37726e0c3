package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeSingleChoice   = "single_choice"
	QuestionTypeMultipleChoice = "multiple_choice"
)

const (
	LevelEasy   = "easy"
	LevelMedium = "medium"
	LevelHard   = "hard"
)

type Question struct {
	ID      uint    `gorm:"primarykey" json:"id"`
	QuizID  uint    `json:"quiz_id" gorm:"not null;index"`
	Prompt  string  `json:"prompt" gorm:"type:text;not null"`
	OptionA *string `json:"option_a,omitempty"`
	OptionB *string `json:"option_b,omitempty"`
	OptionC *string `json:"option_c,omitempty"`
	OptionD *string `json:"option_d,omitempty"`
	OptionE *string `json:"option_e,omitempty"`
	Type    string  `json:"type" gorm:"not null"`  // "single_choice", "multiple_choice"
	Level   string  `json:"level" gorm:"not null"` // "easy", "medium", "hard"

	Answers   []QuestionAnswer `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

// QuestionAnswer is one correct-answer record: a single lowercase letter a-e.
type QuestionAnswer struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	QuestionID uint           `json:"question_id" gorm:"not null;index"`
	Answer     string         `json:"answer" gorm:"type:varchar(1);not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// CorrectSet returns the question's correct answers as a lookup set.
func (q *Question) CorrectSet() map[string]bool {
	set := make(map[string]bool, len(q.Answers))
	for _, a := range q.Answers {
		set[a.Answer] = true
	}
	return set
}
