package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// QuizEnrolledQuestion binds a session to one question drawn at session
// creation. The user's current answer set lives here and is replaced in
// place on every update.
type QuizEnrolledQuestion struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	SessionID  uint           `json:"session_id" gorm:"not null;index"`
	QuestionID uint           `json:"question_id" gorm:"not null;index"`
	Question   Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Answer     string         `json:"answer" gorm:"type:text;not null;default:''"` // comma-joined lowercase letters
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// AnswerLabels splits the stored answer into its letter labels.
func (e *QuizEnrolledQuestion) AnswerLabels() []string {
	if e.Answer == "" {
		return nil
	}
	return strings.Split(e.Answer, ",")
}

// SetAnswerLabels replaces the stored answer set. Labels are assumed
// validated and lowercased by the caller.
func (e *QuizEnrolledQuestion) SetAnswerLabels(labels []string) {
	e.Answer = strings.Join(labels, ",")
}
