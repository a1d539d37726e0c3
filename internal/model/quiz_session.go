package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizSession holds one user's attempt at a quiz. The partial unique index
// on (user_id, quiz_id) allows at most one live session per pair while an
// admin reset (soft delete) still frees the slot for a fresh attempt.
type QuizSession struct {
	ID      uint     `gorm:"primarykey" json:"id"`
	QuizID  uint     `json:"quiz_id" gorm:"not null;uniqueIndex:idx_session_user_quiz,where:deleted_at IS NULL"`
	Quiz    Quiz     `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	UserID  uint     `json:"user_id" gorm:"not null;uniqueIndex:idx_session_user_quiz,where:deleted_at IS NULL"`
	IsEnded bool     `json:"is_ended" gorm:"not null;default:false"`
	Score   *float64 `json:"score,omitempty"`

	EnrolledQuestions []QuizEnrolledQuestion `json:"enrolled_questions,omitempty" gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
	DeletedAt         gorm.DeletedAt         `gorm:"index" json:"-"`
}

// Deadline is the hard end of the session's time window, derived from the
// original creation time. It is never extended.
func (s *QuizSession) Deadline(quiz *Quiz) time.Time {
	return s.CreatedAt.Add(time.Duration(quiz.Duration) * time.Minute)
}

// ExpiredAt reports whether the session's window had closed at the given
// instant. Expiry is logical: nothing in storage flips until submission.
func (s *QuizSession) ExpiredAt(quiz *Quiz, now time.Time) bool {
	return now.After(s.Deadline(quiz))
}
