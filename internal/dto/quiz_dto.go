package dto

import "time"

// SessionQuestionDTO is one question as shown to the student inside a
// session. Correct answers are never exposed here.
type SessionQuestionDTO struct {
	QuestionID uint     `json:"question_id"`
	Prompt     string   `json:"prompt"`
	Type       string   `json:"type"`
	OptionA    *string  `json:"option_a,omitempty"`
	OptionB    *string  `json:"option_b,omitempty"`
	OptionC    *string  `json:"option_c,omitempty"`
	OptionD    *string  `json:"option_d,omitempty"`
	OptionE    *string  `json:"option_e,omitempty"`
	Answer     []string `json:"answer"` // user's current answer set
}

// SessionResponseDTO is returned by take-quiz, both for a fresh session and
// for the idempotent re-read of an existing one.
type SessionResponseDTO struct {
	SessionID        uint                 `json:"session_id"`
	QuizUUID         string               `json:"quiz_uuid"`
	QuizTitle        string               `json:"quiz_title"`
	StartedAt        time.Time            `json:"started_at"`
	Deadline         time.Time            `json:"deadline"`
	RemainingSeconds int64                `json:"remaining_seconds"`
	Questions        []SessionQuestionDTO `json:"questions"`
}

// UpdateAnswerRequest replaces the stored answer set for one question.
type UpdateAnswerRequest struct {
	UserID  uint     `json:"user_id" binding:"required"`
	Answers []string `json:"answers" binding:"required"`
}

type SubmitQuizRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// SubmitResponseDTO reports the outcome of a submission. Score and Passed
// are omitted when the quiz hides results from the student; the score is
// persisted regardless.
type SubmitResponseDTO struct {
	SessionID   uint      `json:"session_id"`
	QuizUUID    string    `json:"quiz_uuid"`
	IsEnded     bool      `json:"is_ended"`
	SubmittedAt time.Time `json:"submitted_at"`
	Score       *float64  `json:"score,omitempty"`
	Passed      *bool     `json:"passed,omitempty"`
}
