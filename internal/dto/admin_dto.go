package dto

import "time"

// QuestionCreateDTO is one question inside a quiz-creation request.
type QuestionCreateDTO struct {
	Prompt  string  `json:"prompt" binding:"required"`
	Type    string  `json:"type" binding:"required,oneof=single_choice multiple_choice"`
	Level   string  `json:"level" binding:"required,oneof=easy medium hard"`
	OptionA *string `json:"option_a"`
	OptionB *string `json:"option_b"`
	OptionC *string `json:"option_c"`
	OptionD *string `json:"option_d"`
	OptionE *string `json:"option_e"`
	// Correct answer labels, case-insensitive letters A-E.
	CorrectAnswers []string `json:"correct_answers" binding:"required,min=1"`
}

type QuizCreateDTO struct {
	CourseID        uint                `json:"course_id" binding:"required"`
	Title           string              `json:"title" binding:"required"`
	Duration        int                 `json:"duration" binding:"required,min=1"` // minutes
	StartDate       time.Time           `json:"start_date" binding:"required"`
	EndDate         time.Time           `json:"end_date" binding:"required"`
	PassGrade       float64             `json:"pass_grade"`
	ShowResult      bool                `json:"show_result"`
	EasyPercent     int                 `json:"easy_percent" binding:"min=0,max=100"`
	MediumPercent   int                 `json:"medium_percent" binding:"min=0,max=100"`
	HardPercent     int                 `json:"hard_percent" binding:"min=0,max=100"`
	TotalQuestions  int                 `json:"total_questions" binding:"min=0"`
	UseAllQuestions bool                `json:"use_all_questions"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

type QuizResponseDTO struct {
	ID            uint      `json:"id"`
	UUID          string    `json:"uuid"`
	CourseID      uint      `json:"course_id"`
	Title         string    `json:"title"`
	Duration      int       `json:"duration"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	IsActive      bool      `json:"is_active"`
	IsEnded       bool      `json:"is_ended"`
	PassGrade     float64   `json:"pass_grade"`
	ShowResult    bool      `json:"show_result"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizResultDTO is the instructor-facing view of one session. Scores are
// always present here, regardless of the quiz's show_result flag.
type QuizResultDTO struct {
	SessionID uint      `json:"session_id"`
	UserID    uint      `json:"user_id"`
	IsEnded   bool      `json:"is_ended"`
	Score     *float64  `json:"score,omitempty"`
	Passed    *bool     `json:"passed,omitempty"`
	StartedAt time.Time `json:"started_at"`
}
