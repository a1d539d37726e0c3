package model

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UUID       string    `json:"uuid" gorm:"not null;uniqueIndex"`
	CourseID   uint      `json:"course_id" gorm:"not null;index"`
	Title      string    `json:"title" gorm:"not null"`
	Duration   int       `json:"duration" gorm:"not null"` // minutes
	StartDate  time.Time `json:"start_date" gorm:"not null"`
	EndDate    time.Time `json:"end_date" gorm:"not null"`
	IsActive   bool      `json:"is_active" gorm:"not null;default:true"`
	IsEnded    bool      `json:"is_ended" gorm:"not null;default:false"`
	PassGrade  float64   `json:"pass_grade" gorm:"not null"`
	ShowResult bool      `json:"show_result" gorm:"not null;default:true"`

	// Question-generation profile. Percentages are relative to the quiz's
	// full question pool, each stratum rounded independently.
	EasyPercent     int  `json:"easy_percent" gorm:"not null;default:0"`
	MediumPercent   int  `json:"medium_percent" gorm:"not null;default:0"`
	HardPercent     int  `json:"hard_percent" gorm:"not null;default:0"`
	TotalQuestions  int  `json:"total_questions" gorm:"not null;default:0"`
	UseAllQuestions bool `json:"use_all_questions" gorm:"not null;default:false"`

	Questions []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OpenAt reports whether the quiz can be taken at the given instant.
func (q *Quiz) OpenAt(now time.Time) bool {
	if !q.IsActive || q.IsEnded {
		return false
	}
	return !now.Before(q.StartDate) && now.Before(q.EndDate)
}
