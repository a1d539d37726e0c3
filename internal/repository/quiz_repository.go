package repository

import (
	"github.com/quizdesk/classroom/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByUUID(uuid string) (*model.Quiz, error)
	FindByUUIDWithQuestions(uuid string) (*model.Quiz, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	// GORM creates the associated questions and their answer records when
	// quiz.Questions is populated.
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByUUID(uuid string) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.Where("uuid = ?", uuid).First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByUUIDWithQuestions(uuid string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.
		Preload("Questions").
		Preload("Questions.Answers").
		Where("uuid = ?", uuid).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}
