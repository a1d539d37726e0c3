package repository

import (
	"github.com/quizdesk/classroom/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.QuizSession) error
	FindByUserAndQuiz(userID, quizID uint) (*model.QuizSession, error)
	FindByID(id uint) (*model.QuizSession, error)
	FindByIDWithDetails(id uint) (*model.QuizSession, error)
	FindEnrolledQuestion(sessionID, questionID uint) (*model.QuizEnrolledQuestion, error)
	UpdateEnrolledAnswer(eq *model.QuizEnrolledQuestion) error
	// MarkEnded conditionally finalizes the session; it reports how many
	// rows matched so concurrent duplicate submits lose cleanly.
	MarkEnded(id uint, score float64) (int64, error)
	FindAllByQuiz(quizID uint) ([]model.QuizSession, error)
	FindActiveWithQuiz() ([]model.QuizSession, error)
	DeleteWithAnswers(id uint) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.QuizSession) error {
	// Creating the session also persists its enrolled-question snapshot in
	// one transaction.
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindByUserAndQuiz(userID, quizID uint) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByID(id uint) (*model.QuizSession, error) {
	var session model.QuizSession
	if err := r.db.First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByIDWithDetails(id uint) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.db.
		Preload("Quiz").
		Preload("EnrolledQuestions").
		Preload("EnrolledQuestions.Question").
		Preload("EnrolledQuestions.Question.Answers").
		First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindEnrolledQuestion(sessionID, questionID uint) (*model.QuizEnrolledQuestion, error) {
	var eq model.QuizEnrolledQuestion
	err := r.db.
		Preload("Question").
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		First(&eq).Error
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

func (r *sessionRepository) UpdateEnrolledAnswer(eq *model.QuizEnrolledQuestion) error {
	return r.db.Model(eq).Update("answer", eq.Answer).Error
}

func (r *sessionRepository) MarkEnded(id uint, score float64) (int64, error) {
	res := r.db.Model(&model.QuizSession{}).
		Where("id = ? AND is_ended = ?", id, false).
		Updates(map[string]interface{}{"is_ended": true, "score": score})
	return res.RowsAffected, res.Error
}

func (r *sessionRepository) FindAllByQuiz(quizID uint) ([]model.QuizSession, error) {
	var sessions []model.QuizSession
	err := r.db.Where("quiz_id = ?", quizID).Order("created_at ASC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) FindActiveWithQuiz() ([]model.QuizSession, error) {
	var sessions []model.QuizSession
	err := r.db.Preload("Quiz").Where("is_ended = ?", false).Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) DeleteWithAnswers(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&model.QuizEnrolledQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.QuizSession{}, id).Error
	})
}
