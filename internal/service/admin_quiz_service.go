package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/quizdesk/classroom/internal/apperr"
	"github.com/quizdesk/classroom/internal/dto"
	"github.com/quizdesk/classroom/internal/model"
	"github.com/quizdesk/classroom/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminQuizService covers the instructor-facing operations: quiz creation,
// result listing and session resets.
type AdminQuizService interface {
	CreateQuiz(req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error)
	GetQuizResults(quizUUID string) ([]dto.QuizResultDTO, error)
	ResetSession(sessionID uint) error
}

type adminQuizService struct {
	courseRepo  repository.CourseRepository
	quizRepo    repository.QuizRepository
	sessionRepo repository.SessionRepository
}

func NewAdminQuizService(
	courseRepo repository.CourseRepository,
	quizRepo repository.QuizRepository,
	sessionRepo repository.SessionRepository,
) AdminQuizService {
	return &adminQuizService{
		courseRepo:  courseRepo,
		quizRepo:    quizRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *adminQuizService) CreateQuiz(req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error) {
	if _, err := s.courseRepo.FindByID(req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, apperr.Internal("failed to load course", err)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, apperr.BadRequest("end_date must be after start_date")
	}

	quiz := model.Quiz{
		UUID:            uuid.NewString(),
		CourseID:        req.CourseID,
		Title:           req.Title,
		Duration:        req.Duration,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IsActive:        true,
		PassGrade:       req.PassGrade,
		ShowResult:      req.ShowResult,
		EasyPercent:     req.EasyPercent,
		MediumPercent:   req.MediumPercent,
		HardPercent:     req.HardPercent,
		TotalQuestions:  req.TotalQuestions,
		UseAllQuestions: req.UseAllQuestions,
	}

	for _, qDto := range req.Questions {
		question := model.Question{
			Prompt:  qDto.Prompt,
			Type:    qDto.Type,
			Level:   qDto.Level,
			OptionA: qDto.OptionA,
			OptionB: qDto.OptionB,
			OptionC: qDto.OptionC,
			OptionD: qDto.OptionD,
			OptionE: qDto.OptionE,
		}
		if qDto.Type == model.QuestionTypeSingleChoice && len(qDto.CorrectAnswers) != 1 {
			return nil, apperr.BadRequest("single choice questions take exactly one correct answer")
		}
		for _, label := range qDto.CorrectAnswers {
			if !answerLabelRe.MatchString(label) {
				return nil, apperr.BadRequest("correct answer labels must be single letters A-E")
			}
			question.Answers = append(question.Answers, model.QuestionAnswer{
				Answer: strings.ToLower(label),
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateQuiz: failed to persist quiz")
		return nil, apperr.Internal("failed to create quiz", err)
	}
	log.Info().Str("uuid", quiz.UUID).Int("questions", len(quiz.Questions)).Msg("CreateQuiz: quiz created")

	var resp dto.QuizResponseDTO
	if err := copier.Copy(&resp, &quiz); err != nil {
		return nil, apperr.Internal("failed to prepare quiz response", err)
	}
	resp.QuestionCount = len(quiz.Questions)
	return &resp, nil
}

// GetQuizResults lists every session of a quiz. Scores are always included
// here; show_result only hides them from the student-facing response.
func (s *adminQuizService) GetQuizResults(quizUUID string) ([]dto.QuizResultDTO, error) {
	quiz, err := s.quizRepo.FindByUUID(quizUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("quiz not found")
		}
		return nil, apperr.Internal("failed to load quiz", err)
	}

	sessions, err := s.sessionRepo.FindAllByQuiz(quiz.ID)
	if err != nil {
		return nil, apperr.Internal("failed to load sessions", err)
	}

	results := make([]dto.QuizResultDTO, 0, len(sessions))
	for _, sess := range sessions {
		r := dto.QuizResultDTO{
			SessionID: sess.ID,
			UserID:    sess.UserID,
			IsEnded:   sess.IsEnded,
			Score:     sess.Score,
			StartedAt: sess.CreatedAt,
		}
		if sess.Score != nil {
			passed := *sess.Score >= quiz.PassGrade
			r.Passed = &passed
		}
		results = append(results, r)
	}
	return results, nil
}

// ResetSession deletes the session and its answers outright. A new attempt
// starts a fresh clock; the old one is not restarted.
func (s *adminQuizService) ResetSession(sessionID uint) error {
	if _, err := s.sessionRepo.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("quiz session not found")
		}
		return apperr.Internal("failed to load session", err)
	}
	if err := s.sessionRepo.DeleteWithAnswers(sessionID); err != nil {
		return apperr.Internal("failed to reset session", err)
	}
	log.Info().Uint("sessionID", sessionID).Msg("ResetSession: session and answers deleted")
	return nil
}
