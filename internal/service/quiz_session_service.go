package service

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/quizdesk/classroom/internal/apperr"
	"github.com/quizdesk/classroom/internal/dto"
	"github.com/quizdesk/classroom/internal/model"
	"github.com/quizdesk/classroom/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// nowFunc is swapped out in tests.
var nowFunc = time.Now

var answerLabelRe = regexp.MustCompile(`^[A-Ea-e]$`)

// QuizSessionService drives a user's timed quiz attempt:
// enroll -> answer updates -> submit.
type QuizSessionService interface {
	TakeQuiz(courseSlug, quizUUID string, userID uint) (*dto.SessionResponseDTO, error)
	UpdateAnswer(sessionID, questionID uint, answers []string, userID uint) (*dto.SessionQuestionDTO, error)
	SubmitQuiz(sessionID, userID uint) (*dto.SubmitResponseDTO, error)
	// FinalizeExpiredSessions scores and ends every session whose deadline
	// has passed. Used by the background sweeper.
	FinalizeExpiredSessions() (int, error)
}

type quizSessionService struct {
	courseRepo  repository.CourseRepository
	quizRepo    repository.QuizRepository
	sessionRepo repository.SessionRepository
	generator   QuestionGenerator
}

func NewQuizSessionService(
	courseRepo repository.CourseRepository,
	quizRepo repository.QuizRepository,
	sessionRepo repository.SessionRepository,
	generator QuestionGenerator,
) QuizSessionService {
	return &quizSessionService{
		courseRepo:  courseRepo,
		quizRepo:    quizRepo,
		sessionRepo: sessionRepo,
		generator:   generator,
	}
}

// TakeQuiz enrolls the user into the quiz, or idempotently re-reads an
// existing session. The deadline of an existing session is always derived
// from its original creation time, never extended.
func (s *quizSessionService) TakeQuiz(courseSlug, quizUUID string, userID uint) (*dto.SessionResponseDTO, error) {
	course, err := s.courseRepo.FindBySlug(courseSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, apperr.Internal("failed to load course", err)
	}

	quiz, err := s.quizRepo.FindByUUIDWithQuestions(quizUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("quiz not found")
		}
		return nil, apperr.Internal("failed to load quiz", err)
	}
	if quiz.CourseID != course.ID {
		return nil, apperr.NotFound("quiz not found")
	}

	now := nowFunc()
	if !quiz.OpenAt(now) {
		return nil, apperr.Forbidden("quiz is not open")
	}

	existing, err := s.sessionRepo.FindByUserAndQuiz(userID, quiz.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to look up session", err)
	}
	if existing != nil {
		if existing.IsEnded {
			return nil, apperr.Forbidden("quiz session already ended")
		}
		if existing.ExpiredAt(quiz, now) {
			return nil, apperr.Forbidden("quiz session time has expired")
		}
		detailed, err := s.sessionRepo.FindByIDWithDetails(existing.ID)
		if err != nil {
			return nil, apperr.Internal("failed to load session", err)
		}
		return buildSessionResponse(detailed, quiz, now), nil
	}

	generated := s.generator.Generate(quiz, quiz.Questions)
	session := &model.QuizSession{
		QuizID: quiz.ID,
		UserID: userID,
	}
	for _, q := range generated {
		session.EnrolledQuestions = append(session.EnrolledQuestions, model.QuizEnrolledQuestion{
			QuestionID: q.ID,
		})
	}
	if err := s.sessionRepo.Create(session); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a concurrent enroll race: the unique (user_id, quiz_id)
			// index rejected the insert. Serve the winner's session.
			winner, ferr := s.sessionRepo.FindByUserAndQuiz(userID, quiz.ID)
			if ferr != nil {
				return nil, apperr.Internal("failed to load session", ferr)
			}
			detailed, ferr := s.sessionRepo.FindByIDWithDetails(winner.ID)
			if ferr != nil {
				return nil, apperr.Internal("failed to load session", ferr)
			}
			return buildSessionResponse(detailed, quiz, now), nil
		}
		log.Error().Err(err).Uint("userID", userID).Str("quizUUID", quizUUID).Msg("TakeQuiz: failed to create session")
		return nil, apperr.Internal("failed to create quiz session", err)
	}
	log.Info().Uint("sessionID", session.ID).Uint("userID", userID).Int("questions", len(generated)).Msg("TakeQuiz: session created")

	detailed, err := s.sessionRepo.FindByIDWithDetails(session.ID)
	if err != nil {
		return nil, apperr.Internal("failed to reload session", err)
	}
	return buildSessionResponse(detailed, quiz, now), nil
}

// UpdateAnswer replaces the stored answer set for one enrolled question.
func (s *quizSessionService) UpdateAnswer(sessionID, questionID uint, answers []string, userID uint) (*dto.SessionQuestionDTO, error) {
	session, err := s.sessionRepo.FindByIDWithDetails(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("quiz session not found")
		}
		return nil, apperr.Internal("failed to load session", err)
	}
	if session.UserID != userID {
		return nil, apperr.Forbidden("quiz session belongs to another user")
	}
	if session.IsEnded {
		return nil, apperr.Forbidden("quiz session already ended")
	}
	if session.ExpiredAt(&session.Quiz, nowFunc()) {
		return nil, apperr.Forbidden("quiz session time has expired")
	}

	eq, err := s.sessionRepo.FindEnrolledQuestion(sessionID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("question is not part of this session")
		}
		return nil, apperr.Internal("failed to load question", err)
	}

	labels, err := normalizeAnswerLabels(answers, eq.Question.Type)
	if err != nil {
		return nil, err
	}

	eq.SetAnswerLabels(labels)
	if err := s.sessionRepo.UpdateEnrolledAnswer(eq); err != nil {
		return nil, apperr.Internal("failed to save answer", err)
	}

	resp := questionDTO(eq)
	return &resp, nil
}

// SubmitQuiz scores the session and finalizes it. The score is persisted
// regardless of the quiz's show_result flag; the response only carries it
// when results are visible to the student.
func (s *quizSessionService) SubmitQuiz(sessionID, userID uint) (*dto.SubmitResponseDTO, error) {
	session, err := s.sessionRepo.FindByIDWithDetails(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("quiz session not found")
		}
		return nil, apperr.Internal("failed to load session", err)
	}
	if session.UserID != userID {
		return nil, apperr.Forbidden("quiz session belongs to another user")
	}
	if session.IsEnded {
		return nil, apperr.Forbidden("quiz session already ended")
	}

	score := scoreSession(session.EnrolledQuestions)

	// Conditional update: under concurrent duplicate submits only one
	// request flips is_ended, the other observes zero rows and fails the
	// same way an already-ended session does.
	affected, err := s.sessionRepo.MarkEnded(session.ID, score)
	if err != nil {
		return nil, apperr.Internal("failed to finalize session", err)
	}
	if affected == 0 {
		return nil, apperr.Forbidden("quiz session already ended")
	}
	log.Info().Uint("sessionID", session.ID).Float64("score", score).Msg("SubmitQuiz: session finalized")

	resp := &dto.SubmitResponseDTO{
		SessionID:   session.ID,
		QuizUUID:    session.Quiz.UUID,
		IsEnded:     true,
		SubmittedAt: nowFunc(),
	}
	if session.Quiz.ShowResult {
		resp.Score = &score
		passed := score >= session.Quiz.PassGrade
		resp.Passed = &passed
	}
	return resp, nil
}

func (s *quizSessionService) FinalizeExpiredSessions() (int, error) {
	sessions, err := s.sessionRepo.FindActiveWithQuiz()
	if err != nil {
		return 0, err
	}

	now := nowFunc()
	finalized := 0
	for _, sess := range sessions {
		if !sess.ExpiredAt(&sess.Quiz, now) {
			continue
		}
		detailed, err := s.sessionRepo.FindByIDWithDetails(sess.ID)
		if err != nil {
			log.Error().Err(err).Uint("sessionID", sess.ID).Msg("FinalizeExpiredSessions: failed to load session")
			continue
		}
		score := scoreSession(detailed.EnrolledQuestions)
		affected, err := s.sessionRepo.MarkEnded(sess.ID, score)
		if err != nil {
			log.Error().Err(err).Uint("sessionID", sess.ID).Msg("FinalizeExpiredSessions: failed to finalize session")
			continue
		}
		if affected > 0 {
			finalized++
		}
	}
	return finalized, nil
}

// scoreSession computes the weighted score over the session's questions.
// Each question carries weight 100/N. Single choice is all or nothing;
// multiple choice earns credit proportional to the share of correct answers
// recalled, with no penalty for wrong selections beyond the missing credit.
func scoreSession(enrolled []model.QuizEnrolledQuestion) float64 {
	if len(enrolled) == 0 {
		return 0
	}
	weight := 100.0 / float64(len(enrolled))

	total := 0.0
	for _, eq := range enrolled {
		correct := eq.Question.CorrectSet()
		user := eq.AnswerLabels()

		switch eq.Question.Type {
		case model.QuestionTypeSingleChoice:
			if len(user) == 1 && correct[user[0]] {
				total += weight
			}
		case model.QuestionTypeMultipleChoice:
			if len(correct) == 0 {
				continue
			}
			hits := 0
			for _, l := range user {
				if correct[l] {
					hits++
				}
			}
			total += weight * float64(hits) / float64(len(correct))
		}
	}
	return total
}

// normalizeAnswerLabels validates the submitted labels and returns them
// lowercased, deduplicated and sorted.
func normalizeAnswerLabels(answers []string, questionType string) ([]string, error) {
	seen := make(map[string]bool, len(answers))
	labels := make([]string, 0, len(answers))
	for _, a := range answers {
		if !answerLabelRe.MatchString(a) {
			return nil, apperr.BadRequest("answer labels must be single letters A-E")
		}
		l := strings.ToLower(a)
		if seen[l] {
			continue
		}
		seen[l] = true
		labels = append(labels, l)
	}
	if questionType == model.QuestionTypeSingleChoice && len(labels) != 1 {
		return nil, apperr.BadRequest("single choice questions take exactly one answer")
	}
	sort.Strings(labels)
	return labels, nil
}

func buildSessionResponse(session *model.QuizSession, quiz *model.Quiz, now time.Time) *dto.SessionResponseDTO {
	deadline := session.Deadline(quiz)
	remaining := int64(deadline.Sub(now).Seconds())
	if remaining < 0 {
		remaining = 0
	}

	resp := &dto.SessionResponseDTO{
		SessionID:        session.ID,
		QuizUUID:         quiz.UUID,
		QuizTitle:        quiz.Title,
		StartedAt:        session.CreatedAt,
		Deadline:         deadline,
		RemainingSeconds: remaining,
		Questions:        make([]dto.SessionQuestionDTO, 0, len(session.EnrolledQuestions)),
	}
	for i := range session.EnrolledQuestions {
		resp.Questions = append(resp.Questions, questionDTO(&session.EnrolledQuestions[i]))
	}
	return resp
}

func questionDTO(eq *model.QuizEnrolledQuestion) dto.SessionQuestionDTO {
	answer := eq.AnswerLabels()
	if answer == nil {
		answer = []string{}
	}
	return dto.SessionQuestionDTO{
		QuestionID: eq.QuestionID,
		Prompt:     eq.Question.Prompt,
		Type:       eq.Question.Type,
		OptionA:    eq.Question.OptionA,
		OptionB:    eq.Question.OptionB,
		OptionC:    eq.Question.OptionC,
		OptionD:    eq.Question.OptionD,
		OptionE:    eq.Question.OptionE,
		Answer:     answer,
	}
}
