package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/classroom/internal/controller"
	"github.com/quizdesk/classroom/internal/dto"
	"github.com/quizdesk/classroom/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizSessionController struct {
	sessions service.QuizSessionService
}

func NewQuizSessionController(sessions service.QuizSessionService) *QuizSessionController {
	return &QuizSessionController{sessions: sessions}
}

// TakeQuiz godoc
// @Summary (User) Start or resume a quiz session
// @Description Enrolls the user into the quiz. Calling again before the deadline returns the same session with its original deadline.
// @Tags User - Quiz Sessions
// @Produce json
// @Param course_slug path string true "Course slug"
// @Param quiz_uuid path string true "Quiz UUID"
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.SessionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 403 {object} dto.ErrorResponse "Quiz closed, session ended or time expired"
// @Failure 404 {object} dto.ErrorResponse "Course or quiz not found"
// @Router /courses/{course_slug}/quizzes/{quiz_uuid}/sessions [post]
func (c *QuizSessionController) TakeQuiz(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.sessions.TakeQuiz(ctx.Param("course_slug"), ctx.Param("quiz_uuid"), userID)
	if err != nil {
		log.Warn().Err(err).Str("quizUUID", ctx.Param("quiz_uuid")).Uint("userID", userID).Msg("TakeQuiz failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateAnswer godoc
// @Summary (User) Update the answer for one question
// @Description Replaces the stored answer set for the question. Labels are case-insensitive letters A-E.
// @Tags User - Quiz Sessions
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param question_id path int true "Question ID"
// @Param body body dto.UpdateAnswerRequest true "User ID and answer labels"
// @Success 200 {object} dto.SessionQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed labels or wrong answer count"
// @Failure 403 {object} dto.ErrorResponse "Session ended or time expired"
// @Failure 404 {object} dto.ErrorResponse "Session or question not found"
// @Router /sessions/{session_id}/questions/{question_id}/answer [put]
func (c *QuizSessionController) UpdateAnswer(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "session_id")
	if !ok {
		return
	}
	questionID, ok := parseIDParam(ctx, "question_id")
	if !ok {
		return
	}

	var req dto.UpdateAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.sessions.UpdateAnswer(sessionID, questionID, req.Answers, req.UserID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitQuiz godoc
// @Summary (User) Submit a quiz session
// @Description Finalizes the session and computes the weighted score. The score appears in the response only when the quiz shows results.
// @Tags User - Quiz Sessions
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param body body dto.SubmitQuizRequest true "User ID"
// @Success 200 {object} dto.SubmitResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Session already ended"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id}/submit [post]
func (c *QuizSessionController) SubmitQuiz(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "session_id")
	if !ok {
		return
	}

	var req dto.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.sessions.SubmitQuiz(sessionID, req.UserID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func parseUserID(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Query("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user_id format"})
		return 0, false
	}
	return uint(val), true
}
