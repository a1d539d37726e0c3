package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/classroom/internal/controller"
	"github.com/quizdesk/classroom/internal/dto"
	"github.com/quizdesk/classroom/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminQuizController struct {
	quizzes service.AdminQuizService
}

func NewAdminQuizController(quizzes service.AdminQuizService) *AdminQuizController {
	return &AdminQuizController{quizzes: quizzes}
}

// CreateQuiz godoc
// @Summary (Admin) Create a quiz with its questions
// @Description Creates a quiz, its questions and their correct answers in one call.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Param body body dto.QuizCreateDTO true "Quiz definition"
// @Success 201 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz definition"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/quizzes [post]
func (c *AdminQuizController) CreateQuiz(ctx *gin.Context) {
	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.quizzes.CreateQuiz(req)
	if err != nil {
		log.Warn().Err(err).Str("title", req.Title).Msg("Admin CreateQuiz failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetQuizResults godoc
// @Summary (Admin) List all session results for a quiz
// @Description Instructor view of every session. Scores are always included, regardless of the quiz's show_result flag.
// @Tags Admin - Quizzes
// @Produce json
// @Param quiz_uuid path string true "Quiz UUID"
// @Success 200 {array} dto.QuizResultDTO
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes/{quiz_uuid}/results [get]
func (c *AdminQuizController) GetQuizResults(ctx *gin.Context) {
	results, err := c.quizzes.GetQuizResults(ctx.Param("quiz_uuid"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// ResetSession godoc
// @Summary (Admin) Reset a user's quiz session
// @Description Deletes the session and its answers outright. The user may enroll again with a fresh clock.
// @Tags Admin - Quizzes
// @Produce json
// @Param session_id path int true "Session ID"
// @Success 204 "Session deleted"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /admin/sessions/{session_id} [delete]
func (c *AdminQuizController) ResetSession(ctx *gin.Context) {
	sessionID, err := strconv.ParseUint(ctx.Param("session_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid session_id format"})
		return
	}

	if err := c.quizzes.ResetSession(uint(sessionID)); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
