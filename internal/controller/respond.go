package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/quizdesk/classroom/internal/apperr"
	"github.com/quizdesk/classroom/internal/dto"
)

// RespondError writes the uniform error body for a service error, mapping
// the error kind to its HTTP status.
func RespondError(ctx *gin.Context, err error) {
	ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: apperr.Message(err)})
}
