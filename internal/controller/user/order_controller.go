package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/classroom/internal/controller"
	"github.com/quizdesk/classroom/internal/dto"
	"github.com/quizdesk/classroom/internal/service"
	"github.com/rs/zerolog/log"
)

type OrderController struct {
	orders service.OrderService
}

func NewOrderController(orders service.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// OrderCourse godoc
// @Summary (User) Order a paid course
// @Description Creates a pending order, applies any valid discount and returns the gateway checkout URL.
// @Tags User - Orders
// @Accept json
// @Produce json
// @Param course_slug path string true "Course slug"
// @Param body body dto.OrderCreateDTO true "Buyer details"
// @Success 201 {object} dto.OrderResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Free course or invalid body"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Gateway failure"
// @Router /courses/{course_slug}/orders [post]
func (c *OrderController) OrderCourse(ctx *gin.Context) {
	var req dto.OrderCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.orders.OrderCourse(ctx.Param("course_slug"), req)
	if err != nil {
		log.Warn().Err(err).Str("course", ctx.Param("course_slug")).Uint("userID", req.UserID).Msg("OrderCourse failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}
