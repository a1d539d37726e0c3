package webhook

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/classroom/internal/controller"
	"github.com/quizdesk/classroom/internal/dto"
	"github.com/quizdesk/classroom/internal/service"
	"github.com/rs/zerolog/log"
)

// TokenHeader carries the shared secret the gateway is configured to send
// with every notification.
const TokenHeader = "X-Callback-Token"

type PaymentWebhookController struct {
	webhooks service.PaymentWebhookService
}

func NewPaymentWebhookController(webhooks service.PaymentWebhookService) *PaymentWebhookController {
	return &PaymentWebhookController{webhooks: webhooks}
}

// HandleNotification godoc
// @Summary (Webhook) Reconcile a payment gateway notification
// @Description Authenticates the notification by shared-secret header and reconciles the order status. Safe to deliver more than once.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param X-Callback-Token header string true "Shared webhook secret"
// @Param body body dto.PaymentNotificationDTO true "Gateway notification"
// @Success 200 {object} map[string]string
// @Failure 403 {object} dto.ErrorResponse "Invalid token"
// @Failure 404 {object} dto.ErrorResponse "Unknown order"
// @Router /payments/webhook [post]
func (c *PaymentWebhookController) HandleNotification(ctx *gin.Context) {
	var req dto.PaymentNotificationDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid notification body", Details: []string{err.Error()}})
		return
	}

	if err := c.webhooks.HandleNotification(req, ctx.GetHeader(TokenHeader)); err != nil {
		log.Warn().Err(err).Str("orderUUID", req.OrderID).Str("status", req.TransactionStatus).Msg("Webhook reconciliation rejected")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
