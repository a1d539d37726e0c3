package service

import (
	"crypto/subtle"
	"errors"

	"github.com/quizdesk/classroom/config"
	"github.com/quizdesk/classroom/internal/apperr"
	"github.com/quizdesk/classroom/internal/dto"
	"github.com/quizdesk/classroom/internal/model"
	"github.com/quizdesk/classroom/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PaymentWebhookService reconciles asynchronous gateway notifications into
// local order state. The gateway may deliver the same notification more
// than once; every step is safe to run twice.
type PaymentWebhookService interface {
	HandleNotification(req dto.PaymentNotificationDTO, token string) error
}

type paymentWebhookService struct {
	orderRepo  repository.OrderRepository
	dispatcher NotificationDispatcher
	secret     string
}

func NewPaymentWebhookService(
	orderRepo repository.OrderRepository,
	dispatcher NotificationDispatcher,
	cfg *config.Config,
) PaymentWebhookService {
	return &paymentWebhookService{
		orderRepo:  orderRepo,
		dispatcher: dispatcher,
		secret:     cfg.Payment.WebhookToken,
	}
}

func (s *paymentWebhookService) HandleNotification(req dto.PaymentNotificationDTO, token string) error {
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.secret)) != 1 {
		return apperr.Forbidden("invalid webhook token")
	}

	order, err := s.orderRepo.FindByUUID(req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order not found")
		}
		return apperr.Internal("failed to load order", err)
	}

	newStatus := NormalizeGatewayStatus(req.TransactionStatus)
	wasPaid := order.Status == model.OrderStatusPaid

	// Status update and enrollment creation happen as one atomic unit in
	// the repository: a reader can never observe the enrollment before the
	// durable paid status, and a duplicate paid delivery cannot create a
	// second enrollment row.
	if err := s.orderRepo.ReconcileStatus(order, newStatus); err != nil {
		log.Error().Err(err).Str("orderUUID", req.OrderID).Str("status", newStatus).Msg("HandleNotification: reconciliation failed")
		return apperr.Internal("failed to reconcile payment", err)
	}
	log.Info().Str("orderUUID", req.OrderID).Str("status", newStatus).Msg("HandleNotification: order reconciled")

	if newStatus == model.OrderStatusPaid && !wasPaid {
		actionID := order.UUID
		s.dispatcher.Send([]uint{order.UserID}, "Payment received",
			"Your payment was received and you are now enrolled.", "payment_succeeded", &actionID)
	}
	return nil
}
