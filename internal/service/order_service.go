package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/quizdesk/classroom/internal/apperr"
	"github.com/quizdesk/classroom/internal/dto"
	"github.com/quizdesk/classroom/internal/model"
	"github.com/quizdesk/classroom/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// OrderService creates pending orders against paid courses and hands the
// buyer off to the payment gateway.
type OrderService interface {
	OrderCourse(courseSlug string, req dto.OrderCreateDTO) (*dto.OrderResponseDTO, error)
}

type orderService struct {
	courseRepo repository.CourseRepository
	orderRepo  repository.OrderRepository
	gateway    PaymentGateway
}

func NewOrderService(
	courseRepo repository.CourseRepository,
	orderRepo repository.OrderRepository,
	gateway PaymentGateway,
) OrderService {
	return &orderService{
		courseRepo: courseRepo,
		orderRepo:  orderRepo,
		gateway:    gateway,
	}
}

// OrderCourse runs in two phases: a short transaction computes the price
// (applying any valid discount) and inserts the pending order, then the
// gateway is called outside the transaction. On gateway failure the pending
// order is removed so no order ever survives without a gateway id.
func (s *orderService) OrderCourse(courseSlug string, req dto.OrderCreateDTO) (*dto.OrderResponseDTO, error) {
	course, err := s.courseRepo.FindBySlug(courseSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, apperr.Internal("failed to load course", err)
	}
	if course.IsFree {
		return nil, apperr.BadRequest("free courses cannot be ordered")
	}

	order := model.Order{
		UUID:     uuid.NewString(),
		UserID:   req.UserID,
		CourseID: course.ID,
		Status:   model.OrderStatusPending,
	}
	if err := s.orderRepo.CreatePending(&order, course, nowFunc()); err != nil {
		log.Error().Err(err).Str("course", courseSlug).Msg("OrderCourse: failed to create pending order")
		return nil, apperr.Internal("failed to create order", err)
	}

	checkout, err := s.gateway.CreateCheckout(order.TotalPrice, order.UUID, course.Title, req.Name, req.Email)
	if err != nil {
		log.Error().Err(err).Str("orderUUID", order.UUID).Msg("OrderCourse: gateway checkout failed, removing pending order")
		if delErr := s.orderRepo.Delete(order.ID); delErr != nil {
			log.Error().Err(delErr).Uint("orderID", order.ID).Msg("OrderCourse: failed to remove orphaned order")
		}
		return nil, apperr.Internal("payment gateway rejected the checkout", err)
	}

	if err := s.orderRepo.UpdateGatewayInfo(order.ID, checkout.GatewayID, checkout.CheckoutURL); err != nil {
		return nil, apperr.Internal("failed to persist gateway reference", err)
	}
	log.Info().Str("orderUUID", order.UUID).Int64("totalPrice", order.TotalPrice).Msg("OrderCourse: order created")

	return &dto.OrderResponseDTO{
		OrderUUID:     order.UUID,
		CourseID:      course.ID,
		Status:        order.Status,
		TotalPrice:    order.TotalPrice,
		TotalDiscount: order.TotalDiscount,
		CheckoutURL:   &checkout.CheckoutURL,
		CreatedAt:     order.CreatedAt,
	}, nil
}
