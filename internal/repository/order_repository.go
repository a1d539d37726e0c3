package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/quizdesk/classroom/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	// CreatePending computes the order's pricing from any discount row and
	// inserts the pending order, all inside one transaction.
	CreatePending(order *model.Order, course *model.Course, now time.Time) error
	FindByUUID(uuid string) (*model.Order, error)
	UpdateGatewayInfo(id uint, gatewayID, checkoutURL string) error
	Delete(id uint) error
	// ReconcileStatus moves a pending order to its new status and, iff that
	// status is paid, upserts the enrollment as the same atomic unit. The
	// status lifecycle is forward-only: an order that already left pending
	// is never touched, so stale or retried notifications cannot regress
	// it. The unique (user_id, course_id) index absorbs duplicate paid
	// deliveries.
	ReconcileStatus(order *model.Order, newStatus string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreatePending(order *model.Order, course *model.Course, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var discount model.CourseDiscount
		var discountRef *model.CourseDiscount
		err := tx.Where("course_id = ?", course.ID).First(&discount).Error
		switch {
		case err == nil:
			discountRef = &discount
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		order.TotalPrice, order.TotalDiscount = model.PriceWithDiscount(course, discountRef, now)
		return tx.Create(order).Error
	})
}

func (r *orderRepository) FindByUUID(uuid string) (*model.Order, error) {
	var order model.Order
	if err := r.db.Where("uuid = ?", uuid).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateGatewayInfo(id uint, gatewayID, checkoutURL string) error {
	return r.db.Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"gateway_id": gatewayID, "checkout_url": checkoutURL}).Error
}

func (r *orderRepository) Delete(id uint) error {
	return r.db.Delete(&model.Order{}, id).Error
}

func (r *orderRepository) ReconcileStatus(order *model.Order, newStatus string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", order.ID, model.OrderStatusPending).
			Update("status", newStatus)
		if res.Error != nil {
			return fmt.Errorf("failed to update order status: %w", res.Error)
		}
		// Zero rows means the order already reached a terminal status; the
		// notification is stale and the enrollment must not be touched.
		if res.RowsAffected == 0 || newStatus != model.OrderStatusPaid {
			return nil
		}
		enrollment := model.Enrollment{
			UserID:   order.UserID,
			CourseID: order.CourseID,
			OrderID:  order.ID,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).Create(&enrollment).Error
	})
}
