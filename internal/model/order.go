package model

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses. Terminal gateway statuses are normalized into these on
// webhook reconciliation; an order never transitions back to pending.
const (
	OrderStatusPending  = "pending"
	OrderStatusPaid     = "paid"
	OrderStatusFailed   = "failed"
	OrderStatusExpired  = "expired"
	OrderStatusCanceled = "canceled"
)

type Order struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	UUID          string  `json:"uuid" gorm:"not null;uniqueIndex"` // gateway correlation id
	UserID        uint    `json:"user_id" gorm:"not null;index"`
	CourseID      uint    `json:"course_id" gorm:"not null;index"`
	Course        Course  `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	TotalPrice    int64   `json:"total_price" gorm:"not null"`
	TotalDiscount *int64  `json:"total_discount,omitempty"`
	Status        string  `json:"status" gorm:"not null;default:'pending';index"`
	GatewayID     *string `json:"gateway_id,omitempty"`
	CheckoutURL   *string `json:"checkout_url,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
