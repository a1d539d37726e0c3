package model

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment is created exactly once when an order reaches the paid status.
// The unique (user_id, course_id) index backs the webhook idempotency guard.
type Enrollment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID  uint           `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	OrderID   uint           `json:"order_id" gorm:"not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
