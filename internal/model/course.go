package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Slug      string         `json:"slug" gorm:"not null;uniqueIndex"`
	Title     string         `json:"title" gorm:"not null"`
	Price     int64          `json:"price" gorm:"not null"`
	IsFree    bool           `json:"is_free" gorm:"not null;default:false"`
	Discount  *CourseDiscount `json:"discount,omitempty" gorm:"foreignKey:CourseID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type CourseDiscount struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CourseID      uint           `json:"course_id" gorm:"not null;uniqueIndex"`
	DiscountPrice int64          `json:"discount_price" gorm:"not null"`
	StartDate     time.Time      `json:"start_date" gorm:"not null"`
	EndDate       time.Time      `json:"end_date" gorm:"not null"`
	IsActive      bool           `json:"is_active" gorm:"not null;default:false"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidAt reports whether the discount applies at the given instant.
// Window boundaries are exclusive on both ends.
func (d *CourseDiscount) ValidAt(now time.Time) bool {
	return d.IsActive && now.After(d.StartDate) && now.Before(d.EndDate)
}

// PriceWithDiscount computes an order's total price and total discount for
// a course. The discount may be nil; an invalid or non-reducing discount
// leaves the course price untouched and the total discount null.
func PriceWithDiscount(course *Course, discount *CourseDiscount, now time.Time) (int64, *int64) {
	if discount == nil || !discount.ValidAt(now) || discount.DiscountPrice >= course.Price {
		return course.Price, nil
	}
	totalDiscount := course.Price - discount.DiscountPrice
	return discount.DiscountPrice, &totalDiscount
}
