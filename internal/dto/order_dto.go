package dto

import "time"

type OrderCreateDTO struct {
	UserID uint   `json:"user_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"omitempty,email"`
}

type OrderResponseDTO struct {
	OrderUUID     string    `json:"order_uuid"`
	CourseID      uint      `json:"course_id"`
	Status        string    `json:"status"`
	TotalPrice    int64     `json:"total_price"`
	TotalDiscount *int64    `json:"total_discount,omitempty"`
	CheckoutURL   *string   `json:"checkout_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentNotificationDTO is the gateway's webhook payload. Field names
// follow the midtrans notification format; OrderID carries our correlation
// uuid.
type PaymentNotificationDTO struct {
	OrderID           string `json:"order_id" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	TransactionID     string `json:"transaction_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
}
