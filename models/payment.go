package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID              string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	BookingID       string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"bookingId"`
	UserID          string         `gorm:"type:varchar(36);not null;index" json:"userId"`
	Amount          float64        `gorm:"not null" json:"amount"`
	Currency        string         `gorm:"size:3;not null" json:"currency"`
	Status          PaymentStatus  `gorm:"type:varchar(16);not null" json:"status"`
	StripePaymentID *string        `gorm:"size:255;uniqueIndex" json:"stripePaymentId,omitempty"`
	Metadata        datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Currency == "" {
		p.Currency = "EUR"
	}
	if p.Status == "" {
		p.Status = PaymentPending
	}
	return nil
}
