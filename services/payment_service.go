package services

import (
	"context"
	"errors"
	"fmt"

	"conciergerie-backend/apperrors"
	"conciergerie-backend/models"

	"gorm.io/gorm"
)

// PaymentService reads payment records. Card processing is not wired to a
// provider yet, so intents and webhooks answer NOT_IMPLEMENTED.
type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

func (s *PaymentService) CreateIntent(ctx context.Context, bookingID string, amount float64, currency string) (*models.Payment, error) {
	return nil, apperrors.NotImplemented("Payment integration not yet implemented. Please configure Stripe.")
}

func (s *PaymentService) HandleWebhook(ctx context.Context, signature string, payload []byte) error {
	return apperrors.NotImplemented("Webhook handling not yet implemented.")
}

func (s *PaymentService) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	return s.findOne(ctx, "id = ?", id, fmt.Sprintf("Payment with ID %s not found", id))
}

func (s *PaymentService) FindByBooking(ctx context.Context, bookingID string) (*models.Payment, error) {
	return s.findOne(ctx, "booking_id = ?", bookingID, fmt.Sprintf("No payment for booking %s", bookingID))
}

func (s *PaymentService) findOne(ctx context.Context, query, arg, notFound string) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.WithContext(ctx).First(&payment, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Payment").WithDetails(map[string]any{"reason": notFound})
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load payment", err)
	}
	return &payment, nil
}
