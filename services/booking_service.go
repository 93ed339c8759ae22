package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"conciergerie-backend/apperrors"
	"conciergerie-backend/availability"
	"conciergerie-backend/events"
	"conciergerie-backend/models"
	"conciergerie-backend/repository"

	"go.uber.org/zap"
)

// BookedDatesCache entries are versioned: Invalidate moves a property to a new
// version, and Set only ever writes the version read before loading the ranges.
type BookedDatesCache interface {
	Version(ctx context.Context, propertyID string) (int64, error)
	Get(ctx context.Context, propertyID string, version int64) ([]availability.Interval, bool, error)
	Set(ctx context.Context, propertyID string, version int64, ranges []availability.Interval) error
	Invalidate(ctx context.Context, propertyID string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

type BookingMailer interface {
	SendBookingConfirmation(ctx context.Context, booking *models.Booking) error
}

type BookingService struct {
	store     repository.BookingStore
	logger    *zap.Logger
	cache     BookedDatesCache
	publisher EventPublisher
	mailer    BookingMailer
}

type BookingOption func(*BookingService)

func WithBookedDatesCache(c BookedDatesCache) BookingOption {
	return func(s *BookingService) { s.cache = c }
}

func WithEventPublisher(p EventPublisher) BookingOption {
	return func(s *BookingService) { s.publisher = p }
}

func WithMailer(m BookingMailer) BookingOption {
	return func(s *BookingService) { s.mailer = m }
}

func NewBookingService(store repository.BookingStore, logger *zap.Logger, opts ...BookingOption) *BookingService {
	s := &BookingService{store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateBookingInput struct {
	PropertyID     string
	UserID         string
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	TotalPrice     float64
	CleaningFee    float64
	Discount       float64
	Status         models.BookingStatus
	GuestFirstName string
	GuestLastName  string
	GuestEmail     string
	GuestPhone     string
}

// Create books the stay if no active booking of the property overlaps it. The
// property row stays locked from the availability read until the insert commits.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	interval, err := availability.NewInterval(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, apperrors.InvalidInterval(err.Error())
	}

	status := in.Status
	if status == "" {
		status = models.BookingPending
	}
	if !status.IsActive() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("a new booking must be %s or %s", models.BookingPending, models.BookingConfirmed))
	}

	booking := &models.Booking{
		PropertyID:     in.PropertyID,
		UserID:         in.UserID,
		CheckIn:        interval.CheckIn,
		CheckOut:       interval.CheckOut,
		Guests:         in.Guests,
		TotalPrice:     in.TotalPrice,
		CleaningFee:    in.CleaningFee,
		Discount:       in.Discount,
		Status:         status,
		GuestFirstName: in.GuestFirstName,
		GuestLastName:  in.GuestLastName,
		GuestEmail:     in.GuestEmail,
		GuestPhone:     in.GuestPhone,
	}

	err = s.store.Transaction(ctx, func(tx repository.BookingStore) error {
		if err := tx.LockProperty(ctx, in.PropertyID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NotFoundWithID("Property", in.PropertyID)
			}
			return err
		}

		ok, err := tx.UserExists(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NotFoundWithID("User", in.UserID)
		}

		existing, err := tx.FindActiveByProperty(ctx, in.PropertyID)
		if err != nil {
			return err
		}
		if err := availability.Check(in.PropertyID, interval, activeBookings(existing)); err != nil {
			return err
		}
		return tx.Create(ctx, booking)
	})
	if err != nil {
		return nil, s.translate(err, "Failed to create booking")
	}

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("property_id", booking.PropertyID),
		zap.Time("check_in", booking.CheckIn),
		zap.Time("check_out", booking.CheckOut),
		zap.String("status", string(booking.Status)),
	)

	s.afterChange(ctx, booking, events.BookingCreated)
	if s.mailer != nil {
		if err := s.mailer.SendBookingConfirmation(ctx, booking); err != nil {
			s.logger.Warn("booking confirmation email failed", zap.String("booking_id", booking.ID), zap.Error(err))
		}
	}

	return s.reload(ctx, booking), nil
}

// activeBookings adapts stored bookings for the checker, skipping anything that
// is not PENDING or CONFIRMED.
func activeBookings(bookings []models.Booking) []availability.Booked {
	out := make([]availability.Booked, 0, len(bookings))
	for _, b := range bookings {
		if !b.Status.IsActive() {
			continue
		}
		out = append(out, availability.Booked{ID: b.ID, Interval: b.Interval()})
	}
	return out
}

func (s *BookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	return s.UpdateStatus(ctx, id, models.BookingCancelled)
}

func (s *BookingService) Confirm(ctx context.Context, id string) (*models.Booking, error) {
	return s.UpdateStatus(ctx, id, models.BookingConfirmed)
}

func (s *BookingService) Complete(ctx context.Context, id string) (*models.Booking, error) {
	return s.UpdateStatus(ctx, id, models.BookingCompleted)
}

// UpdateStatus moves a booking to target. Asking for the current status is a no-op.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, target models.BookingStatus) (*models.Booking, error) {
	if !target.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown booking status %q", target))
	}

	var (
		booking *models.Booking
		changed bool
	)
	err := s.store.Transaction(ctx, func(tx repository.BookingStore) error {
		current, err := tx.LockByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return err
		}
		booking = current
		if current.Status == target {
			return nil
		}
		if !current.Status.CanTransitionTo(target) {
			return apperrors.InvalidTransition(string(current.Status), string(target))
		}
		if err := tx.UpdateStatus(ctx, id, target); err != nil {
			return err
		}
		booking.Status = target
		changed = true
		return nil
	})
	if err != nil {
		return nil, s.translate(err, "Failed to update booking")
	}

	if changed {
		s.logger.Info("booking status changed", zap.String("booking_id", id), zap.String("status", string(target)))
		s.afterChange(ctx, booking, statusEvent(target))
	}
	return s.reload(ctx, booking), nil
}

func statusEvent(status models.BookingStatus) events.EventType {
	switch status {
	case models.BookingConfirmed:
		return events.BookingConfirmed
	case models.BookingCancelled:
		return events.BookingCancelled
	case models.BookingCompleted:
		return events.BookingCompleted
	}
	return events.BookingCreated
}

// BookedDateRanges lists the active stays of a property ordered by check-in.
func (s *BookingService) BookedDateRanges(ctx context.Context, propertyID string) ([]availability.Interval, error) {
	cached, version := s.cache != nil, int64(0)
	if cached {
		v, err := s.cache.Version(ctx, propertyID)
		if err != nil {
			s.logger.Warn("booked dates cache read failed", zap.String("property_id", propertyID), zap.Error(err))
			cached = false
		} else {
			version = v
			ranges, ok, err := s.cache.Get(ctx, propertyID, version)
			if err != nil {
				s.logger.Warn("booked dates cache read failed", zap.String("property_id", propertyID), zap.Error(err))
			} else if ok {
				return ranges, nil
			}
		}
	}

	ok, err := s.store.PropertyExists(ctx, propertyID)
	if err != nil {
		return nil, s.translate(err, "Failed to load booked dates")
	}
	if !ok {
		return nil, apperrors.NotFoundWithID("Property", propertyID)
	}

	bookings, err := s.store.FindActiveByProperty(ctx, propertyID)
	if err != nil {
		return nil, s.translate(err, "Failed to load booked dates")
	}
	ranges := make([]availability.Interval, 0, len(bookings))
	for _, b := range bookings {
		ranges = append(ranges, b.Interval())
	}

	// a booking change since Version went to a newer version; this write is then unreachable
	if cached {
		if err := s.cache.Set(ctx, propertyID, version, ranges); err != nil {
			s.logger.Warn("booked dates cache write failed", zap.String("property_id", propertyID), zap.Error(err))
		}
	}
	return ranges, nil
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, s.translate(err, "Failed to load booking")
	}
	return booking, nil
}

func (s *BookingService) List(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown booking status %q", filter.Status))
	}
	bookings, err := s.store.FindAll(ctx, filter)
	if err != nil {
		return nil, s.translate(err, "Failed to list bookings")
	}
	return bookings, nil
}

func (s *BookingService) afterChange(ctx context.Context, b *models.Booking, eventType events.EventType) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, b.PropertyID); err != nil {
			s.logger.Warn("booked dates cache invalidation failed", zap.String("property_id", b.PropertyID), zap.Error(err))
		}
	}
	if s.publisher != nil {
		event := events.NewBookingEvent(eventType, b.ID, b.PropertyID, b.UserID, string(b.Status), b.CheckIn, b.CheckOut)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("booking event not published", zap.String("booking_id", b.ID), zap.String("type", string(eventType)), zap.Error(err))
		}
	}
}

// reload fetches the booking with its relations, falling back to what we have.
func (s *BookingService) reload(ctx context.Context, b *models.Booking) *models.Booking {
	full, err := s.store.FindByID(ctx, b.ID)
	if err != nil {
		s.logger.Warn("reload booking failed", zap.String("booking_id", b.ID), zap.Error(err))
		return b
	}
	return full
}

// translate turns checker and store errors into API errors.
func (s *BookingService) translate(err error, message string) error {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}

	var conflict *availability.ConflictError
	switch {
	case errors.As(err, &conflict):
		return apperrors.Conflict("Property is not available for the selected dates").WithDetails(map[string]any{
			"propertyId":            conflict.PropertyID,
			"checkIn":               conflict.Proposed.CheckIn,
			"checkOut":              conflict.Proposed.CheckOut,
			"conflictingBookingIds": conflict.BookingIDs,
		})
	case errors.Is(err, availability.ErrInvalidInterval):
		return apperrors.InvalidInterval(err.Error())
	case errors.Is(err, repository.ErrOverlap):
		return apperrors.Conflict("Property is not available for the selected dates")
	case errors.Is(err, repository.ErrContention):
		return apperrors.Wrap(err, apperrors.CodeConflict, "The property is being booked by someone else, please retry", http.StatusConflict).
			WithDetails(map[string]any{"retryable": true})
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("Record")
	}

	s.logger.Error(message, zap.Error(err))
	return apperrors.Internal(message, err)
}
