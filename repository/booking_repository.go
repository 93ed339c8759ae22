package repository

import (
	"context"
	"errors"
	"fmt"

	"conciergerie-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrOverlap is raised by the database itself when an active booking would
	// overlap another one on the same property.
	ErrOverlap = errors.New("booking overlaps an active booking")
	// ErrContention covers deadlocks, lock wait timeouts and serialization failures.
	ErrContention = errors.New("booking store is busy, retry the request")
)

type BookingFilter struct {
	UserID     string
	PropertyID string
	Status     models.BookingStatus
}

// BookingStore is the storage side of the booking lifecycle. Methods called on the
// store handed to Transaction's callback run inside that transaction.
type BookingStore interface {
	Transaction(ctx context.Context, fn func(store BookingStore) error) error
	// LockProperty takes a row lock on the property until the transaction ends.
	LockProperty(ctx context.Context, propertyID string) error
	PropertyExists(ctx context.Context, propertyID string) (bool, error)
	UserExists(ctx context.Context, userID string) (bool, error)
	FindActiveByProperty(ctx context.Context, propertyID string) ([]models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	LockByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	FindAll(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Transaction(ctx context.Context, fn func(store BookingStore) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingRepository{db: tx})
	})
	return classifyError(err)
}

func (r *BookingRepository) LockProperty(ctx context.Context, propertyID string) error {
	var property models.Property
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&property, "id = ?", propertyID).Error
	if err != nil {
		return classifyError(err)
	}
	return nil
}

func (r *BookingRepository) PropertyExists(ctx context.Context, propertyID string) (bool, error) {
	return r.exists(ctx, &models.Property{}, propertyID)
}

func (r *BookingRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	return r.exists(ctx, &models.User{}, userID)
}

func (r *BookingRepository) exists(ctx context.Context, model any, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, classifyError(err)
	}
	return count > 0, nil
}

// FindActiveByProperty returns PENDING and CONFIRMED bookings ordered by check-in.
func (r *BookingRepository) FindActiveByProperty(ctx context.Context, propertyID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND status IN ?", propertyID, models.ActiveStatusValues()).
		Order("check_in ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, classifyError(err)
	}
	return bookings, nil
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error; err != nil {
		return classifyError(err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Property.Images").
		Preload("User").
		Preload("Payment").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, classifyError(err)
	}
	return &booking, nil
}

func (r *BookingRepository) LockByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, classifyError(err)
	}
	return &booking, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return classifyError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAll lists bookings newest first; empty filter fields are ignored.
func (r *BookingRepository) FindAll(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{}).Preload("Property")
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.PropertyID != "" {
		q = q.Where("property_id = ?", filter.PropertyID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var bookings []models.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", classifyError(err))
	}
	return bookings, nil
}
