package models

import (
	"time"

	"conciergerie-backend/availability"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// IsActive reports whether a booking in this status occupies its dates.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking may move from s to target.
// CANCELLED and COMPLETED are final so a released interval is never re-claimed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingPending:
		return target == BookingConfirmed || target == BookingCancelled
	case BookingConfirmed:
		return target == BookingCancelled || target == BookingCompleted
	}
	return false
}

func ActiveStatusValues() []string {
	return []string{string(BookingPending), string(BookingConfirmed)}
}

type Booking struct {
	ID         string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PropertyID string `gorm:"type:varchar(36);not null;index:idx_bookings_property_status,priority:1" json:"propertyId"`
	UserID     string `gorm:"type:varchar(36);not null;index" json:"userId"`

	// full instants as submitted
	CheckIn  time.Time `gorm:"column:check_in;not null" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out;not null" json:"checkOut"`
	// calendar-day copies used by SQL constraints and availability search
	CheckInDate  datatypes.Date `gorm:"column:check_in_date;index" json:"-"`
	CheckOutDate datatypes.Date `gorm:"column:check_out_date" json:"-"`

	Nights      int     `gorm:"not null" json:"nights"`
	Guests      int     `gorm:"not null" json:"guests"`
	TotalPrice  float64 `gorm:"not null" json:"totalPrice"`
	CleaningFee float64 `json:"cleaningFee"`
	Discount    float64 `json:"discount"`

	Status BookingStatus `gorm:"type:varchar(16);not null;index:idx_bookings_property_status,priority:2" json:"status"`

	GuestFirstName string `gorm:"size:100" json:"guestFirstName"`
	GuestLastName  string `gorm:"size:100" json:"guestLastName"`
	GuestEmail     string `gorm:"size:255" json:"guestEmail"`
	GuestPhone     string `gorm:"size:50" json:"guestPhone"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Property *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:RESTRICT" json:"property,omitempty"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	Payment  *Payment  `gorm:"foreignKey:BookingID" json:"payment,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = newID()
	}
	b.CheckInDate = datatypes.Date(availability.Day(b.CheckIn))
	b.CheckOutDate = datatypes.Date(availability.Day(b.CheckOut))
	b.Nights = b.Interval().Nights()
	return nil
}

func (b *Booking) Interval() availability.Interval {
	return availability.Interval{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}
