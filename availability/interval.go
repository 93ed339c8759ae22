// Package availability decides whether a proposed stay can be booked on a property
// given the property's active bookings. It performs no I/O.
package availability

import (
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("check-in date must be before check-out date")

// Interval is a half-open stay [CheckIn, CheckOut). Only the UTC calendar date of
// each bound takes part in comparisons; the full instants are kept as given.
type Interval struct {
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
}

func NewInterval(checkIn, checkOut time.Time) (Interval, error) {
	iv := Interval{CheckIn: checkIn, CheckOut: checkOut}
	if !iv.Valid() {
		return Interval{}, ErrInvalidInterval
	}
	return iv, nil
}

func (i Interval) Valid() bool {
	return Day(i.CheckIn).Before(Day(i.CheckOut))
}

// Overlaps reports a1 < b2 && b1 < a2 on calendar days, so a check-out and a
// check-in on the same day do not collide.
func (i Interval) Overlaps(o Interval) bool {
	return Day(i.CheckIn).Before(Day(o.CheckOut)) && Day(o.CheckIn).Before(Day(i.CheckOut))
}

func (i Interval) Nights() int {
	if !i.Valid() {
		return 0
	}
	return int(Day(i.CheckOut).Sub(Day(i.CheckIn)).Hours() / 24)
}

// Day returns the UTC calendar date of t as midnight UTC. The result depends only
// on the instant, so a booking read back in another location keeps its days.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
