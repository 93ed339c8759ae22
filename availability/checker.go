package availability

import (
	"fmt"
	"strings"
)

// Booked is an existing active booking as seen by the checker.
type Booked struct {
	ID       string
	Interval Interval
}

// ConflictError is returned by Check when the proposed stay overlaps one or more
// active bookings. It is an expected outcome, not a failure of the checker.
type ConflictError struct {
	PropertyID string
	Proposed   Interval
	BookingIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("property %s is already booked between %s and %s (bookings: %s)",
		e.PropertyID,
		e.Proposed.CheckIn.Format("2006-01-02"),
		e.Proposed.CheckOut.Format("2006-01-02"),
		strings.Join(e.BookingIDs, ", "),
	)
}

// Check validates proposed and tests it against existing. The caller supplies only
// active bookings of propertyID; nothing is filtered here.
// It returns nil when the stay can be booked, ErrInvalidInterval for a malformed
// proposal and *ConflictError listing every overlapping booking otherwise.
func Check(propertyID string, proposed Interval, existing []Booked) error {
	if !proposed.Valid() {
		return ErrInvalidInterval
	}

	overlapping := Conflicts(proposed, existing)
	if len(overlapping) == 0 {
		return nil
	}

	ids := make([]string, 0, len(overlapping))
	for _, b := range overlapping {
		ids = append(ids, b.ID)
	}
	return &ConflictError{
		PropertyID: propertyID,
		Proposed:   proposed,
		BookingIDs: ids,
	}
}

// Conflicts returns the bookings of existing that overlap proposed, in input order.
func Conflicts(proposed Interval, existing []Booked) []Booked {
	var out []Booked
	for _, b := range existing {
		if proposed.Overlaps(b.Interval) {
			out = append(out, b)
		}
	}
	return out
}
