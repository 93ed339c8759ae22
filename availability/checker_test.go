package availability

import (
	"errors"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, time.July, d, 0, 0, 0, 0, time.UTC)
}

func iv(from, to int) Interval {
	return Interval{CheckIn: day(from), CheckOut: day(to)}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"adjacent turnover", iv(1, 5), iv(5, 10), false},
		{"end inside existing", iv(1, 5), iv(4, 10), true},
		{"containment", iv(1, 10), iv(3, 6), true},
		{"contained", iv(3, 6), iv(1, 10), true},
		{"disjoint", iv(1, 3), iv(6, 9), false},
		{"identical", iv(2, 8), iv(2, 8), true},
		{"start inside existing", iv(4, 12), iv(1, 5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %v and %v", tt.a, tt.b)
			}
		})
	}
}

func TestOverlaps_SymmetricAndReflexive(t *testing.T) {
	for a1 := 1; a1 <= 8; a1++ {
		for a2 := a1 + 1; a2 <= 9; a2++ {
			a := iv(a1, a2)
			if !a.Overlaps(a) {
				t.Fatalf("%v should overlap itself", a)
			}
			for b1 := 1; b1 <= 8; b1++ {
				for b2 := b1 + 1; b2 <= 9; b2++ {
					b := iv(b1, b2)
					if a.Overlaps(b) != b.Overlaps(a) {
						t.Fatalf("asymmetric result for %v and %v", a, b)
					}
					// the single inequality pair must agree with the three-case reading
					threeCase := (b1 >= a1 && b1 < a2) || (b2 > a1 && b2 <= a2) || (b1 <= a1 && b2 >= a2)
					if a.Overlaps(b) != threeCase {
						t.Fatalf("formulations disagree for %v and %v", a, b)
					}
				}
			}
		}
	}
}

func TestOverlaps_IgnoresTimeOfDay(t *testing.T) {
	existing := Interval{
		CheckIn:  time.Date(2025, time.July, 15, 15, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, time.July, 22, 11, 0, 0, 0, time.UTC),
	}
	sameDay := Interval{
		CheckIn:  time.Date(2025, time.July, 22, 9, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, time.July, 25, 11, 0, 0, 0, time.UTC),
	}
	if existing.Overlaps(sameDay) {
		t.Error("a check-in on the check-out day must not conflict")
	}
}

func TestNewInterval(t *testing.T) {
	if _, err := NewInterval(day(5), day(5)); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("equal dates: expected ErrInvalidInterval, got %v", err)
	}
	if _, err := NewInterval(day(6), day(5)); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("reversed dates: expected ErrInvalidInterval, got %v", err)
	}
	sameDay := time.Date(2025, time.July, 5, 8, 0, 0, 0, time.UTC)
	if _, err := NewInterval(sameDay, sameDay.Add(6*time.Hour)); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("same calendar day: expected ErrInvalidInterval, got %v", err)
	}

	got, err := NewInterval(day(15), day(22))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Nights() != 7 {
		t.Errorf("Nights() = %d, want 7", got.Nights())
	}
}

func TestCheck(t *testing.T) {
	existing := []Booked{
		{ID: "b1", Interval: iv(15, 22)},
		{ID: "b2", Interval: iv(25, 28)},
	}

	t.Run("no bookings", func(t *testing.T) {
		if err := Check("p1", iv(1, 30), nil); err != nil {
			t.Errorf("expected ok, got %v", err)
		}
	})

	t.Run("overlap reports conflict", func(t *testing.T) {
		err := Check("p1", iv(20, 25), existing)
		var conflict *ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected ConflictError, got %v", err)
		}
		if len(conflict.BookingIDs) != 1 || conflict.BookingIDs[0] != "b1" {
			t.Errorf("conflicting ids = %v, want [b1]", conflict.BookingIDs)
		}
		if conflict.PropertyID != "p1" {
			t.Errorf("property id = %q", conflict.PropertyID)
		}
	})

	t.Run("reports every overlapping booking", func(t *testing.T) {
		err := Check("p1", iv(10, 30), existing)
		var conflict *ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected ConflictError, got %v", err)
		}
		if len(conflict.BookingIDs) != 2 {
			t.Errorf("conflicting ids = %v, want both bookings", conflict.BookingIDs)
		}
	})

	t.Run("turnover day is free", func(t *testing.T) {
		if err := Check("p1", iv(22, 25), existing); err != nil {
			t.Errorf("expected ok, got %v", err)
		}
	})

	t.Run("invalid interval wins over existing bookings", func(t *testing.T) {
		for _, bookings := range [][]Booked{nil, existing} {
			if err := Check("p1", iv(20, 20), bookings); !errors.Is(err, ErrInvalidInterval) {
				t.Errorf("expected ErrInvalidInterval, got %v", err)
			}
			if err := Check("p1", iv(21, 20), bookings); !errors.Is(err, ErrInvalidInterval) {
				t.Errorf("expected ErrInvalidInterval, got %v", err)
			}
		}
	})
}

func TestCheck_EndToEnd(t *testing.T) {
	existing := []Booked{{ID: "riad-july", Interval: iv(15, 22)}}

	var conflict *ConflictError
	if err := Check("riad", iv(20, 25), existing); !errors.As(err, &conflict) {
		t.Errorf("[07-20, 07-25) should conflict, got %v", err)
	}
	if err := Check("riad", iv(22, 29), existing); err != nil {
		t.Errorf("[07-22, 07-29) should be accepted, got %v", err)
	}
}

func TestDay_DependsOnlyOnTheInstant(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	submitted := time.Date(2025, time.July, 22, 1, 0, 0, 0, paris)
	readBack := submitted.UTC()

	if !Day(submitted).Equal(Day(readBack)) {
		t.Fatalf("Day(%v) = %v but Day(%v) = %v", submitted, Day(submitted), readBack, Day(readBack))
	}
	if want := day(21); !Day(submitted).Equal(want) {
		t.Errorf("Day(%v) = %v, want %v", submitted, Day(submitted), want)
	}
}

func TestCheck_SameDecisionWhateverTheStoredLocation(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	tokyo := time.FixedZone("JST", 9*60*60)
	asSubmitted := Interval{
		CheckIn:  time.Date(2025, time.July, 22, 1, 0, 0, 0, paris),
		CheckOut: time.Date(2025, time.July, 25, 1, 0, 0, 0, paris),
	}
	locations := map[string]Interval{
		"as submitted": asSubmitted,
		"read as UTC":  {CheckIn: asSubmitted.CheckIn.UTC(), CheckOut: asSubmitted.CheckOut.UTC()},
		"read as JST":  {CheckIn: asSubmitted.CheckIn.In(tokyo), CheckOut: asSubmitted.CheckOut.In(tokyo)},
	}

	// the stay occupies the UTC nights of 07-21, 07-22 and 07-23
	proposals := []struct {
		name     string
		proposed Interval
		conflict bool
	}{
		{"turnover before", iv(19, 21), false},
		{"overlaps first night", iv(20, 22), true},
		{"overlaps last night", iv(23, 26), true},
		{"turnover after", iv(24, 27), false},
	}

	for name, stored := range locations {
		existing := []Booked{{ID: "b1", Interval: stored}}
		for _, p := range proposals {
			err := Check("riad", p.proposed, existing)
			if got := err != nil; got != p.conflict {
				t.Errorf("%s, %s: conflict = %v, want %v (%v)", name, p.name, got, p.conflict, err)
			}
		}
	}
}
