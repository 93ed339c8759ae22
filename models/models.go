package models

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&User{},
		&Amenity{},
		&Property{},
		&PropertyImage{},
		&Review{},
		&Booking{},
		&Payment{},
	}
}
