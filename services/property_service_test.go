package services

import (
	"context"
	"testing"
	"time"

	"conciergerie-backend/apperrors"
	"conciergerie-backend/models"
	"conciergerie-backend/repository"
	"conciergerie-backend/testutil"

	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func seedListing(t *testing.T, db *gorm.DB, slug string, typ models.PropertyType, price float64, guests int, featured, active bool) *models.Property {
	t.Helper()
	p := &models.Property{
		Slug: slug, Title: slug, Type: typ, PricePerNight: price,
		Guests: guests, Bedrooms: guests / 2, Featured: featured, IsActive: active,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed property: %v", err)
	}
	// keep created_at ordering deterministic
	time.Sleep(time.Millisecond)
	return p
}

func TestPropertyService_FindAllFilters(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPropertyService(db)
	ctx := context.Background()

	seedListing(t, db, "riad", models.PropertyRiad, 350, 6, true, true)
	seedListing(t, db, "villa", models.PropertyVilla, 900, 10, true, true)
	seedListing(t, db, "flat", models.PropertyApartment, 120, 2, false, true)
	seedListing(t, db, "hidden", models.PropertyRiad, 200, 4, true, false)

	tests := []struct {
		name   string
		filter PropertyFilter
		want   []string
	}{
		{"active only", PropertyFilter{}, []string{"riad", "villa", "flat"}},
		{"by type", PropertyFilter{Type: models.PropertyRiad}, []string{"riad"}},
		{"price range", PropertyFilter{MinPrice: ptr(100.0), MaxPrice: ptr(400.0)}, []string{"riad", "flat"}},
		{"guests", PropertyFilter{Guests: 5}, []string{"riad", "villa"}},
		{"featured", PropertyFilter{Featured: ptr(false)}, []string{"flat"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FindAll(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d properties, want %v", len(got), tt.want)
			}
			for i, slug := range tt.want {
				if got[i].Slug != slug {
					t.Errorf("position %d = %s, want %s", i, got[i].Slug, slug)
				}
			}
		})
	}
}

func TestPropertyService_FindAllAvailableForDates(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPropertyService(db)
	ctx := context.Background()
	user := testutil.SeedUser(t, db, "guest@example.com")
	riad := seedListing(t, db, "riad", models.PropertyRiad, 350, 6, true, true)
	seedListing(t, db, "villa", models.PropertyVilla, 900, 10, true, true)

	repo := repository.NewBookingRepository(db)
	for _, b := range []*models.Booking{
		{PropertyID: riad.ID, UserID: user.ID, CheckIn: july(15), CheckOut: july(22), Status: models.BookingConfirmed},
		{PropertyID: riad.ID, UserID: user.ID, CheckIn: july(1), CheckOut: july(10), Status: models.BookingCancelled},
	} {
		if err := repo.Create(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name     string
		from, to int
		want     int
	}{
		{"overlapping stay hides riad", 20, 25, 1},
		{"turnover day keeps riad", 22, 29, 2},
		{"cancelled booking ignored", 2, 8, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FindAll(ctx, PropertyFilter{CheckIn: ptr(july(tt.from)), CheckOut: ptr(july(tt.to))})
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d properties, want %d", len(got), tt.want)
			}
		})
	}

	_, err := svc.FindAll(ctx, PropertyFilter{CheckIn: ptr(july(5)), CheckOut: ptr(july(5))})
	assertCode(t, err, apperrors.CodeInvalidInterval)
	_, err = svc.FindAll(ctx, PropertyFilter{CheckIn: ptr(july(5))})
	assertCode(t, err, apperrors.CodeInvalidInput)
}

func TestPropertyService_CreateGeneratesSlugAndAmenities(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPropertyService(db)
	ctx := context.Background()

	if err := db.Create(&models.Amenity{Name: "WiFi", Icon: "wifi"}).Error; err != nil {
		t.Fatal(err)
	}

	p, err := svc.Create(ctx, CreatePropertyInput{
		Title:         "Appartement Moderne à Guéliz",
		Type:          models.PropertyApartment,
		PricePerNight: 120,
		MaxGuests:     4,
		Images:        []PropertyImageInput{{URL: "https://img/1.jpg", IsMain: true}},
		AmenityNames:  []string{"WiFi", "Piscine"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Slug != "appartement-moderne-a-gueliz" {
		t.Errorf("slug = %q", p.Slug)
	}
	if p.Guests != 4 {
		t.Errorf("guests = %d, maxGuests should fill it", p.Guests)
	}
	if !p.IsActive {
		t.Error("new properties are active by default")
	}
	if len(p.Images) != 1 || len(p.Amenities) != 2 {
		t.Errorf("images = %d, amenities = %d", len(p.Images), len(p.Amenities))
	}

	var amenities int64
	db.Model(&models.Amenity{}).Count(&amenities)
	if amenities != 2 {
		t.Errorf("amenities in table = %d, want existing WiFi reused", amenities)
	}

	_, err = svc.Create(ctx, CreatePropertyInput{Title: "x", Type: "CASTLE"})
	assertCode(t, err, apperrors.CodeInvalidInput)
}

func TestPropertyService_Update(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPropertyService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreatePropertyInput{
		Title: "Riad Luxe Medina", Type: models.PropertyRiad, PricePerNight: 350, Guests: 6,
		Images: []PropertyImageInput{{URL: "a.jpg"}, {URL: "b.jpg"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(ctx, p.ID, UpdatePropertyInput{
		PricePerNight: ptr(400.0),
		IsActive:      ptr(false),
		Images:        &[]PropertyImageInput{{URL: "c.jpg", IsMain: true}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PricePerNight != 400 || updated.IsActive {
		t.Errorf("price = %v, active = %v", updated.PricePerNight, updated.IsActive)
	}
	if len(updated.Images) != 1 || updated.Images[0].URL != "c.jpg" {
		t.Errorf("images = %+v", updated.Images)
	}
	if updated.Title != "Riad Luxe Medina" {
		t.Error("untouched fields must be kept")
	}

	_, err = svc.Update(ctx, "missing", UpdatePropertyInput{Title: ptr("x")})
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestPropertyService_Delete(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPropertyService(db)
	ctx := context.Background()
	user := testutil.SeedUser(t, db, "guest@example.com")

	booked := testutil.SeedProperty(t, db, "booked")
	free := testutil.SeedProperty(t, db, "free")
	b := &models.Booking{PropertyID: booked.ID, UserID: user.ID, CheckIn: july(1), CheckOut: july(3), Status: models.BookingCancelled}
	if err := repository.NewBookingRepository(db).Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	assertCode(t, svc.Delete(ctx, booked.ID), apperrors.CodeConflict)
	if err := svc.Delete(ctx, free.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err := svc.FindByID(ctx, free.ID)
	assertCode(t, err, apperrors.CodeNotFound)
	assertCode(t, svc.Delete(ctx, "missing"), apperrors.CodeNotFound)
}

func TestPropertyService_Featured(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPropertyService(db)

	for i := 0; i < 8; i++ {
		seedListing(t, db, "featured-"+string(rune('a'+i)), models.PropertyVilla, 500, 6, true, true)
	}
	seedListing(t, db, "plain", models.PropertyVilla, 500, 6, false, true)

	got, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != featuredLimit {
		t.Fatalf("got %d, want %d", len(got), featuredLimit)
	}
	if got[0].Slug != "featured-a" {
		t.Errorf("oldest featured property should come first, got %s", got[0].Slug)
	}
}
