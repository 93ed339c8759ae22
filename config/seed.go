package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conciergerie-backend/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedProperty struct {
	property  models.Property
	amenities []string
}

func ptrFloat(f float64) *float64 { return &f }

var seedAmenities = []models.Amenity{
	{Name: "WiFi", Icon: "wifi", Description: "High-speed wireless internet"},
	{Name: "Piscine", Icon: "pool", Description: "Private swimming pool"},
	{Name: "Climatisation", Icon: "ac", Description: "Air conditioning"},
	{Name: "Cuisine équipée", Icon: "kitchen", Description: "Fully equipped kitchen"},
	{Name: "Parking", Icon: "parking", Description: "Private parking space"},
	{Name: "Terrasse", Icon: "terrace", Description: "Private terrace"},
	{Name: "Jardin", Icon: "garden", Description: "Private garden"},
	{Name: "Hammam", Icon: "hammam", Description: "Traditional Moroccan steam bath"},
	{Name: "Majordome", Icon: "concierge", Description: "24/7 butler service"},
	{Name: "Chef privé", Icon: "chef", Description: "Private chef available"},
	{Name: "Transfert aéroport", Icon: "airport", Description: "Airport transfer service"},
	{Name: "Ménage quotidien", Icon: "cleaning", Description: "Daily housekeeping"},
}

func seedProperties() []seedProperty {
	return []seedProperty{
		{
			property: models.Property{
				Slug:          "riad-luxe-medina",
				Title:         "Riad Luxe Médina",
				Description:   "Magnifique riad traditionnel situé au cœur de la médina de Marrakech. Entièrement rénové avec un mélange harmonieux de style marocain authentique et de confort moderne.",
				Type:          models.PropertyRiad,
				PricePerNight: 350,
				Bedrooms:      5,
				Bathrooms:     5,
				Guests:        10,
				Address:       "Derb Arset Aouzal, Médina",
				City:          "Marrakech",
				Country:       "Morocco",
				Latitude:      ptrFloat(31.6295),
				Longitude:     ptrFloat(-7.9811),
				IsActive:      true,
				Featured:      true,
				Images: []models.PropertyImage{
					{URL: "/images/properties/riad-luxe-1.jpg", Alt: "Patio principal du riad", IsMain: true},
					{URL: "/images/properties/riad-luxe-2.jpg", Alt: "Suite principale"},
					{URL: "/images/properties/riad-luxe-3.jpg", Alt: "Terrasse sur le toit"},
				},
			},
			amenities: []string{"WiFi", "Piscine", "Climatisation", "Cuisine équipée", "Terrasse", "Hammam", "Majordome", "Ménage quotidien"},
		},
		{
			property: models.Property{
				Slug:          "villa-moderne-palmeraie",
				Title:         "Villa Moderne Palmeraie",
				Description:   "Superbe villa contemporaine située dans la palmeraie de Marrakech, offrant une vue imprenable sur l'Atlas. Design moderne avec équipements haut de gamme.",
				Type:          models.PropertyVilla,
				PricePerNight: 500,
				Bedrooms:      6,
				Bathrooms:     6,
				Guests:        12,
				Address:       "Route de Fès, Palmeraie",
				City:          "Marrakech",
				Country:       "Morocco",
				Latitude:      ptrFloat(31.6692),
				Longitude:     ptrFloat(-7.9367),
				IsActive:      true,
				Featured:      true,
				Images: []models.PropertyImage{
					{URL: "/images/properties/villa-moderne-1.jpg", Alt: "Façade de la villa", IsMain: true},
					{URL: "/images/properties/villa-moderne-2.jpg", Alt: "Piscine à débordement"},
				},
			},
			amenities: []string{"WiFi", "Piscine", "Climatisation", "Cuisine équipée", "Parking", "Jardin", "Chef privé", "Transfert aéroport"},
		},
		{
			property: models.Property{
				Slug:          "appartement-centre-gueliz",
				Title:         "Appartement Centre Guéliz",
				Description:   "Appartement spacieux et élégant en plein centre du quartier moderne de Guéliz. Proche de tous les commerces, restaurants et attractions.",
				Type:          models.PropertyApartment,
				PricePerNight: 150,
				Bedrooms:      3,
				Bathrooms:     2,
				Guests:        6,
				Address:       "Avenue Mohamed V, Guéliz",
				City:          "Marrakech",
				Country:       "Morocco",
				Latitude:      ptrFloat(31.6369),
				Longitude:     ptrFloat(-8.0089),
				IsActive:      true,
				Images: []models.PropertyImage{
					{URL: "/images/properties/appt-gueliz-1.jpg", Alt: "Salon moderne", IsMain: true},
				},
			},
			amenities: []string{"WiFi", "Climatisation", "Cuisine équipée", "Parking"},
		},
	}
}

// SeedDatabase inserts demo accounts, amenities, properties, a booking and a
// review. Rows that already exist are left alone, so it can run on every start.
func SeedDatabase(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := seedUser(tx, "admin@conciergerie-marrakech.com", "Admin123!", "Admin", "Conciergerie", "+212 5 24 00 00 00", models.RoleAdmin); err != nil {
			return err
		}
		customer, err := seedUser(tx, "client@example.com", "Customer123!", "Mohamed", "Alaoui", "+212 6 12 34 56 78", models.RoleCustomer)
		if err != nil {
			return err
		}

		amenities := make(map[string]models.Amenity, len(seedAmenities))
		for _, a := range seedAmenities {
			a := a
			if err := tx.Where(models.Amenity{Name: a.Name}).Attrs(a).FirstOrCreate(&a).Error; err != nil {
				return fmt.Errorf("seed amenity %s: %w", a.Name, err)
			}
			amenities[a.Name] = a
		}
		log.Info("✅ amenities ensured", zap.Int("count", len(amenities)))

		var riad *models.Property
		for _, sp := range seedProperties() {
			var existing models.Property
			err := tx.Where("slug = ?", sp.property.Slug).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			p := sp.property
			for _, name := range sp.amenities {
				p.Amenities = append(p.Amenities, amenities[name])
			}
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("seed property %s: %w", p.Slug, err)
			}
			log.Info("✅ property created", zap.String("slug", p.Slug))
			if p.Slug == "riad-luxe-medina" {
				riad = &p
			}
		}

		// sample booking and review only alongside a freshly created riad
		if riad == nil {
			return nil
		}
		booking := models.Booking{
			PropertyID:     riad.ID,
			UserID:         customer.ID,
			CheckIn:        time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
			CheckOut:       time.Date(2024, time.July, 22, 0, 0, 0, 0, time.UTC),
			Guests:         8,
			TotalPrice:     2450,
			Status:         models.BookingConfirmed,
			GuestFirstName: customer.FirstName,
			GuestLastName:  customer.LastName,
			GuestEmail:     customer.Email,
			GuestPhone:     customer.Phone,
		}
		if err := tx.Omit("Property", "User", "Payment").Create(&booking).Error; err != nil {
			return fmt.Errorf("seed booking: %w", err)
		}
		review := models.Review{
			PropertyID: riad.ID,
			UserID:     customer.ID,
			Rating:     5,
			Comment:    "Séjour exceptionnel dans ce magnifique riad. Le personnel est aux petits soins et l'emplacement est parfait pour découvrir la médina.",
		}
		if err := tx.Omit("User").Create(&review).Error; err != nil {
			return fmt.Errorf("seed review: %w", err)
		}
		log.Info("✅ sample booking and review created")
		return nil
	})
}

func seedUser(tx *gorm.DB, email, password, first, last, phone string, role models.UserRole) (*models.User, error) {
	var user models.User
	err := tx.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = models.User{Email: email, Password: string(hash), FirstName: first, LastName: last, Phone: phone, Role: role}
	if err := tx.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("seed user %s: %w", email, err)
	}
	return &user, nil
}
