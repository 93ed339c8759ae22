package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"conciergerie-backend/apperrors"
	"conciergerie-backend/availability"
	"conciergerie-backend/models"
	"conciergerie-backend/repository"
	"conciergerie-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const featuredLimit = 6

type PropertyService struct {
	DB *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{DB: db}
}

type PropertyFilter struct {
	Type     models.PropertyType
	MinPrice *float64
	MaxPrice *float64
	Guests   int
	Bedrooms int
	Featured *bool
	// both set: only properties free for [CheckIn, CheckOut)
	CheckIn  *time.Time
	CheckOut *time.Time
}

type PropertyImageInput struct {
	URL    string
	Alt    string
	IsMain bool
}

type CreatePropertyInput struct {
	Slug           string
	Title          string
	Description    string
	Type           models.PropertyType
	PricePerNight  float64
	CleaningFee    float64
	WeeklyDiscount float64
	Address        string
	City           string
	Country        string
	Latitude       *float64
	Longitude      *float64
	Guests         int
	MaxGuests      int
	Bedrooms       int
	Bathrooms      int
	IsActive       *bool
	Featured       bool
	Images         []PropertyImageInput
	AmenityNames   []string
	AmenityIDs     []string
}

// UpdatePropertyInput only touches non-nil fields. Images and AmenityIDs replace
// the current set when supplied.
type UpdatePropertyInput struct {
	Slug           *string
	Title          *string
	Description    *string
	Type           *models.PropertyType
	PricePerNight  *float64
	CleaningFee    *float64
	WeeklyDiscount *float64
	Address        *string
	City           *string
	Country        *string
	Latitude       *float64
	Longitude      *float64
	Guests         *int
	Bedrooms       *int
	Bathrooms      *int
	IsActive       *bool
	Featured       *bool
	Images         *[]PropertyImageInput
	AmenityIDs     *[]string
}

func withPropertyDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Images").Preload("Amenities").Preload("Reviews").Preload("Reviews.User")
}

func (s *PropertyService) FindAll(ctx context.Context, f PropertyFilter) ([]models.Property, error) {
	q := s.DB.WithContext(ctx).Model(&models.Property{}).Where("is_active = ?", true)

	if f.Type != "" {
		if !f.Type.Valid() {
			return nil, apperrors.InvalidInput(fmt.Sprintf("unknown property type %q", f.Type))
		}
		q = q.Where("type = ?", f.Type)
	}
	if f.MinPrice != nil {
		q = q.Where("price_per_night >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price_per_night <= ?", *f.MaxPrice)
	}
	if f.Guests > 0 {
		q = q.Where("guests >= ?", f.Guests)
	}
	if f.Bedrooms > 0 {
		q = q.Where("bedrooms >= ?", f.Bedrooms)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}

	if f.CheckIn != nil || f.CheckOut != nil {
		if f.CheckIn == nil || f.CheckOut == nil {
			return nil, apperrors.InvalidInput("checkIn and checkOut must be given together")
		}
		interval, err := availability.NewInterval(*f.CheckIn, *f.CheckOut)
		if err != nil {
			return nil, apperrors.InvalidInterval(err.Error())
		}
		// same half-open overlap rule as the booking checker, on calendar days
		q = q.Where(`NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.property_id = properties.id
			AND b.status IN ?
			AND b.check_in_date < ?
			AND ? < b.check_out_date)`,
			models.ActiveStatusValues(),
			datatypes.Date(availability.Day(interval.CheckOut)),
			datatypes.Date(availability.Day(interval.CheckIn)),
		)
	}

	var properties []models.Property
	if err := withPropertyDetails(q).Order("created_at ASC").Find(&properties).Error; err != nil {
		return nil, apperrors.Internal("Failed to list properties", err)
	}
	return properties, nil
}

func (s *PropertyService) Featured(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	err := s.DB.WithContext(ctx).
		Preload("Images").
		Where("featured = ? AND is_active = ?", true, true).
		Order("created_at ASC").
		Limit(featuredLimit).
		Find(&properties).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to list featured properties", err)
	}
	return properties, nil
}

func (s *PropertyService) FindByID(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	err := withPropertyDetails(s.DB.WithContext(ctx)).First(&property, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundWithID("Property", id)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load property", err)
	}
	return &property, nil
}

func (s *PropertyService) FindBySlug(ctx context.Context, slug string) (*models.Property, error) {
	var property models.Property
	err := withPropertyDetails(s.DB.WithContext(ctx)).First(&property, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("Property with slug %s not found", slug), http.StatusNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load property", err)
	}
	return &property, nil
}

func (s *PropertyService) Create(ctx context.Context, in CreatePropertyInput) (*models.Property, error) {
	if !in.Type.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown property type %q", in.Type))
	}
	if in.Slug == "" {
		in.Slug = utils.Slugify(in.Title)
	}
	if in.Slug == "" {
		return nil, apperrors.InvalidInput("a slug or a title with letters or digits is required")
	}
	if in.Guests == 0 && in.MaxGuests > 0 {
		in.Guests = in.MaxGuests
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	property := &models.Property{
		Slug:           in.Slug,
		Title:          in.Title,
		Description:    in.Description,
		Type:           in.Type,
		PricePerNight:  in.PricePerNight,
		CleaningFee:    in.CleaningFee,
		WeeklyDiscount: in.WeeklyDiscount,
		Address:        in.Address,
		City:           in.City,
		Country:        in.Country,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Guests:         in.Guests,
		Bedrooms:       in.Bedrooms,
		Bathrooms:      in.Bathrooms,
		IsActive:       active,
		Featured:       in.Featured,
		Images:         toImages(in.Images),
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		amenities, err := resolveAmenities(tx, in.AmenityNames, in.AmenityIDs)
		if err != nil {
			return err
		}
		property.Amenities = amenities
		return tx.Create(property).Error
	})
	if err != nil {
		return nil, propertyWriteError(err)
	}
	return s.FindByID(ctx, property.ID)
}

func toImages(in []PropertyImageInput) []models.PropertyImage {
	images := make([]models.PropertyImage, 0, len(in))
	for _, img := range in {
		images = append(images, models.PropertyImage{URL: img.URL, Alt: img.Alt, IsMain: img.IsMain})
	}
	return images
}

// resolveAmenities finds or creates amenities by name; ids are used when no names are given.
func resolveAmenities(tx *gorm.DB, names, ids []string) ([]models.Amenity, error) {
	if len(names) > 0 {
		amenities := make([]models.Amenity, 0, len(names))
		for _, name := range names {
			var a models.Amenity
			if err := tx.Where(models.Amenity{Name: name}).Attrs(models.Amenity{Icon: "✓"}).FirstOrCreate(&a).Error; err != nil {
				return nil, err
			}
			amenities = append(amenities, a)
		}
		return amenities, nil
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var amenities []models.Amenity
	if err := tx.Where("id IN ?", ids).Find(&amenities).Error; err != nil {
		return nil, err
	}
	if len(amenities) != len(ids) {
		return nil, apperrors.InvalidInput("one or more amenities do not exist")
	}
	return amenities, nil
}

func (s *PropertyService) Update(ctx context.Context, id string, in UpdatePropertyInput) (*models.Property, error) {
	property, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Type != nil && !in.Type.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown property type %q", *in.Type))
	}

	changes := map[string]any{}
	set := func(column string, v any, ok bool) {
		if ok {
			changes[column] = v
		}
	}
	set("slug", deref(in.Slug), in.Slug != nil)
	set("title", deref(in.Title), in.Title != nil)
	set("description", deref(in.Description), in.Description != nil)
	set("type", deref(in.Type), in.Type != nil)
	set("price_per_night", deref(in.PricePerNight), in.PricePerNight != nil)
	set("cleaning_fee", deref(in.CleaningFee), in.CleaningFee != nil)
	set("weekly_discount", deref(in.WeeklyDiscount), in.WeeklyDiscount != nil)
	set("address", deref(in.Address), in.Address != nil)
	set("city", deref(in.City), in.City != nil)
	set("country", deref(in.Country), in.Country != nil)
	set("latitude", in.Latitude, in.Latitude != nil)
	set("longitude", in.Longitude, in.Longitude != nil)
	set("guests", deref(in.Guests), in.Guests != nil)
	set("bedrooms", deref(in.Bedrooms), in.Bedrooms != nil)
	set("bathrooms", deref(in.Bathrooms), in.Bathrooms != nil)
	set("is_active", deref(in.IsActive), in.IsActive != nil)
	set("featured", deref(in.Featured), in.Featured != nil)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(changes) > 0 {
			if err := tx.Model(&models.Property{ID: property.ID}).Updates(changes).Error; err != nil {
				return err
			}
		}
		if in.Images != nil {
			if err := tx.Where("property_id = ?", property.ID).Delete(&models.PropertyImage{}).Error; err != nil {
				return err
			}
			images := toImages(*in.Images)
			for i := range images {
				images[i].PropertyID = property.ID
			}
			if len(images) > 0 {
				if err := tx.Create(&images).Error; err != nil {
					return err
				}
			}
		}
		if in.AmenityIDs != nil {
			amenities, err := resolveAmenities(tx, nil, *in.AmenityIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&models.Property{ID: property.ID}).Association("Amenities").Replace(amenities); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, propertyWriteError(err)
	}
	return s.FindByID(ctx, id)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// Delete removes a property with its images, amenity links and reviews. A property
// that still has bookings is kept.
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	property, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	var bookings int64
	if err := s.DB.WithContext(ctx).Model(&models.Booking{}).Where("property_id = ?", id).Count(&bookings).Error; err != nil {
		return apperrors.Internal("Failed to delete property", err)
	}
	if bookings > 0 {
		return apperrors.Conflict("Property has bookings and cannot be deleted").
			WithDetails(map[string]any{"bookings": bookings})
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(property).Association("Amenities").Clear(); err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Property{}, "id = ?", id).Error
	})
	if err != nil {
		return propertyWriteError(err)
	}
	return nil
}

func propertyWriteError(err error) error {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	switch {
	case repository.IsUniqueViolation(err):
		return apperrors.Conflict("A property with this slug already exists")
	case repository.IsForeignKeyViolation(err):
		return apperrors.Conflict("Property is still referenced by bookings")
	}
	return apperrors.Internal("Failed to save property", err)
}
