package models

import (
	"time"

	"gorm.io/gorm"
)

type PropertyType string

const (
	PropertyRiad      PropertyType = "RIAD"
	PropertyVilla     PropertyType = "VILLA"
	PropertyApartment PropertyType = "APARTMENT"
)

func (t PropertyType) Valid() bool {
	return t == PropertyRiad || t == PropertyVilla || t == PropertyApartment
}

type Property struct {
	ID             string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Slug           string       `gorm:"uniqueIndex;size:191;not null" json:"slug"`
	Title          string       `gorm:"size:255;not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	Type           PropertyType `gorm:"type:varchar(16);not null;index" json:"type"`
	PricePerNight  float64      `gorm:"not null" json:"pricePerNight"`
	CleaningFee    float64      `json:"cleaningFee"`
	WeeklyDiscount float64      `json:"weeklyDiscount"`

	Address   string   `gorm:"size:255" json:"address"`
	City      string   `gorm:"size:100;index" json:"city"`
	Country   string   `gorm:"size:100" json:"country"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Guests    int `gorm:"not null" json:"guests"`
	Bedrooms  int `json:"bedrooms"`
	Bathrooms int `json:"bathrooms"`

	// no gorm default on bools: a false value would be replaced on insert
	IsActive bool `gorm:"index" json:"isActive"`
	Featured bool `json:"featured"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Images    []PropertyImage `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"images"`
	Amenities []Amenity       `gorm:"many2many:property_amenities;constraint:OnDelete:CASCADE" json:"amenities"`
	Reviews   []Review        `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}

type PropertyImage struct {
	ID         string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PropertyID string `gorm:"type:varchar(36);not null;index" json:"propertyId"`
	URL        string `gorm:"size:1024;not null" json:"url"`
	Alt        string `gorm:"size:255" json:"alt,omitempty"`
	IsMain     bool   `json:"isMain"`
}

func (i *PropertyImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = newID()
	}
	return nil
}

type Amenity struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Icon        string `gorm:"size:100" json:"icon,omitempty"`
	Description string `gorm:"size:255" json:"description,omitempty"`
}

func (a *Amenity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}
