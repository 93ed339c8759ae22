package controllers

import (
	"net/http"
	"strconv"
	"time"

	"conciergerie-backend/apperrors"
	"conciergerie-backend/models"
	"conciergerie-backend/services"
	"conciergerie-backend/utils"

	"github.com/gin-gonic/gin"
)

type PropertyImageRequest struct {
	URL    string `json:"url" binding:"required"`
	Alt    string `json:"alt"`
	IsMain bool   `json:"isMain"`
}

type CreatePropertyRequest struct {
	Slug           string                 `json:"slug"`
	Title          string                 `json:"title" binding:"required"`
	Description    string                 `json:"description" binding:"required"`
	Type           string                 `json:"type" binding:"required,oneof=RIAD VILLA APARTMENT"`
	PricePerNight  float64                `json:"pricePerNight" binding:"min=0"`
	CleaningFee    float64                `json:"cleaningFee" binding:"min=0"`
	WeeklyDiscount float64                `json:"weeklyDiscount" binding:"min=0"`
	Address        string                 `json:"address" binding:"required"`
	City           string                 `json:"city" binding:"required"`
	Country        string                 `json:"country"`
	Latitude       *float64               `json:"latitude"`
	Longitude      *float64               `json:"longitude"`
	Guests         int                    `json:"guests" binding:"omitempty,min=1"`
	MaxGuests      int                    `json:"maxGuests" binding:"omitempty,min=1"`
	Bedrooms       int                    `json:"bedrooms" binding:"required,min=1"`
	Bathrooms      int                    `json:"bathrooms" binding:"required,min=1"`
	IsActive       *bool                  `json:"isActive"`
	Featured       bool                   `json:"featured"`
	Images         []PropertyImageRequest `json:"images" binding:"dive"`
	Amenities      []string               `json:"amenities"`
	AmenityIDs     []string               `json:"amenityIds"`
}

type UpdatePropertyRequest struct {
	Slug           *string                 `json:"slug"`
	Title          *string                 `json:"title"`
	Description    *string                 `json:"description"`
	Type           *string                 `json:"type" binding:"omitempty,oneof=RIAD VILLA APARTMENT"`
	PricePerNight  *float64                `json:"pricePerNight" binding:"omitempty,min=0"`
	CleaningFee    *float64                `json:"cleaningFee" binding:"omitempty,min=0"`
	WeeklyDiscount *float64                `json:"weeklyDiscount" binding:"omitempty,min=0"`
	Address        *string                 `json:"address"`
	City           *string                 `json:"city"`
	Country        *string                 `json:"country"`
	Latitude       *float64                `json:"latitude"`
	Longitude      *float64                `json:"longitude"`
	Guests         *int                    `json:"guests" binding:"omitempty,min=1"`
	Bedrooms       *int                    `json:"bedrooms" binding:"omitempty,min=1"`
	Bathrooms      *int                    `json:"bathrooms" binding:"omitempty,min=1"`
	IsActive       *bool                   `json:"isActive"`
	Featured       *bool                   `json:"featured"`
	Images         *[]PropertyImageRequest `json:"images"`
	AmenityIDs     *[]string               `json:"amenityIds"`
}

type PropertyController struct {
	PropertySvc *services.PropertyService
}

func NewPropertyController(svc *services.PropertyService) *PropertyController {
	return &PropertyController{PropertySvc: svc}
}

// GET /api/properties?type=&minPrice=&maxPrice=&guests=&bedrooms=&featured=&checkIn=&checkOut=
func (pc *PropertyController) GetProperties(c *gin.Context) {
	filter, err := parsePropertyFilter(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	properties, err := pc.PropertySvc.FindAll(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, properties)
}

func parsePropertyFilter(c *gin.Context) (services.PropertyFilter, error) {
	var f services.PropertyFilter
	f.Type = models.PropertyType(c.Query("type"))

	for name, dst := range map[string]**float64{"minPrice": &f.MinPrice, "maxPrice": &f.MaxPrice} {
		if raw := c.Query(name); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return f, apperrors.InvalidInput(name + " must be a number")
			}
			*dst = &v
		}
	}
	for name, dst := range map[string]*int{"guests": &f.Guests, "bedrooms": &f.Bedrooms} {
		if raw := c.Query(name); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return f, apperrors.InvalidInput(name + " must be an integer")
			}
			*dst = v
		}
	}
	if raw := c.Query("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, apperrors.InvalidInput("featured must be true or false")
		}
		f.Featured = &v
	}
	for name, dst := range map[string]**time.Time{"checkIn": &f.CheckIn, "checkOut": &f.CheckOut} {
		if raw := c.Query(name); raw != "" {
			v, err := utils.ParseDate(raw)
			if err != nil {
				return f, apperrors.InvalidInput(err.Error())
			}
			*dst = &v
		}
	}
	return f, nil
}

// GET /api/properties/featured
func (pc *PropertyController) GetFeatured(c *gin.Context) {
	properties, err := pc.PropertySvc.Featured(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, properties)
}

// GET /api/properties/:id
func (pc *PropertyController) GetProperty(c *gin.Context) {
	property, err := pc.PropertySvc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, property)
}

// GET /api/properties/slug/:slug
func (pc *PropertyController) GetPropertyBySlug(c *gin.Context) {
	property, err := pc.PropertySvc.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, property)
}

// POST /api/properties
func (pc *PropertyController) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindError(err))
		return
	}
	if req.Guests == 0 && req.MaxGuests == 0 {
		utils.RespondError(c, apperrors.Validation("Request validation failed", map[string]any{
			"fields": map[string]any{"Guests": "required"},
		}))
		return
	}

	property, err := pc.PropertySvc.Create(c.Request.Context(), services.CreatePropertyInput{
		Slug:           req.Slug,
		Title:          req.Title,
		Description:    req.Description,
		Type:           models.PropertyType(req.Type),
		PricePerNight:  req.PricePerNight,
		CleaningFee:    req.CleaningFee,
		WeeklyDiscount: req.WeeklyDiscount,
		Address:        req.Address,
		City:           req.City,
		Country:        req.Country,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Guests:         req.Guests,
		MaxGuests:      req.MaxGuests,
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		IsActive:       req.IsActive,
		Featured:       req.Featured,
		Images:         imageInputs(req.Images),
		AmenityNames:   req.Amenities,
		AmenityIDs:     req.AmenityIDs,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, property)
}

// PATCH /api/properties/:id
func (pc *PropertyController) UpdateProperty(c *gin.Context) {
	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindError(err))
		return
	}

	in := services.UpdatePropertyInput{
		Slug:           req.Slug,
		Title:          req.Title,
		Description:    req.Description,
		PricePerNight:  req.PricePerNight,
		CleaningFee:    req.CleaningFee,
		WeeklyDiscount: req.WeeklyDiscount,
		Address:        req.Address,
		City:           req.City,
		Country:        req.Country,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Guests:         req.Guests,
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		IsActive:       req.IsActive,
		Featured:       req.Featured,
		AmenityIDs:     req.AmenityIDs,
	}
	if req.Type != nil {
		t := models.PropertyType(*req.Type)
		in.Type = &t
	}
	if req.Images != nil {
		images := imageInputs(*req.Images)
		in.Images = &images
	}

	property, err := pc.PropertySvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, property)
}

// DELETE /api/properties/:id
func (pc *PropertyController) DeleteProperty(c *gin.Context) {
	if err := pc.PropertySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": c.Param("id"), "deleted": true})
}

func imageInputs(in []PropertyImageRequest) []services.PropertyImageInput {
	out := make([]services.PropertyImageInput, 0, len(in))
	for _, img := range in {
		out = append(out, services.PropertyImageInput{URL: img.URL, Alt: img.Alt, IsMain: img.IsMain})
	}
	return out
}
