package controllers

import (
	"context"
	"net/http"

	"conciergerie-backend/apperrors"
	"conciergerie-backend/models"
	"conciergerie-backend/repository"
	"conciergerie-backend/services"
	"conciergerie-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateBookingRequest struct {
	PropertyID     string  `json:"propertyId" binding:"required"`
	UserID         string  `json:"userId" binding:"required"`
	CheckIn        string  `json:"checkIn" binding:"required"`
	CheckOut       string  `json:"checkOut" binding:"required"`
	Guests         int     `json:"guests" binding:"required,min=1"`
	TotalPrice     float64 `json:"totalPrice" binding:"min=0"`
	CleaningFee    float64 `json:"cleaningFee" binding:"min=0"`
	Discount       float64 `json:"discount" binding:"min=0"`
	Status         string  `json:"status"`
	GuestFirstName string  `json:"guestFirstName" binding:"required"`
	GuestLastName  string  `json:"guestLastName" binding:"required"`
	GuestEmail     string  `json:"guestEmail" binding:"required,email"`
	GuestPhone     string  `json:"guestPhone" binding:"omitempty,phone"`
}

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// POST /api/bookings
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindError(err))
		return
	}

	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		utils.RespondError(c, apperrors.InvalidInput(err.Error()))
		return
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		utils.RespondError(c, apperrors.InvalidInput(err.Error()))
		return
	}

	booking, err := bc.BookingSvc.Create(c.Request.Context(), services.CreateBookingInput{
		PropertyID:     req.PropertyID,
		UserID:         req.UserID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         req.Guests,
		TotalPrice:     req.TotalPrice,
		CleaningFee:    req.CleaningFee,
		Discount:       req.Discount,
		Status:         models.BookingStatus(req.Status),
		GuestFirstName: req.GuestFirstName,
		GuestLastName:  req.GuestLastName,
		GuestEmail:     req.GuestEmail,
		GuestPhone:     req.GuestPhone,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GET /api/bookings?userId=&propertyId=&status=
func (bc *BookingController) GetBookings(c *gin.Context) {
	bookings, err := bc.BookingSvc.List(c.Request.Context(), repository.BookingFilter{
		UserID:     c.Query("userId"),
		PropertyID: c.Query("propertyId"),
		Status:     models.BookingStatus(c.Query("status")),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// GET /api/bookings/:id
func (bc *BookingController) GetBooking(c *gin.Context) {
	booking, err := bc.BookingSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// PATCH /api/bookings/:id/cancel
func (bc *BookingController) CancelBooking(c *gin.Context) {
	bc.changeStatus(c, bc.BookingSvc.Cancel)
}

// PATCH /api/bookings/:id/confirm
func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	bc.changeStatus(c, bc.BookingSvc.Confirm)
}

// PATCH /api/bookings/:id/complete
func (bc *BookingController) CompleteBooking(c *gin.Context) {
	bc.changeStatus(c, bc.BookingSvc.Complete)
}

func (bc *BookingController) changeStatus(c *gin.Context, apply func(ctx context.Context, id string) (*models.Booking, error)) {
	booking, err := apply(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// GET /api/bookings/property/:id/booked-dates
func (bc *BookingController) GetBookedDates(c *gin.Context) {
	ranges, err := bc.BookingSvc.BookedDateRanges(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, ranges)
}
