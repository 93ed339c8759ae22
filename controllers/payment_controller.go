package controllers

import (
	"io"
	"net/http"

	"conciergerie-backend/apperrors"
	"conciergerie-backend/services"
	"conciergerie-backend/utils"

	"github.com/gin-gonic/gin"
)

type createIntentPayload struct {
	BookingID string  `json:"bookingId" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Currency  string  `json:"currency"`
}

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// POST /api/payments/create-intent
func (pc *PaymentController) CreateIntent(c *gin.Context) {
	var payload createIntentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, utils.BindError(err))
		return
	}
	if payload.Currency == "" {
		payload.Currency = "EUR"
	}

	payment, err := pc.PaymentSvc.CreateIntent(c.Request.Context(), payload.BookingID, payload.Amount, payload.Currency)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

// POST /api/payments/webhook
func (pc *PaymentController) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, apperrors.InvalidInput("unreadable webhook body"))
		return
	}
	if err := pc.PaymentSvc.HandleWebhook(c.Request.Context(), c.GetHeader("Stripe-Signature"), body); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"received": true})
}

// GET /api/payments/:id
func (pc *PaymentController) GetPayment(c *gin.Context) {
	payment, err := pc.PaymentSvc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

// GET /api/payments/booking/:bookingId
func (pc *PaymentController) GetPaymentByBooking(c *gin.Context) {
	payment, err := pc.PaymentSvc.FindByBooking(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}
