package controllers

import (
	"net/http"

	"conciergerie-backend/middleware"
	"conciergerie-backend/services"
	"conciergerie-backend/utils"

	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	AuthSvc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{AuthSvc: svc}
}

// POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, utils.BindError(err))
		return
	}

	result, err := ac.AuthSvc.Register(c.Request.Context(), services.RegisterInput{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, result)
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, utils.BindError(err))
		return
	}

	result, err := ac.AuthSvc.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// GET /api/auth/profile
func (ac *AuthController) Profile(c *gin.Context) {
	user, err := ac.AuthSvc.Profile(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}
