package controllers

import (
	"net/http"

	"conciergerie-backend/services"
	"conciergerie-backend/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{UserSvc: svc}
}

// GET /api/users
func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.UserSvc.FindAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}

// GET /api/users/:id
func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.UserSvc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}
