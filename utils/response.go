package utils

import (
	"errors"
	"net/http"

	"conciergerie-backend/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// RespondError renders err, using its AppError fields when there are any.
func RespondError(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.Internal("Internal server error", err)
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	body := gin.H{"code": appErr.Code, "message": appErr.Message}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(apperrors.HTTPStatus(appErr), gin.H{"success": false, "error": body})
}

// BindError turns a gin binding failure into a VALIDATION_ERROR listing each field.
func BindError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]any, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return apperrors.Validation("Request validation failed", map[string]any{"fields": fields})
	}
	return apperrors.Validation("Malformed request body: "+err.Error(), nil)
}
