package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aytac78/order-business-app-sub001/kitchen"
	"github.com/aytac78/order-business-app-sub001/utils"
)

var ErrNoPermission = errors.New("you don't have permission to access this resource")

// statusFor maps kitchen errors to an HTTP status code and error kind.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, kitchen.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, kitchen.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, kitchen.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, kitchen.ErrStoreWrite):
		return http.StatusServiceUnavailable, "store_write"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func respondKitchenError(c *gin.Context, err error) {
	code, kind := statusFor(err)
	if code >= http.StatusInternalServerError {
		utils.ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	utils.RespondErrorKind(c, code, kind, err)
}
