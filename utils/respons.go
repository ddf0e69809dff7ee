package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope of every API response. Error carries a
// machine-readable kind on failures, e.g. "invalid_transition".
type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	RespondErrorKind(c, code, "", err)
}

// RespondErrorKind is RespondError with an error kind the client can switch on.
func RespondErrorKind(c *gin.Context, code int, kind string, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Error:   kind,
	})
}
