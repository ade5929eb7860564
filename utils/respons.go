package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Cache-Control values: successful GETs are Cacheable, everything else NoStore.
const (
	Cacheable = "public, max-age=60"
	NoStore   = "no-store"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	setCacheControl(c, code)
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondList answers 200 with a list and its length, so clients can tell an
// empty result from a missing field.
func RespondList(c *gin.Context, message string, data interface{}, count int) {
	setCacheControl(c, http.StatusOK)
	c.JSON(http.StatusOK, JSONResponse{
		Status:  true,
		Message: message,
		Count:   &count,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.Header("Cache-Control", NoStore)
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}

func setCacheControl(c *gin.Context, code int) {
	if c.Request.Method == http.MethodGet && code >= 200 && code < 300 {
		c.Header("Cache-Control", Cacheable)
		return
	}
	c.Header("Cache-Control", NoStore)
}
