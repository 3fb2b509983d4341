package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "fleet-device-tracker/pkg/errors"
)

// Response is the uniform envelope every endpoint returns. Page-level
// consumers branch on Success, never on transport-level exceptions.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	MaxPage *int        `json:"maxPage,omitempty"`
}

func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// PagedResponse is SuccessResponse plus the maxPage hint list endpoints carry.
func PagedResponse(c *gin.Context, message string, data interface{}, maxPage int) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		MaxPage: &maxPage,
	})
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   message,
	})
}

// ErrorResponseFromErr maps the error taxonomy onto HTTP statuses. Unknown
// errors surface a generic fallback message, never the raw error text.
func ErrorResponseFromErr(c *gin.Context, err error) {
	switch appErrors.CodeOf(err) {
	case appErrors.CodeValidation:
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case appErrors.CodeStateConflict:
		ErrorResponse(c, http.StatusConflict, err.Error())
	case appErrors.CodeNotFound:
		ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, "request failed, please try again")
	}
}
